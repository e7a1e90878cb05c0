// Package llm provides completion clients for the supported providers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/runoshun/syntern/internal/domain"
)

// Ensure Client implements domain.Completer.
var _ domain.Completer = (*Client)(nil)

// Client talks to an OpenAI-compatible /chat/completions endpoint (Mistral, OpenAI).
// Fields are ordered to minimize memory padding.
type Client struct {
	http      *http.Client
	logger    domain.Logger
	provider  string
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
}

// NewClient creates a new OpenAI-compatible client.
func NewClient(cfg domain.LLMConfig, logger domain.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
		provider:  cfg.Provider,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the system instruction followed by the turns and returns the first choice.
func (c *Client) Complete(ctx context.Context, system string, turns []domain.Turn) (string, error) {
	start := time.Now()
	text, status, err := c.send(ctx, system, turns)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		c.logger.Warn("llm", fmt.Sprintf("%s %s failed after %s (%d turns): %v", c.provider, c.model, elapsed, len(turns), err))
		return "", &domain.ServiceError{Provider: c.provider, StatusCode: status, Err: err}
	}
	c.logger.Debug("llm", fmt.Sprintf("%s %s ok in %s (%d turns, %d chars)", c.provider, c.model, elapsed, len(turns), len(text)))
	return text, nil
}

func (c *Client) send(ctx context.Context, system string, turns []domain.Turn) (string, int, error) {
	if c.apiKey == "" {
		return "", 0, errors.New("no API key configured")
	}

	messages := make([]chatMessage, 0, len(turns)+1)
	messages = append(messages, chatMessage{Role: string(domain.RoleSystem), Content: system})
	for _, t := range turns {
		messages = append(messages, chatMessage{Role: string(t.Role), Content: t.Content})
	}
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, MaxTokens: c.maxTokens})
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, fmt.Errorf("unexpected status: %s", snippet(data))
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", resp.StatusCode, fmt.Errorf("api error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", resp.StatusCode, errors.New("no choices in response")
	}
	return out.Choices[0].Message.Content, resp.StatusCode, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
