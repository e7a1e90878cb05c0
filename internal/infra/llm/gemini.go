package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/runoshun/syntern/internal/domain"
	"google.golang.org/genai"
)

// Ensure GeminiClient implements domain.Completer.
var _ domain.Completer = (*GeminiClient)(nil)

// GeminiClient completes through the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	logger    domain.Logger
	model     string
	maxTokens int32
}

// NewGeminiClient creates a Gemini client. baseURL is only set in tests.
func NewGeminiClient(ctx context.Context, cfg domain.LLMConfig, logger domain.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:    client,
		logger:    logger,
		model:     cfg.Model,
		maxTokens: int32(min(cfg.MaxTokens, 1<<20)), //nolint:gosec // bounded above
	}, nil
}

// Complete maps turns onto Gemini contents; assistant turns become model turns.
func (g *GeminiClient) Complete(ctx context.Context, system string, turns []domain.Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.RoleUser
		if t.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if g.maxTokens > 0 {
		cfg.MaxOutputTokens = g.maxTokens
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		g.logger.Warn("llm", fmt.Sprintf("gemini %s failed after %s: %v", g.model, elapsed, err))
		return "", &domain.ServiceError{Provider: domain.ProviderGemini, StatusCode: apiStatus(err), Err: err}
	}
	text := resp.Text()
	if text == "" {
		return "", &domain.ServiceError{Provider: domain.ProviderGemini, Err: errors.New("empty response")}
	}
	g.logger.Debug("llm", fmt.Sprintf("gemini %s ok in %s (%d turns)", g.model, elapsed, len(turns)))
	return text, nil
}

func apiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
