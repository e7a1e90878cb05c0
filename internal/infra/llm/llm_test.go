package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url, key string) *Client {
	return NewClient(domain.LLMConfig{
		Provider:  domain.ProviderMistral,
		BaseURL:   url + "/",
		APIKey:    key,
		Model:     "mistral-small-latest",
		MaxTokens: 1000,
	}, domain.NopLogger{})
}

func TestClient_Complete(t *testing.T) {
	// Setup
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello intern"}}]}`))
	}))
	defer srv.Close()
	c := newTestClient(srv.URL, "secret")

	// Execute
	text, err := c.Complete(context.Background(), "be terse", []domain.Turn{
		{Role: domain.RoleAssistant, Content: "[Sara K.]: welcome"},
		{Role: domain.RoleUser, Content: "hi"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "hello intern", text)
	assert.Equal(t, "mistral-small-latest", got.Model)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, chatMessage{Role: "system", Content: "be terse"}, got.Messages[0])
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, chatMessage{Role: "user", Content: "hi"}, got.Messages[2])
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantStatus: 500},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `slow down`, wantStatus: 429},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantStatus: 200},
		{name: "api error body", status: http.StatusOK, body: `{"error":{"message":"bad model"}}`, wantStatus: 200},
		{name: "invalid json", status: http.StatusOK, body: `not json`, wantStatus: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, "k").Complete(context.Background(), "s", nil)

			require.ErrorIs(t, err, domain.ErrService)
			var se *domain.ServiceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantStatus, se.StatusCode)
		})
	}
}

func TestClient_Complete_NoKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").Complete(context.Background(), "s", nil)

	assert.ErrorIs(t, err, domain.ErrService)
	assert.False(t, called)
}

func TestClient_Complete_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, "k").Complete(context.Background(), "s", nil)

	assert.ErrorIs(t, err, domain.ErrService)
}

func TestNew_SelectsProvider(t *testing.T) {
	ctx := context.Background()

	c := New(ctx, domain.LLMConfig{Provider: domain.ProviderOpenAI}, domain.NopLogger{})
	_, isUnavailable := c.(Unavailable)
	assert.True(t, isUnavailable, "missing key")

	c = New(ctx, domain.LLMConfig{Provider: domain.ProviderMistral, APIKey: "k"}, domain.NopLogger{})
	_, isClient := c.(*Client)
	assert.True(t, isClient)

	c = New(ctx, domain.LLMConfig{Provider: domain.ProviderGemini, APIKey: "k", Model: "gemini-2.0-flash"}, domain.NopLogger{})
	_, isGemini := c.(*GeminiClient)
	assert.True(t, isGemini)
}

func TestGeminiClient_Complete(t *testing.T) {
	// Setup
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"on it"}]}}]}`))
	}))
	defer srv.Close()
	g, err := NewGeminiClient(context.Background(), domain.LLMConfig{
		APIKey: "k", Model: "gemini-2.0-flash", BaseURL: srv.URL, MaxTokens: 1000,
	}, domain.NopLogger{})
	require.NoError(t, err)

	// Execute
	text, err := g.Complete(context.Background(), "be nice", []domain.Turn{
		{Role: domain.RoleAssistant, Content: "[Nadia R.]: ETA?"},
		{Role: domain.RoleUser, Content: "soon"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "on it", text)
	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 2)
	assert.Equal(t, "model", contents[0].(map[string]any)["role"])
	assert.Equal(t, "user", contents[1].(map[string]any)["role"])
	assert.Contains(t, body, "systemInstruction")
}

func TestGeminiClient_Complete_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()
	g, err := NewGeminiClient(context.Background(), domain.LLMConfig{APIKey: "k", Model: "m", BaseURL: srv.URL}, domain.NopLogger{})
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "s", []domain.Turn{{Role: domain.RoleUser, Content: "x"}})

	assert.ErrorIs(t, err, domain.ErrService)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{Provider: "mistral"}.Complete(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrService)
}
