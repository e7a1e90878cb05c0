package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/syntern/internal/domain"
)

// New returns the completer for the configured provider.
// A missing credential yields a completer whose calls fail with domain.ErrService,
// so every generation falls back instead of aborting startup.
func New(ctx context.Context, cfg domain.LLMConfig, logger domain.Logger) domain.Completer {
	if cfg.APIKey == "" {
		logger.Warn("llm", fmt.Sprintf("no API key for provider %s; using offline fallbacks", cfg.Provider))
		return Unavailable{Provider: cfg.Provider, Reason: errors.New("no API key configured")}
	}

	switch cfg.Provider {
	case domain.ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg, logger)
		if err != nil {
			logger.Error("llm", err.Error())
			return Unavailable{Provider: cfg.Provider, Reason: err}
		}
		return g
	case domain.ProviderMistral, domain.ProviderOpenAI, "":
		return NewClient(cfg, logger)
	default:
		logger.Warn("llm", fmt.Sprintf("unknown provider %q, treating it as OpenAI-compatible", cfg.Provider))
		return NewClient(cfg, logger)
	}
}

// Unavailable is a completer that always fails.
type Unavailable struct {
	Reason   error
	Provider string
}

// Complete returns a service error.
func (u Unavailable) Complete(context.Context, string, []domain.Turn) (string, error) {
	return "", &domain.ServiceError{Provider: u.Provider, Err: u.Reason}
}
