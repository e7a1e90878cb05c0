package config

import (
	"strings"

	"github.com/runoshun/syntern/internal/domain"
)

// Environment variables.
const (
	EnvAPIKey     = "SYNTERN_API_KEY"
	EnvProvider   = "SYNTERN_PROVIDER"
	EnvBaseURL    = "SYNTERN_BASE_URL"
	EnvModel      = "SYNTERN_MODEL"
	EnvLogLevel   = "SYNTERN_LOG_LEVEL"
	EnvGitHubTok  = "GITHUB_TOKEN"
	envMistralKey = "MISTRAL_API_KEY"
	envOpenAIKey  = "OPENAI_API_KEY"
	envGeminiKey  = "GEMINI_API_KEY"
)

// providerKeyEnv maps providers to their conventional key variables.
var providerKeyEnv = map[string]string{
	domain.ProviderMistral: envMistralKey,
	domain.ProviderOpenAI:  envOpenAIKey,
	domain.ProviderGemini:  envGeminiKey,
}

// applyEnv applies environment overrides. Credentials are only ever read here.
func applyEnv(cfg *domain.Config, getenv func(string) string) {
	if p := strings.TrimSpace(getenv(EnvProvider)); p != "" && p != cfg.LLM.Provider {
		cfg.LLM.Provider = p
		cfg.LLM.BaseURL, cfg.LLM.Model = domain.ProviderDefaults(p)
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		cfg.LLM.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}

	cfg.LLM.APIKey = strings.TrimSpace(getenv(EnvAPIKey))
	if cfg.LLM.APIKey == "" {
		if name, ok := providerKeyEnv[cfg.LLM.Provider]; ok {
			cfg.LLM.APIKey = strings.TrimSpace(getenv(name))
		}
	}
	cfg.Review.Token = strings.TrimSpace(getenv(EnvGitHubTok))
}
