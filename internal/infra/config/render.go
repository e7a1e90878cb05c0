package config

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/syntern/internal/domain"
)

type renderedLLM struct {
	Provider  string `toml:"provider" comment:"mistral, openai or gemini"`
	BaseURL   string `toml:"base_url,omitempty" comment:"OpenAI-compatible endpoint; unused by gemini"`
	Model     string `toml:"model"`
	Timeout   string `toml:"timeout"`
	APIKey    string `toml:"api_key,omitempty"`
	MaxTokens int    `toml:"max_tokens"`
}

type rendered struct {
	Timing map[string]string   `toml:"timing" comment:"Pacing of the simulated workplace, as Go durations"`
	LLM    renderedLLM         `toml:"llm"`
	Review domain.ReviewConfig `toml:"review" comment:"source = \"github\" reads the REST API, \"git\" clones in memory"`
	Log    domain.LogConfig    `toml:"log"`
	Server domain.ServerConfig `toml:"server" comment:"Used by syntern serve"`
}

// templateHeader opens files written by config init.
const templateHeader = `# syntern configuration
#
# Keys are read from the environment, never from this file:
#   SYNTERN_API_KEY (or MISTRAL_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY)
#   GITHUB_TOKEN for private repositories and higher rate limits

`

func render(cfg *domain.Config, apiKey string) (string, error) {
	out := rendered{
		LLM: renderedLLM{
			Provider:  cfg.LLM.Provider,
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			Timeout:   cfg.LLM.Timeout.String(),
			APIKey:    apiKey,
			MaxTokens: cfg.LLM.MaxTokens,
		},
		Review: cfg.Review,
		Timing: TimingValues(cfg.Timing),
		Log:    cfg.Log,
		Server: cfg.Server,
	}
	data, err := toml.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Render returns the effective configuration as TOML. Secrets are redacted.
func Render(cfg *domain.Config) (string, error) {
	apiKey := "(not set)"
	if cfg.LLM.APIKey != "" {
		apiKey = "(set)"
	}
	return render(cfg, apiKey)
}

// Template returns the default configuration as an annotated TOML file.
func Template() (string, error) {
	body, err := render(domain.NewDefaultConfig(), "")
	if err != nil {
		return "", err
	}
	return templateHeader + body, nil
}
