package domain

import (
	"testing"
	"time"
)

func TestGlobalConfigDir(t *testing.T) {
	got := GlobalConfigDir("/home/user/.config")
	want := "/home/user/.config/syntern"
	if got != want {
		t.Errorf("GlobalConfigDir() = %q, want %q", got, want)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	got := GlobalConfigPath("/home/user/.config")
	want := "/home/user/.config/syntern/config.toml"
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath("/home/user/.local/state")
	want := "/home/user/.local/state/syntern/syntern.log"
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestProviderDefaults(t *testing.T) {
	tests := []struct {
		provider string
		wantURL  string
		wantLLM  string
	}{
		{ProviderMistral, "https://api.mistral.ai/v1", "mistral-small-latest"},
		{ProviderOpenAI, "https://api.openai.com/v1", "gpt-4o-mini"},
		{ProviderGemini, "", "gemini-2.0-flash"},
		{"", "https://api.mistral.ai/v1", "mistral-small-latest"},
	}
	for _, tt := range tests {
		url, model := ProviderDefaults(tt.provider)
		if url != tt.wantURL || model != tt.wantLLM {
			t.Errorf("ProviderDefaults(%q) = (%q, %q), want (%q, %q)", tt.provider, url, model, tt.wantURL, tt.wantLLM)
		}
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.LLM.Provider != DefaultProvider {
		t.Errorf("LLM.Provider = %q, want %q", cfg.LLM.Provider, DefaultProvider)
	}
	if cfg.LLM.APIKey != "" {
		t.Error("default config must not carry an API key")
	}
	if cfg.Review.Source != ReviewSourceGitHub {
		t.Errorf("Review.Source = %q, want %q", cfg.Review.Source, ReviewSourceGitHub)
	}
	if cfg.Timing.TechLeadDelay != 2800*time.Millisecond {
		t.Errorf("Timing.TechLeadDelay = %v", cfg.Timing.TechLeadDelay)
	}
	if cfg.Server.Addr != DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultServerAddr)
	}

	// Each call returns an independent value.
	cfg.Log.Level = "debug"
	if NewDefaultConfig().Log.Level != DefaultLogLevel {
		t.Error("NewDefaultConfig() shares state between calls")
	}
}
