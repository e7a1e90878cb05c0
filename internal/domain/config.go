package domain

import (
	"path/filepath"
	"time"
)

// Config holds the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	LLM      LLMConfig    `toml:"llm"`
	Review   ReviewConfig `toml:"review"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
	Warnings []string     `toml:"-"`
	Timing   TimingConfig `toml:"-"` // Rendered separately as duration strings
}

// LLMConfig holds completion provider settings from [llm] section.
type LLMConfig struct {
	Provider  string        `toml:"provider"`   // mistral, openai, gemini
	BaseURL   string        `toml:"base_url"`   // OpenAI-compatible API root
	Model     string        `toml:"model"`      // Model name
	APIKey    string        `toml:"-"`          // Only read from the environment
	MaxTokens int           `toml:"max_tokens"` // Completion length cap
	Timeout   time.Duration `toml:"-"`          // Per-request timeout
}

// ReviewConfig holds repository fetching settings from [review] section.
type ReviewConfig struct {
	Source       string `toml:"source"`         // github (REST API) or git (in-memory clone)
	GitHubAPI    string `toml:"github_api"`     // REST API root
	Token        string `toml:"-"`              // GITHUB_TOKEN, optional
	MaxFiles     int    `toml:"max_files"`      // Files fetched per review
	MaxFileBytes int    `toml:"max_file_bytes"` // Larger files are skipped
	ExcerptBytes int    `toml:"excerpt_bytes"`  // Per-file excerpt in the review prompt
	TreeLimit    int    `toml:"tree_limit"`     // Paths listed in the review prompt
}

// TimingConfig holds simulation pacing from [timing] section.
type TimingConfig struct {
	Tick               time.Duration // Countdown resolution
	WelcomeDelay       time.Duration // Manager greeting after going live
	TechLeadDelay      time.Duration // Tech lead greeting after going live
	MeetingDelay       time.Duration // Standup invite after the tech lead greeting
	EscalationSilence  time.Duration // Silence that triggers an escalation
	EscalationInterval time.Duration // How often silence is checked
	NotificationTTL    time.Duration // Toast lifetime
	ReviewDelay        time.Duration // Simulated review of non-technical submissions
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level"` // Log level: debug, info, warn, error
}

// ServerConfig holds HTTP API settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr"` // Listen address
	Mode string `toml:"mode"` // gin mode: debug, release, test
}

// Provider names.
const (
	ProviderMistral = "mistral"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
)

// Repository sources.
const (
	ReviewSourceGitHub = "github"
	ReviewSourceGit    = "git"
)

// Default configuration values.
const (
	DefaultProvider     = ProviderMistral
	DefaultLogLevel     = "info"
	DefaultMaxTokens    = 1000
	DefaultMaxFiles     = 8
	DefaultMaxFileBytes = 50000
	DefaultExcerptBytes = 3000
	DefaultTreeLimit    = 40
	DefaultServerAddr   = ":8080"
	DefaultGitHubAPI    = "https://api.github.com"
)

// ProviderDefaults returns the endpoint and model used when a provider is selected without overrides.
func ProviderDefaults(provider string) (baseURL, model string) {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1", "gpt-4o-mini"
	case ProviderGemini:
		return "", "gemini-2.0-flash"
	default:
		return "https://api.mistral.ai/v1", "mistral-small-latest"
	}
}

// DefaultTiming returns the standard simulation pacing.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		Tick:               time.Second,
		WelcomeDelay:       800 * time.Millisecond,
		TechLeadDelay:      2800 * time.Millisecond,
		MeetingDelay:       18 * time.Second,
		EscalationSilence:  90 * time.Second,
		EscalationInterval: 15 * time.Second,
		NotificationTTL:    4200 * time.Millisecond,
		ReviewDelay:        2 * time.Second,
	}
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	baseURL, model := ProviderDefaults(DefaultProvider)
	return &Config{
		LLM: LLMConfig{
			Provider:  DefaultProvider,
			BaseURL:   baseURL,
			Model:     model,
			MaxTokens: DefaultMaxTokens,
			Timeout:   60 * time.Second,
		},
		Review: ReviewConfig{
			Source:       ReviewSourceGitHub,
			GitHubAPI:    DefaultGitHubAPI,
			MaxFiles:     DefaultMaxFiles,
			MaxFileBytes: DefaultMaxFileBytes,
			ExcerptBytes: DefaultExcerptBytes,
			TreeLimit:    DefaultTreeLimit,
		},
		Timing: DefaultTiming(),
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
			Mode: "release",
		},
	}
}

// Directory and file names.
const (
	AppDirName          = "syntern"      // Directory name under XDG dirs
	ConfigFileName      = "config.toml"  // Global config file name
	LocalConfigFileName = "syntern.toml" // Config file in the working directory
	LogFileName         = "syntern.log"  // Log file name
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LogPath returns the log file path.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func LogPath(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, LogFileName)
}
