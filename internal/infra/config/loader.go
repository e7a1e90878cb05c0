// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/syntern/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	localDir      string // Directory holding syntern.toml (usually the working directory)
	globalConfDir string // Path to global config directory (e.g., ~/.config/syntern)
}

// NewLoader creates a new Loader.
func NewLoader(localDir string) *Loader {
	return &Loader{
		getenv:        os.Getenv,
		localDir:      localDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory and environment.
// This is useful for testing.
func NewLoaderWithGlobalDir(localDir, globalConfDir string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		getenv:        getenv,
		localDir:      localDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// GlobalPath returns the global config file path.
func (l *Loader) GlobalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// LocalPath returns the local config file path.
func (l *Loader) LocalPath() string {
	return filepath.Join(l.localDir, domain.LocalConfigFileName)
}

// Load returns the merged configuration.
// Merge order: default <- global <- local <- environment (later takes precedence).
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	for _, path := range []string{l.GlobalPath(), l.LocalPath()} {
		if path == "" {
			continue
		}
		override, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		base = mergeConfigs(base, override)
	}

	applyEnv(base, l.getenv)
	return base, nil
}

// fileConfig is one parsed config file. Zero values mean "not set".
type fileConfig struct {
	domain.Config
	timing   map[string]time.Duration
	provider bool // [llm].provider was set, so provider defaults must be re-derived
}

func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return convertRaw(raw), nil
}

// convertRaw converts the raw map to a partial config and collects warnings.
func convertRaw(raw map[string]any) *fileConfig {
	res := &fileConfig{timing: make(map[string]time.Duration)}
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown section: %s", section)
			continue
		}
		switch section {
		case "llm":
			for k, v := range m {
				switch k {
				case "provider":
					res.LLM.Provider, res.provider = asString(v), true
				case "base_url":
					res.LLM.BaseURL = asString(v)
				case "model":
					res.LLM.Model = asString(v)
				case "max_tokens":
					res.LLM.MaxTokens = asInt(v)
				case "timeout":
					d, err := parseDuration(v)
					if err != nil {
						warn("invalid [llm].timeout: %v", err)
						continue
					}
					res.LLM.Timeout = d
				default:
					warn("unknown key in [llm]: %s", k)
				}
			}
		case "review":
			for k, v := range m {
				switch k {
				case "source":
					s := asString(v)
					if s != domain.ReviewSourceGitHub && s != domain.ReviewSourceGit {
						warn("invalid [review].source %q (want github or git)", s)
						continue
					}
					res.Review.Source = s
				case "github_api":
					res.Review.GitHubAPI = asString(v)
				case "max_files":
					res.Review.MaxFiles = asInt(v)
				case "max_file_bytes":
					res.Review.MaxFileBytes = asInt(v)
				case "excerpt_bytes":
					res.Review.ExcerptBytes = asInt(v)
				case "tree_limit":
					res.Review.TreeLimit = asInt(v)
				default:
					warn("unknown key in [review]: %s", k)
				}
			}
		case "timing":
			for k, v := range m {
				if !isTimingKey(k) {
					warn("unknown key in [timing]: %s", k)
					continue
				}
				d, err := parseDuration(v)
				if err != nil {
					warn("invalid [timing].%s: %v", k, err)
					continue
				}
				res.timing[k] = d
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = asString(v)
				default:
					warn("unknown key in [log]: %s", k)
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					res.Server.Addr = asString(v)
				case "mode":
					res.Server.Mode = asString(v)
				default:
					warn("unknown key in [server]: %s", k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// timingFields maps [timing] keys to TimingConfig fields.
var timingFields = map[string]func(*domain.TimingConfig) *time.Duration{
	"tick":                func(t *domain.TimingConfig) *time.Duration { return &t.Tick },
	"welcome_delay":       func(t *domain.TimingConfig) *time.Duration { return &t.WelcomeDelay },
	"techlead_delay":      func(t *domain.TimingConfig) *time.Duration { return &t.TechLeadDelay },
	"meeting_delay":       func(t *domain.TimingConfig) *time.Duration { return &t.MeetingDelay },
	"escalation_silence":  func(t *domain.TimingConfig) *time.Duration { return &t.EscalationSilence },
	"escalation_interval": func(t *domain.TimingConfig) *time.Duration { return &t.EscalationInterval },
	"notification_ttl":    func(t *domain.TimingConfig) *time.Duration { return &t.NotificationTTL },
	"review_delay":        func(t *domain.TimingConfig) *time.Duration { return &t.ReviewDelay },
}

func isTimingKey(k string) bool {
	_, ok := timingFields[k]
	return ok
}

// TimingValues returns the timing section as duration strings, keyed like the config file.
func TimingValues(t domain.TimingConfig) map[string]string {
	out := make(map[string]string, len(timingFields))
	for k, field := range timingFields {
		out[k] = field(&t).String()
	}
	return out
}

// mergeConfigs merges override into base, with override taking precedence.
func mergeConfigs(base *domain.Config, override *fileConfig) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.provider {
		result.LLM.Provider = override.LLM.Provider
		result.LLM.BaseURL, result.LLM.Model = domain.ProviderDefaults(override.LLM.Provider)
	}
	if override.LLM.BaseURL != "" {
		result.LLM.BaseURL = override.LLM.BaseURL
	}
	if override.LLM.Model != "" {
		result.LLM.Model = override.LLM.Model
	}
	if override.LLM.MaxTokens > 0 {
		result.LLM.MaxTokens = override.LLM.MaxTokens
	}
	if override.LLM.Timeout > 0 {
		result.LLM.Timeout = override.LLM.Timeout
	}

	if override.Review.Source != "" {
		result.Review.Source = override.Review.Source
	}
	if override.Review.GitHubAPI != "" {
		result.Review.GitHubAPI = override.Review.GitHubAPI
	}
	if override.Review.MaxFiles > 0 {
		result.Review.MaxFiles = override.Review.MaxFiles
	}
	if override.Review.MaxFileBytes > 0 {
		result.Review.MaxFileBytes = override.Review.MaxFileBytes
	}
	if override.Review.ExcerptBytes > 0 {
		result.Review.ExcerptBytes = override.Review.ExcerptBytes
	}
	if override.Review.TreeLimit > 0 {
		result.Review.TreeLimit = override.Review.TreeLimit
	}

	for k, d := range override.timing {
		*timingFields[k](&result.Timing) = d
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.Mode != "" {
		result.Server.Mode = override.Server.Mode
	}
	return &result
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func parseDuration(v any) (time.Duration, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("want a duration string like \"15s\", got %v", v)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}
