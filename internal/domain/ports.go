package domain

import (
	"context"
	"time"
)

// Completer produces text from a system instruction and an ordered conversation.
type Completer interface {
	// Complete returns the model reply. Failures wrap ErrService.
	Complete(ctx context.Context, system string, turns []Turn) (string, error)
}

// RepoFetcher reads a snapshot of a public code repository.
type RepoFetcher interface {
	// Fetch returns metadata, a file tree, and selected file contents.
	// Errors wrap ErrInvalidURL, ErrNotFoundOrPrivate or ErrUnreadable.
	Fetch(ctx context.Context, url string) (*RepoSnapshot, error)
}

// RepoSnapshot is the subset of a repository used for code review.
// Fields are ordered to minimize memory padding.
type RepoSnapshot struct {
	Files       map[string]string // path → content
	Name        string
	Description string
	Language    string
	Tree        []string // first paths of the file tree
	Order       []string // selected file paths in selection order
	Stars       int
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (default ← global ← local).
	Load() (*Config, error)
}

// ConfigInfo describes one configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	GlobalConfigInfo() ConfigInfo
	LocalConfigInfo() ConfigInfo
	// InitConfig writes the default template and returns its path.
	// It fails with ErrConfigExists rather than overwrite a file.
	InitConfig(global bool) (string, error)
	// Render returns cfg as TOML with secrets redacted.
	Render(cfg *Config) (string, error)
	// Template returns the annotated default configuration.
	Template() (string, error)
}

// Logger is the logging port used by the application layer.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. Returns false if it already ran or was stopped.
	Stop() bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc runs f in its own goroutine after d.
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f with time.AfterFunc.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
