// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/runoshun/syntern/internal/domain"
)

// CompleterCall records one request to a MockCompleter.
type CompleterCall struct {
	System string
	Turns  []domain.Turn
}

// Prompt returns the content of the last turn.
func (c CompleterCall) Prompt() string {
	if len(c.Turns) == 0 {
		return ""
	}
	return c.Turns[len(c.Turns)-1].Content
}

// MockCompleter is a test double for domain.Completer.
// Handler takes precedence over Response/Err when set.
// Fields are ordered to minimize memory padding.
type MockCompleter struct {
	Err      error
	Handler  func(system string, turns []domain.Turn) (string, error)
	Gate     chan struct{} // When non-nil, calls block until it is closed or ctx is done
	Response string
	calls    []CompleterCall
	mu       sync.Mutex
}

// Complete records the call and returns the configured reply.
func (m *MockCompleter) Complete(ctx context.Context, system string, turns []domain.Turn) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CompleterCall{System: system, Turns: append([]domain.Turn(nil), turns...)})
	gate, handler, resp, err := m.Gate, m.Handler, m.Response, m.Err
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if handler != nil {
		return handler(system, turns)
	}
	return resp, err
}

// Calls returns a copy of all recorded calls.
func (m *MockCompleter) Calls() []CompleterCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompleterCall(nil), m.calls...)
}

// CallCount returns the number of recorded calls.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// CallsWithSystem returns the calls whose system instruction contains substr.
func (m *MockCompleter) CallsWithSystem(substr string) []CompleterCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []CompleterCall
	for _, c := range m.calls {
		if strings.Contains(c.System, substr) {
			out = append(out, c)
		}
	}
	return out
}

// ServiceError returns an error that wraps domain.ErrService.
func ServiceError(status int) error {
	return &domain.ServiceError{Provider: "mock", StatusCode: status, Err: fmt.Errorf("status %d", status)}
}

// MockRepoFetcher is a test double for domain.RepoFetcher.
type MockRepoFetcher struct {
	Snapshot *domain.RepoSnapshot
	Err      error
	urls     []string
	mu       sync.Mutex
}

// Fetch records the URL and returns the configured snapshot.
func (m *MockRepoFetcher) Fetch(_ context.Context, url string) (*domain.RepoSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, url)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Snapshot, nil
}

// URLs returns the fetched URLs.
func (m *MockRepoFetcher) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}

// SampleSnapshot returns a small repository snapshot.
func SampleSnapshot() *domain.RepoSnapshot {
	return &domain.RepoSnapshot{
		Name:        "todo-app",
		Description: "A todo app",
		Language:    "Go",
		Stars:       3,
		Tree:        []string{"README.md", "main.go", "store.go"},
		Order:       []string{"README.md", "main.go"},
		Files: map[string]string{
			"README.md": "# todo-app",
			"main.go":   "package main\n\nfunc main() {}\n",
		},
	}
}

// LogEntry is one line captured by RecordingLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// RecordingLogger is a domain.Logger that keeps entries in memory.
type RecordingLogger struct {
	entries []LogEntry
	mu      sync.Mutex
}

func (l *RecordingLogger) record(level, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Category: category, Msg: msg})
}

func (l *RecordingLogger) Debug(category, msg string) { l.record("DEBUG", category, msg) }
func (l *RecordingLogger) Info(category, msg string)  { l.record("INFO", category, msg) }
func (l *RecordingLogger) Warn(category, msg string)  { l.record("WARN", category, msg) }
func (l *RecordingLogger) Error(category, msg string) { l.record("ERROR", category, msg) }

// Entries returns a copy of the captured entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// NewMockConfigLoader creates a MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	return m.Config, m.Err
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr      error
	RenderErr    error
	Rendered     *domain.Config // Last config passed to Render
	Global       domain.ConfigInfo
	Local        domain.ConfigInfo
	TemplateText string
	InitGlobal   bool // Scope of the last InitConfig call
	InitCalled   bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{TemplateText: "# template\n"}
}

// GlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo { return m.Global }

// LocalConfigInfo returns the configured local info.
func (m *MockConfigManager) LocalConfigInfo() domain.ConfigInfo { return m.Local }

// InitConfig records the call and returns the matching path.
func (m *MockConfigManager) InitConfig(global bool) (string, error) {
	m.InitCalled = true
	m.InitGlobal = global
	path := m.Local.Path
	if global {
		path = m.Global.Path
	}
	return path, m.InitErr
}

// Render records cfg and returns a short summary.
func (m *MockConfigManager) Render(cfg *domain.Config) (string, error) {
	m.Rendered = cfg
	if m.RenderErr != nil {
		return "", m.RenderErr
	}
	return fmt.Sprintf("provider = %q\n", cfg.LLM.Provider), nil
}

// Template returns TemplateText.
func (m *MockConfigManager) Template() (string, error) {
	return m.TemplateText, nil
}
