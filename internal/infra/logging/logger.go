// Package logging provides file-based logging for syntern.
// The terminal belongs to the TUI, so all entries go to a single log file
// (usually $XDG_STATE_HOME/syntern/syntern.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/syntern/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// GlobalScope is the scope used for entries outside any session.
const GlobalScope = "global"

// sink is the log file shared by every scoped Logger.
type sink struct {
	file *os.File
	path string
	mu   sync.Mutex
}

// Logger writes leveled entries to a log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	sink  *sink
	now   func() time.Time
	scope string
	level slog.Level
}

// New creates a new Logger that appends to path.
// If path is empty, logging is disabled (returns a no-op logger).
func New(path string, level slog.Level) *Logger {
	return &Logger{
		sink:  &sink{path: path},
		now:   time.Now,
		scope: GlobalScope,
		level: level,
	}
}

// DefaultPath returns the log file path under XDG_STATE_HOME (or ~/.local/state).
// Returns "" when no home directory can be resolved.
func DefaultPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.LogPath(stateHome)
}

// WithScope returns a logger that tags entries with scope and shares the same file.
func (l *Logger) WithScope(scope string) *Logger {
	scoped := *l
	scoped.scope = scope
	return &scoped
}

// SessionScope returns the scope tag for a session ID.
func SessionScope(sessionID string) string {
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	return "session-" + sessionID
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureFile opens or returns the log file. Caller must hold s.mu.
func (s *sink) ensureFile() (*os.File, error) {
	if s.file != nil {
		return s.file, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	s.file = f
	return f, nil
}

func (s *sink) write(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.ensureFile()
	if err != nil {
		return
	}
	_, _ = io.WriteString(f, entry)
}

// Close closes the log file. Scoped loggers share it, so closing any closes all.
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.file == nil {
		return nil
	}
	err := l.sink.file.Close()
	l.sink.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [session-1a2b3c4d] [category] message
func formatLog(t time.Time, level slog.Level, scope, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, category, msg string) {
	if l.sink.path == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}
	l.sink.write(formatLog(l.now(), level, l.scope, category, msg))
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) { l.log(slog.LevelDebug, category, msg) }

// Info logs an info message.
func (l *Logger) Info(category, msg string) { l.log(slog.LevelInfo, category, msg) }

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) { l.log(slog.LevelWarn, category, msg) }

// Error logs an error message.
func (l *Logger) Error(category, msg string) { l.log(slog.LevelError, category, msg) }
