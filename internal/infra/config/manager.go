package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/syntern/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	localDir      string // Directory holding syntern.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/syntern)
}

// NewManager creates a new Manager.
func NewManager(localDir string) *Manager {
	return &Manager{
		localDir:      localDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(localDir, globalConfDir string) *Manager {
	return &Manager{
		localDir:      localDir,
		globalConfDir: globalConfDir,
	}
}

// LocalConfigInfo returns information about syntern.toml in the local directory.
func (m *Manager) LocalConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(filepath.Join(m.localDir, domain.LocalConfigFileName))
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig writes the default template to the global or local config path.
func (m *Manager) InitConfig(global bool) (string, error) {
	path := filepath.Join(m.localDir, domain.LocalConfigFileName)
	if global {
		if m.globalConfDir == "" {
			return "", errors.New("global config directory not available")
		}
		// Create parent directory if it doesn't exist
		if err := os.MkdirAll(m.globalConfDir, 0700); err != nil {
			return "", err
		}
		path = filepath.Join(m.globalConfDir, domain.ConfigFileName)
	}

	if _, err := os.Stat(path); err == nil {
		return path, domain.ErrConfigExists
	}
	content, err := Template()
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0600)
}

// Render returns cfg as TOML with secrets redacted.
func (m *Manager) Render(cfg *domain.Config) (string, error) {
	return Render(cfg)
}

// Template returns the annotated default configuration.
func (m *Manager) Template() (string, error) {
	return Template()
}
