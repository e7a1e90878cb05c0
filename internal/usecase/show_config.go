package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/syntern/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective    string            // Merged configuration as TOML, secrets redacted
	Warnings     []string          // Problems found while loading
	GlobalConfig domain.ConfigInfo // Global config file info
	LocalConfig  domain.ConfigInfo // syntern.toml in the working directory
}

// ShowConfig displays configuration file information and the effective configuration.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	effective, err := uc.configManager.Render(cfg)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return &ShowConfigOutput{
		Effective:    effective,
		Warnings:     cfg.Warnings,
		GlobalConfig: uc.configManager.GlobalConfigInfo(),
		LocalConfig:  uc.configManager.LocalConfigInfo(),
	}, nil
}
