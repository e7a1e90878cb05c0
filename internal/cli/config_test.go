package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/syntern/internal/app"
	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConfigTestContainer creates an app.Container with real config infrastructure
// rooted in temporary directories.
func newConfigTestContainer(t *testing.T) (*app.Container, string, string) {
	t.Helper()
	workDir := t.TempDir()
	globalDir := filepath.Join(t.TempDir(), domain.AppDirName)

	loader := config.NewLoaderWithGlobalDir(workDir, globalDir, func(string) string { return "" })
	cfg, err := loader.Load()
	require.NoError(t, err)

	c := app.NewWithDeps(cfg, nil, nil, nil, nil)
	c.ConfigLoader = loader
	c.ConfigManager = config.NewManagerWithGlobalDir(workDir, globalDir)
	return c, workDir, globalDir
}

func runConfig(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	cmd := newConfigCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfig(t, c)

	require.NoError(t, err)
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "show")
	assert.Contains(t, output, "template")
	assert.Contains(t, output, "init")
}

func TestConfigCommand_WithoutConfigInfrastructure(t *testing.T) {
	_, err := runConfig(t, nil, "show")
	assert.ErrorIs(t, err, errNoConfig)
}

// =============================================================================
// Config Show Subcommand Tests
// =============================================================================

func TestConfigShowCommand_DisplaysEffectiveConfig(t *testing.T) {
	c, workDir, _ := newConfigTestContainer(t)
	local := filepath.Join(workDir, domain.LocalConfigFileName)
	require.NoError(t, os.WriteFile(local, []byte("[llm]\nprovider = \"gemini\"\n\n[agents]\nx = 1\n"), 0644))

	output, err := runConfig(t, c, "show")

	require.NoError(t, err)
	assert.Contains(t, output, "[Loaded from]")
	assert.Contains(t, output, "- "+local+"\n")
	assert.Contains(t, output, "(not found)")
	assert.Contains(t, output, "[Warnings]")
	assert.Contains(t, output, "unknown section: agents")
	assert.Contains(t, output, "[Effective Config]")
	assert.Contains(t, output, "provider = 'gemini'")
	assert.Contains(t, output, "api_key = '(not set)'")
}

// =============================================================================
// Config Template Subcommand Tests
// =============================================================================

func TestConfigTemplateCommand_OutputsTemplate(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfig(t, c, "template")

	require.NoError(t, err)
	assert.Contains(t, output, "# syntern configuration")
	assert.Contains(t, output, "[llm]")
	assert.Contains(t, output, "[timing]")

	// Should not contain metadata headers (just template content)
	assert.NotContains(t, output, "[Loaded from]")
	assert.NotContains(t, output, "[Effective Config]")
}

// =============================================================================
// Config Init Subcommand Tests
// =============================================================================

func TestConfigInitCommand_CreatesLocalConfig(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfig(t, c, "init")

	require.NoError(t, err)
	assert.Contains(t, output, "Created config file:")
	info := c.ConfigManager.LocalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "[llm]")
}

func TestConfigInitCommand_WithGlobalFlag(t *testing.T) {
	c, _, globalDir := newConfigTestContainer(t)

	output, err := runConfig(t, c, "init", "--global")

	require.NoError(t, err)
	assert.Contains(t, output, "Created config file: "+filepath.Join(globalDir, domain.ConfigFileName))
	assert.True(t, c.ConfigManager.GlobalConfigInfo().Exists)
	assert.False(t, c.ConfigManager.LocalConfigInfo().Exists)
}

func TestConfigInitCommand_ErrorIfFileExists(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)
	_, err := runConfig(t, c, "init")
	require.NoError(t, err)

	_, err = runConfig(t, c, "init")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigExists)
	assert.Contains(t, err.Error(), "already exists")
}
