package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/runoshun/syntern/internal/app"
	"github.com/runoshun/syntern/internal/tui"
)

// errNoTTY is returned when the terminal app is started without a terminal.
var errNoTTY = errors.New("the terminal app needs an interactive terminal; use `syntern serve` to run the HTTP API instead")

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// isTTY reports whether stdout is connected to a terminal.
var isTTY = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `syntern` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal app",
		Long:  `Launch the interactive terminal app. This is the default when no command is given.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// launchTUI runs the terminal app until the user quits.
func launchTUI(c *app.Container) error {
	if !isTTY() {
		return errNoTTY
	}
	if c == nil {
		return errors.New("app is not initialized")
	}

	manager := c.NewManager()
	defer manager.Shutdown()

	model := tui.New(manager)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
