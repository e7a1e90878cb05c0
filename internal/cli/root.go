// Package cli provides the command-line interface for syntern.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/syntern/internal/app"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupSession = "session"
)

// NewRootCommand creates the root command for syntern.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "syntern",
		Short: "Remote internship simulator",
		Long: `syntern simulates a first day as a remote intern.

Pick a role and a session length, then work through generated tasks,
chat with your manager, tech lead, client and a fellow intern, submit
work for review and get an evaluation when the day ends.

Run without arguments for the terminal app, or "syntern serve" for the
HTTP API used by the web front end.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// config show reports warnings itself
			if c == nil || c.Config == nil || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSession, Title: "Session Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupSession

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSession

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		tuiCmd,
		serveCmd,
		configCmd,
	)

	return root
}
