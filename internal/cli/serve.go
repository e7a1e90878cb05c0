package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/syntern/internal/app"
	"github.com/runoshun/syntern/internal/httpapi"
)

// serveFunc runs the HTTP server, allowing it to be mocked in tests.
var serveFunc = httpapi.Serve

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr, mode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON and server-sent events API for a browser front end.

One session is hosted at a time. Session state is kept in memory and
is lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return errors.New("app is not initialized")
			}
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("mode") {
				cfg.Mode = mode
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			manager := c.NewManager()
			defer manager.Shutdown()

			router := httpapi.NewRouter(manager, cfg, c.Logger)
			c.Logger.Info("http", "listening on "+cfg.Addr)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", cfg.Addr)
			return serveFunc(ctx, cfg.Addr, router)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from [server] addr)")
	cmd.Flags().StringVar(&mode, "mode", "", "gin mode: debug, release or test")

	return cmd
}
