package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/railreport/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve report downloads over HTTP",
		Long: `Serve report downloads over HTTP.

  GET /api/materials/{id}/report   PDF download
  GET /api/materials/{id}          record as JSON
  GET /api/materials               record listing (?limit=N)
  GET /healthz                     build info

Requests must carry X-User-ID (and optionally X-User-Name, X-User-Role)
from the fronting gateway.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			runner, cleanup, err := c.newRunner(ctx, cfg, runnerOpts{store: true, serve: true})
			if err != nil {
				return err
			}
			defer cleanup()

			printInfo("Listening on %s", cfg.Server.Addr)
			return server.New(runner, c.Logger).ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout.Duration)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
