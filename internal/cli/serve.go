package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphcheck/internal/server"
	"github.com/matzehuels/graphcheck/pkg/config"
	"github.com/matzehuels/graphcheck/pkg/observability/prom"
	"github.com/matzehuels/graphcheck/pkg/runner"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve checks over HTTP",
		Long: `Serve accepts documents at POST /v1/check and answers with a JSON report.
Metrics are exposed at /metrics and liveness at /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			r, err := runner.New(cfg, c.Logger)
			if err != nil {
				return err
			}

			prom.New(prometheus.DefaultRegisterer).Install()

			printInfo(cmd.ErrOrStderr(), "%s on %s (policy %s)",
				StyleTitle.Render(appName+" serve"), StyleValue.Render(cfg.Server.Addr), r.Policy.Name)

			srv := server.New(r, server.Options{MaxBodyBytes: cfg.Server.MaxBodyBytes}, c.Logger)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	return cmd
}
