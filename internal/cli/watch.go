package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphcheck/pkg/runner"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "watch files...",
		Short: "Re-check documents whenever they change",
		Long: `Watch checks each file once and again after every change to its content,
printing one report per change, until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := c.newRunner(cmd, &flags)
			if err != nil {
				return err
			}
			defer r.Close()
			out := newPrinter(cmd.OutOrStdout(), cfg.Output)
			loggerFromContext(cmd.Context()).Info("watching", "files", len(args))

			return r.Watch(cmd.Context(), args, func(rep *runner.Report, err error) {
				if err != nil {
					out.failure(err)
					return
				}
				out.report(rep)
			})
		},
	}

	flags.register(cmd)
	return cmd
}
