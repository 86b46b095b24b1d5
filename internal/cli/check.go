package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/matzehuels/graphcheck/pkg/document"
	"github.com/matzehuels/graphcheck/pkg/runner"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check documents for cycles and unencodable values",
		Long: `Check decodes each document and walks it under the selected policy.

With no files, or "-", the document is read from standard input; its format
then defaults to JSON unless --format is given. The exit status is 1 when any
document is unsafe or could not be checked.`,
		Example: `  graphcheck check config.json values.yaml
  graphcheck check --policy cycle --yaml-nodes chart/values.yaml
  cat payload.json | graphcheck check -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cfg, err := c.newRunner(cmd, &flags)
			if err != nil {
				return err
			}
			defer r.Close()
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := newPrinter(cmd.OutOrStdout(), cfg.Output)

			prog := newProgress(logger)
			var reports []*runner.Report
			var errs error

			if len(args) == 0 || slices.Contains(args, stdinArg) {
				format := r.Format
				if format == "" {
					format = document.FormatJSON
				}
				rep, err := r.CheckReader(ctx, "stdin", cmd.InOrStdin(), format)
				if err != nil {
					errs = multierr.Append(errs, err)
				} else {
					reports = append(reports, rep)
				}
			}

			files := slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == stdinArg })
			if len(files) > 0 {
				fileReports, err := r.CheckFiles(ctx, files)
				if ctx.Err() != nil {
					return ctx.Err()
				}
				reports = append(reports, fileReports...)
				errs = multierr.Append(errs, err)
			}

			unsafe := 0
			for _, rep := range reports {
				out.report(rep)
				if !rep.Safe() {
					unsafe++
				}
			}
			failed := multierr.Errors(errs)
			for _, err := range failed {
				out.failure(err)
			}
			out.summary(len(reports), unsafe, len(failed))
			prog.done(fmt.Sprintf("Checked %d documents", len(reports)))

			if unsafe > 0 || len(failed) > 0 {
				return ErrUnsafe
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
