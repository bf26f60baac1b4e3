package cli

import (
	"strings"

	"timetrack-cli/internal/report"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		out    string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the per-project CSV report (rounded up to 15 minutes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.store.Load(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			rows, err := report.Build(tasks, app.Clock())
			if err != nil {
				return writeErr(cmd, err)
			}

			if stdout {
				if err := report.WriteCSV(cmd.OutOrStdout(), rows); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}

			path := strings.TrimSpace(out)
			if path == "" {
				path = app.cfg.Report.Path
			}
			if err := report.WriteFile(path, rows); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("report written", "path", path, "rows", len(rows))
			return writeOut(cmd, app, newReportView(path, rows))
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Report file (default: report.path from config)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the CSV to stdout instead of a file")
	return cmd
}
