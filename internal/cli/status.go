package cli

import (
	"timetrack-cli/internal/model"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running project, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.store.Load(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			out := statusView{}
			if i, ok := model.Running(tasks); ok {
				v, err := newTaskView(tasks[i], app.Clock())
				if err != nil {
					return writeErr(cmd, err)
				}
				out.Running = &v
			}
			return writeOut(cmd, app, out)
		},
	}
}
