package cli

import (
	"timetrack-cli/internal/model"
	"timetrack-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Start or stop the timer of a project",
		Long:  "Start or stop the timer of a project. Starting a timer stops any other running timer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			now := app.Clock()

			var res mutate.ToggleResult
			tasks, err := app.store.Update(cmdContext(cmd), func(tasks []model.Task) ([]model.Task, error) {
				i, err := mutate.FindByID(tasks, id)
				if err != nil {
					return nil, err
				}
				res, err = mutate.Toggle(tasks, i, now)
				return tasks, err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("toggle", "task", id, "stopped", res.Stopped, "started", res.Started != nil)

			// Report every task the toggle touched, in store order.
			touched := map[int]bool{}
			for _, sid := range res.Stopped {
				touched[sid] = true
			}
			if res.Started != nil {
				touched[*res.Started] = true
			}
			var affected []model.Task
			for _, t := range tasks {
				if touched[t.ID] {
					affected = append(affected, t)
				}
			}
			views, err := newTaskViews(affected, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			stopped := res.Stopped
			if stopped == nil {
				stopped = []int{}
			}
			return writeOut(cmd, app, toggleView{Started: res.Started, Stopped: stopped, Tasks: views})
		},
	}
}
