package cli

import (
	"strconv"
	"strings"

	"timetrack-cli/internal/model"
	"timetrack-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsAddCmd(app))
	cmd.AddCommand(newProjectsRmCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their status and tracked time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.store.Load(cmdContext(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			views, err := newTaskViews(tasks, app.Clock())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, views)
		},
	}
}

func newProjectsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Long:  "Add a project. Multiple arguments are joined with spaces.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Clock()
			name := strings.Join(args, " ")

			var created model.Task
			_, err := app.store.Update(cmdContext(cmd), func(tasks []model.Task) ([]model.Task, error) {
				next, t, err := mutate.AddTask(tasks, name, now)
				created = t
				return next, err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("task added", "task", created.ID, "project", created.Project)

			v, err := newTaskView(created, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, v)
		},
	}
}

func newProjectsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a project and its tracked time",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			now := app.Clock()

			var removed model.Task
			_, err = app.store.Update(cmdContext(cmd), func(tasks []model.Task) ([]model.Task, error) {
				i, err := mutate.FindByID(tasks, id)
				if err != nil {
					return nil, err
				}
				next, t, err := mutate.DeleteTask(tasks, i)
				removed = t
				return next, err
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("task deleted", "task", removed.ID, "project", removed.Project, "was_running", removed.IsRunning())

			v, err := newTaskView(removed, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, v)
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0, invalidIDError{arg: s}
	}
	return id, nil
}
