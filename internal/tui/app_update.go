package tui

import (
	"errors"
	"fmt"

	"timetrack-cli/internal/model"
	"timetrack-cli/internal/mutate"
	"timetrack-cli/internal/report"
	"timetrack-cli/internal/tui/state"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Nothing changes on a tick; it only triggers a redraw of the running timer.
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch m.state.(type) {
		case state.CreateProject:
			return m.updateCreateProject(msg)
		case state.DeleteProject:
			return m.updateDeleteProject(msg)
		case state.Help:
			return m.updateHelp(msg)
		default:
			return m.updateProjects(msg)
		}
	}
	return m, nil
}

func (m appModel) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = state.Down(m.cursor, len(m.tasks))
	case key.Matches(msg, m.keys.Up):
		m.cursor = state.Up(m.cursor, len(m.tasks))
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelected()
	case key.Matches(msg, m.keys.Add):
		m.minibuffer = ""
		m.state = state.Next(m.state, state.CreateNew{})
	case key.Matches(msg, m.keys.Delete):
		m.minibuffer = ""
		m.state = state.Next(m.state, state.Delete{})
	case key.Matches(msg, m.keys.Report):
		return m.writeReport()
	case key.Matches(msg, m.keys.Help):
		m.state = state.Next(m.state, state.ShowHelp{})
	case key.Matches(msg, m.keys.Escape):
		m.minibuffer = ""
		m.state = state.Next(m.state, state.Escape{})
	}
	return m, nil
}

func (m appModel) updateCreateProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.minibuffer = ""
		m.state = state.Next(m.state, state.Escape{})
	case tea.KeyEnter:
		return m.submitProject()
	case tea.KeyBackspace:
		m.state = state.Next(m.state, state.Backspace{})
	case tea.KeySpace:
		m.state = state.Next(m.state, state.InputCharacter{Char: ' '})
	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		for _, r := range msg.Runes {
			m.state = state.Next(m.state, state.InputCharacter{Char: r})
		}
	}
	return m, nil
}

func (m appModel) updateDeleteProject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y":
		return m.deleteSelected()
	case "n", "q", "esc":
		m.state = state.Next(m.state, state.Escape{})
	}
	return m, nil
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "?", "q":
		m.state = state.Next(m.state, state.Escape{})
	}
	return m, nil
}

func (m appModel) toggleSelected() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	now := m.clock()

	var res mutate.ToggleResult
	tasks, err := m.store.Update(m.ctx, func(tasks []model.Task) ([]model.Task, error) {
		i, err := mutate.FindByID(tasks, sel.ID)
		if err != nil {
			return nil, err
		}
		res, err = mutate.Toggle(tasks, i, now)
		return tasks, err
	})
	if err != nil {
		return m.fail("toggle", err)
	}
	m.setTasks(tasks)
	m.selectID(sel.ID)

	m.log.Info("toggle", "task", sel.ID, "stopped", res.Stopped, "started", startedID(res))
	if res.Started != nil {
		m.minibuffer = fmt.Sprintf("Started %s", sel.Project)
	} else {
		m.minibuffer = fmt.Sprintf("Stopped %s", sel.Project)
	}
	return m, nil
}

func startedID(res mutate.ToggleResult) any {
	if res.Started == nil {
		return nil
	}
	return *res.Started
}

func (m appModel) submitProject() (tea.Model, tea.Cmd) {
	cp, ok := m.state.(state.CreateProject)
	if !ok {
		return m, nil
	}
	now := m.clock()

	var created model.Task
	tasks, err := m.store.Update(m.ctx, func(tasks []model.Task) ([]model.Task, error) {
		next, t, err := mutate.AddTask(tasks, cp.Input, now)
		created = t
		return next, err
	})
	if err != nil {
		// A blank name leaves the prompt open.
		return m.fail("add project", err)
	}
	m.setTasks(tasks)
	m.selectID(created.ID)
	m.state = state.Projects{}
	m.minibuffer = fmt.Sprintf("Added %s", created.Project)
	m.log.Info("task added", "task", created.ID, "project", created.Project)
	return m, nil
}

func (m appModel) deleteSelected() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedTask()
	m.state = state.Next(m.state, state.Escape{})
	if !ok {
		return m, nil
	}

	tasks, err := m.store.Update(m.ctx, func(tasks []model.Task) ([]model.Task, error) {
		i, err := mutate.FindByID(tasks, sel.ID)
		if err != nil {
			return nil, err
		}
		next, _, err := mutate.DeleteTask(tasks, i)
		return next, err
	})
	if err != nil {
		return m.fail("delete project", err)
	}
	m.setTasks(tasks)
	m.minibuffer = fmt.Sprintf("Deleted %s", sel.Project)
	m.log.Info("task deleted", "task", sel.ID, "project", sel.Project, "was_running", sel.IsRunning())
	return m, nil
}

func (m appModel) writeReport() (tea.Model, tea.Cmd) {
	rows, err := report.Build(m.tasks, m.clock())
	if err != nil {
		return m.fail("report", err)
	}
	// The report is a side file; failing to write it does not end the session.
	if err := report.WriteFile(m.reportPath, rows); err != nil {
		m.minibuffer = fmt.Sprintf("Report failed: %v", err)
		m.log.Warn("report write failed", "path", m.reportPath, "err", err)
		return m, nil
	}
	m.minibuffer = fmt.Sprintf("Report written to %s", m.reportPath)
	m.log.Info("report written", "path", m.reportPath, "rows", len(rows))
	return m, nil
}

// fail shows recoverable errors in the minibuffer and ends the session on anything else.
func (m appModel) fail(op string, err error) (tea.Model, tea.Cmd) {
	if msg, ok := userMessage(err); ok {
		m.minibuffer = msg
		m.log.Debug(op+" rejected", "err", err)
		return m, nil
	}
	m.err = fmt.Errorf("%s: %w", op, err)
	m.log.Error(op+" failed", "err", err)
	return m, tea.Quit
}

func userMessage(err error) (string, bool) {
	var (
		oor mutate.IndexOutOfRangeError
		nf  mutate.NotFoundError
	)
	switch {
	case errors.Is(err, mutate.ErrEmptyName):
		return "Project name cannot be empty", true
	case errors.As(err, &oor):
		return "No project selected", true
	case errors.As(err, &nf):
		return "That project no longer exists", true
	case errors.Is(err, model.ErrClockSkew):
		return "A running timer starts in the future; check the system clock", true
	}
	return "", false
}
