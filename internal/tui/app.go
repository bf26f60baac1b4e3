package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"timetrack-cli/internal/docs"
	"timetrack-cli/internal/model"
	"timetrack-cli/internal/store"
	"timetrack-cli/internal/tui/state"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type tickMsg time.Time

type appModel struct {
	ctx   context.Context
	store store.Store
	log   *slog.Logger
	clock func() time.Time

	reportPath string
	statePath  string
	tick       time.Duration

	width  int
	height int

	tasks  []model.Task
	state  state.State
	cursor int

	keys projectsKeyMap
	help help.Model

	// minibuffer is the one-line status shown above the footer.
	minibuffer string

	// err is a store failure that ends the session.
	err error
}

func newAppModel(ctx context.Context, opts Options) (appModel, error) {
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = 200 * time.Millisecond
	}
	statePath := ""
	if strings.TrimSpace(opts.StorePath) != "" {
		statePath = store.TUIStatePath(opts.StorePath)
	}

	m := appModel{
		ctx:        ctx,
		store:      opts.Store,
		log:        log,
		clock:      clock,
		reportPath: opts.ReportPath,
		statePath:  statePath,
		tick:       tick,
		width:      80,
		height:     24,
		state:      state.Initial(),
		keys:       newProjectsKeyMap(),
		help:       help.New(),
	}

	tasks, err := m.store.Load(ctx)
	if err != nil {
		return appModel{}, err
	}
	m.setTasks(tasks)
	m.restoreSelection()
	return m, nil
}

func (m appModel) Init() tea.Cmd { return m.tickCmd() }

func (m appModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *appModel) setTasks(tasks []model.Task) {
	m.tasks = tasks
	m.cursor = state.Clamp(m.cursor, len(tasks))
	m.keys.setListEmpty(len(tasks) == 0)
}

func (m appModel) selectedTask() (model.Task, bool) {
	if len(m.tasks) == 0 {
		return model.Task{}, false
	}
	return m.tasks[state.Clamp(m.cursor, len(m.tasks))], true
}

func (m *appModel) selectID(id int) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *appModel) restoreSelection() {
	if m.statePath == "" {
		return
	}
	st, err := store.LoadTUIState(m.statePath)
	if err != nil {
		m.log.Debug("tui state not restored", "path", m.statePath, "err", err)
		return
	}
	if st.SelectedTaskID != nil {
		m.selectID(*st.SelectedTaskID)
	}
}

func (m appModel) saveTUIState() {
	if m.statePath == "" {
		return
	}
	st := &store.TUIState{Version: 1}
	if t, ok := m.selectedTask(); ok {
		id := t.ID
		st.SelectedTaskID = &id
	}
	if err := store.SaveTUIState(m.statePath, st); err != nil {
		m.log.Warn("save tui state failed", "path", m.statePath, "err", err)
	}
}

const (
	headerHeight = 1
	footerHeight = 3
)

func (m appModel) View() string {
	if m.err != nil {
		return ""
	}

	header := normalizePane(styleBar().Bold(true).Render("q: Quit | ?: Show help"), m.width, headerHeight)

	bodyH := m.height - headerHeight - footerHeight
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch st := m.state.(type) {
	case state.Help:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.viewHelp())
	case state.CreateProject:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, renderCreateProjectModal(m.width, st.Input))
	case state.DeleteProject:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.viewDeleteConfirm())
	default:
		body = m.viewTasks(bodyH)
	}
	body = normalizePane(body, m.width, bodyH)

	mini := normalizePane(m.minibuffer, m.width, 1)
	title := normalizePane(styleBar().Render("timetrack"), m.width, 1)
	m.help.Width = m.width
	footer := normalizePane(m.help.View(m.keys), m.width, 1)

	return strings.Join([]string{header, body, mini, title, footer}, "\n")
}

func (m appModel) viewTasks(height int) string {
	if len(m.tasks) == 0 {
		msg := styleMuted().Render("No projects yet. Press a to add one.")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	now := m.clock()
	// Header and top/bottom borders plus the header separator take four lines.
	start, end := visibleWindow(m.cursor, len(m.tasks), height-4)
	rows := make([][]string, 0, end-start)
	running := make(map[int]bool, end-start)
	for i := start; i < end; i++ {
		t := m.tasks[i]
		rows = append(rows, []string{t.Project, statusText(t, now), totalText(t, now)})
		running[i-start] = t.IsRunning()
	}
	selected := m.cursor - start

	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Width(m.width).
		Headers("Project", "Status", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Bold(true)
			case row == selected:
				st := styleSelectedRow().Padding(0, 1)
				if col == 1 && running[row] {
					st = st.Foreground(colorRunning)
				}
				return st
			case col == 1 && running[row]:
				return styleRunning().Padding(0, 1)
			}
			return cell
		})
	return tbl.Render()
}

func statusText(t model.Task, now time.Time) string {
	if !t.IsRunning() {
		return "Not running"
	}
	cur, err := t.CurrentDuration(now)
	if err != nil {
		return "Running [clock skew]"
	}
	return fmt.Sprintf("Running [%s]", model.FormatClock(cur))
}

func totalText(t model.Task, now time.Time) string {
	total, err := t.TotalDuration(now)
	if err != nil {
		return "--:--:--"
	}
	return model.FormatClock(total)
}

func (m appModel) viewDeleteConfirm() string {
	name := ""
	if t, ok := m.selectedTask(); ok {
		name = t.Project
	}
	body := fmt.Sprintf("Delete %q and all of its tracked time?", name)
	return renderConfirmModal(m.width, "Delete project", body, "y: Delete", "n: Keep")
}

func (m appModel) viewHelp() string {
	md, _ := docs.Get("shortcuts")
	return renderModalBox(m.width, "Help", renderMarkdown(md, modalBodyWidth(m.width)))
}
