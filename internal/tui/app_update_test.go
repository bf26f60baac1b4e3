package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timetrack-cli/internal/model"
	"timetrack-cli/internal/store"
	"timetrack-cli/internal/tui/state"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func seedTasks() []model.Task {
	return []model.Task{
		{ID: 0, Project: "Alpha", CreatedAt: testNow.Add(-time.Hour), Times: []model.TimeFrame{}},
		{ID: 1, Project: "Beta", CreatedAt: testNow.Add(-time.Hour), Times: []model.TimeFrame{}},
		{ID: 2, Project: "Gamma", CreatedAt: testNow.Add(-time.Hour), Times: []model.TimeFrame{}},
	}
}

func newTestModel(t *testing.T, s store.Store) appModel {
	t.Helper()
	m, err := newAppModel(context.Background(), Options{
		Store:      s,
		ReportPath: filepath.Join(t.TempDir(), "reports", "latest_report.csv"),
		Clock:      fixedClock,
	})
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press feeds keys one at a time and returns the final model and the last command.
func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(appModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func mustLoad(t *testing.T, s store.Store) []model.Task {
	t.Helper()
	tasks, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tasks
}

func TestNavigation_Wraps(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, store.NewMemStore(seedTasks()...))
	m, _ = press(t, m, "k")
	if m.cursor != 2 {
		t.Fatalf("up from first row: cursor = %d; want 2", m.cursor)
	}
	m, _ = press(t, m, "j")
	if m.cursor != 0 {
		t.Fatalf("down from last row: cursor = %d; want 0", m.cursor)
	}
	m, _ = press(t, m, "down", "down", "up")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d; want 1", m.cursor)
	}
}

func TestNavigation_EmptyListIsNoop(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, store.NewMemStore())
	m, cmd := press(t, m, "j", "k", "space", "d")
	if m.cursor != 0 || cmd != nil {
		t.Fatalf("cursor = %d cmd = %v; want 0, nil", m.cursor, cmd)
	}
	if _, ok := m.state.(state.Projects); !ok {
		t.Fatalf("delete on empty list changed state to %#v", m.state)
	}
}

func TestToggle_StartStopAndSwitch(t *testing.T) {
	t.Parallel()

	s := store.NewMemStore(seedTasks()...)
	m := newTestModel(t, s)

	m, _ = press(t, m, "space")
	tasks := mustLoad(t, s)
	if !tasks[0].IsRunning() || !m.tasks[0].IsRunning() {
		t.Fatalf("expected Alpha running")
	}
	if m.minibuffer != "Started Alpha" {
		t.Fatalf("minibuffer = %q", m.minibuffer)
	}

	m, _ = press(t, m, "j", "enter")
	tasks = mustLoad(t, s)
	if tasks[0].IsRunning() || !tasks[1].IsRunning() {
		t.Fatalf("expected only Beta running: %+v", tasks)
	}
	if len(tasks[0].Times) != 1 {
		t.Fatalf("expected Alpha to gain one frame; got %d", len(tasks[0].Times))
	}

	m, _ = press(t, m, "space")
	tasks = mustLoad(t, s)
	if _, ok := model.Running(tasks); ok {
		t.Fatalf("expected nothing running")
	}
	if m.minibuffer != "Stopped Beta" {
		t.Fatalf("minibuffer = %q", m.minibuffer)
	}
}

func TestToggle_DuplicateIDsTargetSelectedRow(t *testing.T) {
	t.Parallel()

	s := store.NewMemStore(
		model.Task{ID: 1, Project: "B", Times: []model.TimeFrame{}},
		model.Task{ID: 1, Project: "C", Times: []model.TimeFrame{}},
	)
	m := newTestModel(t, s)

	m, _ = press(t, m, "j", "space")
	tasks := mustLoad(t, s)
	if tasks[0].IsRunning() || !tasks[1].IsRunning() {
		t.Fatalf("expected only C running: %+v", tasks)
	}
	if m.minibuffer != "Started C" {
		t.Fatalf("minibuffer = %q", m.minibuffer)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d; want 1", m.cursor)
	}

	m, _ = press(t, m, "d", "y")
	tasks = mustLoad(t, s)
	if len(tasks) != 1 || tasks[0].Project != "B" {
		t.Fatalf("expected only B left: %+v", tasks)
	}
}

func TestToggle_ClockSkewShownInMinibuffer(t *testing.T) {
	t.Parallel()

	future := testNow.Add(time.Hour)
	tasks := seedTasks()
	tasks[0].RunningSince = &future
	s := store.NewMemStore(tasks...)
	m := newTestModel(t, s)

	m, cmd := press(t, m, "j", "space")
	if isQuit(cmd) || m.err != nil {
		t.Fatalf("clock skew should not end the session: %v", m.err)
	}
	if !strings.Contains(m.minibuffer, "future") {
		t.Fatalf("minibuffer = %q", m.minibuffer)
	}
	got := mustLoad(t, s)
	if !got[0].IsRunning() || got[1].IsRunning() || len(got[0].Times) != 0 {
		t.Fatalf("expected store unchanged: %+v", got)
	}
}

func TestCreateProject_Submit(t *testing.T) {
	t.Parallel()

	s := store.NewMemStore(seedTasks()...)
	m := newTestModel(t, s)

	m, _ = press(t, m, "a", "N", "e", "w", "x", "backspace", "space", "q")
	cp, ok := m.state.(state.CreateProject)
	if !ok || cp.Input != "New q" {
		t.Fatalf("state = %#v; want CreateProject{New q}", m.state)
	}

	m, cmd := press(t, m, "enter")
	if isQuit(cmd) {
		t.Fatalf("submit should not quit")
	}
	if _, ok := m.state.(state.Projects); !ok {
		t.Fatalf("state = %#v; want Projects", m.state)
	}
	tasks := mustLoad(t, s)
	if len(tasks) != 4 || tasks[3].Project != "New q" || tasks[3].ID != 3 {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if m.cursor != 3 {
		t.Fatalf("cursor = %d; want new task selected", m.cursor)
	}
}

func TestCreateProject_BlankNameRejected(t *testing.T) {
	t.Parallel()

	s := store.NewMemStore(seedTasks()...)
	m := newTestModel(t, s)

	m, cmd := press(t, m, "a", "space", "enter")
	if isQuit(cmd) {
		t.Fatalf("blank name must not quit")
	}
	if _, ok := m.state.(state.CreateProject); !ok {
		t.Fatalf("state = %#v; want CreateProject", m.state)
	}
	if m.minibuffer != "Project name cannot be empty" {
		t.Fatalf("minibuffer = %q", m.minibuffer)
	}
	if got := len(mustLoad(t, s)); got != 3 {
		t.Fatalf("tasks = %d; want 3", got)
	}

	m, _ = press(t, m, "esc")
	if _, ok := m.state.(state.Projects); !ok {
		t.Fatalf("esc: state = %#v; want Projects", m.state)
	}
}

func TestCreateProject_CtrlCQuits(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, store.NewMemStore())
	_, cmd := press(t, m, "a", "ctrl+c")
	if !isQuit(cmd) {
		t.Fatalf("ctrl+c should quit")
	}
}

func TestDeleteProject_ConfirmAndDecline(t *testing.T) {
	t.Parallel()

	s := store.NewMemStore(seedTasks()...)
	m := newTestModel(t, s)

	m, _ = press(t, m, "j", "d")
	if _, ok := m.state.(state.DeleteProject); !ok {
		t.Fatalf("state = %#v; want DeleteProject", m.state)
	}
	m, cmd := press(t, m, "q")
	if isQuit(cmd) {
		t.Fatalf("q declines deletion; it must not quit")
	}
	if _, ok := m.state.(state.Projects); !ok || len(mustLoad(t, s)) != 3 {
		t.Fatalf("decline should keep all tasks")
	}

	m, _ = press(t, m, "d", "y")
	tasks := mustLoad(t, s)
	if len(tasks) != 2 || tasks[0].Project != "Alpha" || tasks[1].Project != "Gamma" || tasks[1].ID != 2 {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}
	if _, ok := m.state.(state.Projects); !ok {
		t.Fatalf("state = %#v; want Projects", m.state)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d; want 1", m.cursor)
	}
}

func TestDeleteLastTask_ClampsCursor(t *testing.T) {
	t.Parallel()

	s := store.NewMemStore(seedTasks()...)
	m := newTestModel(t, s)
	m, _ = press(t, m, "k", "d", "y")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d; want 1", m.cursor)
	}
}

func TestHelp_OpenAndClose(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, store.NewMemStore(seedTasks()...))
	m, _ = press(t, m, "?")
	if _, ok := m.state.(state.Help); !ok {
		t.Fatalf("state = %#v; want Help", m.state)
	}
	m, cmd := press(t, m, "q")
	if isQuit(cmd) {
		t.Fatalf("q closes help; it must not quit")
	}
	if _, ok := m.state.(state.Projects); !ok {
		t.Fatalf("state = %#v; want Projects", m.state)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, store.NewMemStore(seedTasks()...))
	if _, cmd := press(t, m, "q"); !isQuit(cmd) {
		t.Fatalf("q should quit")
	}
	if _, cmd := press(t, m, "ctrl+c"); !isQuit(cmd) {
		t.Fatalf("ctrl+c should quit")
	}
}

func TestReport_WritesCSV(t *testing.T) {
	t.Parallel()

	start := testNow.Add(-16 * time.Minute)
	tasks := seedTasks()
	tasks[1].RunningSince = &start
	m := newTestModel(t, store.NewMemStore(tasks...))

	m, _ = press(t, m, "r")
	b, err := os.ReadFile(m.reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	want := "Project,Duration\nAlpha,00:00\nBeta,00:30\nGamma,00:00\n"
	if string(b) != want {
		t.Fatalf("report = %q; want %q", b, want)
	}
	if !strings.HasPrefix(m.minibuffer, "Report written to ") {
		t.Fatalf("minibuffer = %q", m.minibuffer)
	}
}

type failingStore struct {
	*store.MemStore
	err error
}

func (s failingStore) Update(context.Context, store.UpdateFunc) ([]model.Task, error) {
	return nil, s.err
}

func TestStoreWriteFailureIsFatal(t *testing.T) {
	t.Parallel()

	werr := store.WriteError{Path: "db.json", Err: errors.New("disk full")}
	m := newTestModel(t, failingStore{MemStore: store.NewMemStore(seedTasks()...), err: werr})

	m, cmd := press(t, m, "space")
	if !isQuit(cmd) {
		t.Fatalf("store failure should quit")
	}
	var got store.WriteError
	if !errors.As(m.err, &got) {
		t.Fatalf("err = %v; want WriteError", m.err)
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after fatal error")
	}
}

type loadFailStore struct{ store.Store }

func (loadFailStore) Load(context.Context) ([]model.Task, error) {
	return nil, store.ParseError{Path: "db.json", Err: errors.New("bad json")}
}

func TestNewAppModel_LoadFailure(t *testing.T) {
	t.Parallel()

	_, err := newAppModel(context.Background(), Options{Store: loadFailStore{}})
	var pe store.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v; want ParseError", err)
	}
}

func TestTick_ReschedulesWithoutMutation(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, store.NewMemStore(seedTasks()...))
	next, cmd := m.Update(tickMsg(testNow))
	if cmd == nil {
		t.Fatalf("tick should schedule the next tick")
	}
	if got := next.(appModel); len(got.tasks) != 3 || got.minibuffer != "" {
		t.Fatalf("tick mutated the model")
	}
}

func TestSelectionIsRestoredAcrossSessions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := store.NewMemStore(seedTasks()...)
	opts := Options{Store: s, StorePath: filepath.Join(dir, "db.json"), Clock: fixedClock}

	m, err := newAppModel(context.Background(), opts)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	m, _ = press(t, m, "j", "j")
	m.saveTUIState()

	m2, err := newAppModel(context.Background(), opts)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	if m2.cursor != 2 {
		t.Fatalf("restored cursor = %d; want 2", m2.cursor)
	}
}
