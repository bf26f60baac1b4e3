package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"timetrack-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the interactive screen.
type Options struct {
	Store store.Store
	// StorePath locates tui_state.json; empty disables selection restore.
	StorePath    string
	ReportPath   string
	TickInterval time.Duration
	// Theme is auto, light or dark.
	Theme  string
	Clock  func() time.Time
	Logger *slog.Logger
}

// Run starts the TUI and blocks until the user quits. It returns the store error that ended
// the session, if any, after the terminal has been restored.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference(opts.Theme)
	applyColorProfilePreference()

	m, err := newAppModel(ctx, opts)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	fm, ok := final.(appModel)
	if !ok {
		return err
	}
	fm.saveTUIState()
	if fm.err != nil {
		fm.log.Error("tui exited on store failure", "err", fm.err)
	}
	return fm.err
}
