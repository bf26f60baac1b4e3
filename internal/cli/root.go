package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"timetrack-cli/internal/config"
	"timetrack-cli/internal/format"
	"timetrack-cli/internal/logging"
	"timetrack-cli/internal/store"
	"timetrack-cli/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type App struct {
	ConfigPath string
	StorePath  string
	Backend    string
	LogPath    string
	PrettyJSON bool
	Format     string

	// Clock is the source of "now" for every mutation and report.
	Clock func() time.Time

	cfg       *config.Config
	store     store.Store
	log       *slog.Logger
	logCloser io.Closer

	// isTerminal reports whether the interactive screen can start.
	isTerminal func() bool
}

// Execute runs the timetrack command line with os.Args.
func Execute(ctx context.Context) error {
	app := &App{}
	return execute(ctx, app, newRootCmd(app))
}

// execute closes whatever setup opened even when the command fails, since cobra skips
// PersistentPostRunE after a RunE error.
func execute(ctx context.Context, app *App, cmd *cobra.Command) error {
	defer func() { _ = app.close() }()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(app *App) *cobra.Command {
	if app.Clock == nil {
		app.Clock = func() time.Time { return time.Now().UTC() }
	}
	if app.isTerminal == nil {
		app.isTerminal = func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		}
	}

	cmd := &cobra.Command{
		Use:          "timetrack",
		Short:        "Track time per project from the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  timetrack

  # Scriptable commands
  timetrack projects add "Client work"
  timetrack toggle 0
  timetrack status --format text

  # Write the quarter-hour report
  timetrack report --out ./reports/march.csv
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr(config.EnvConfig, ""), "Path to config file (default: $XDG_CONFIG_HOME/timetrack/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.StorePath, "store", "", "Path to the task store (overrides store.path and "+config.EnvStore+")")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Store backend: json|sqlite (overrides store.backend and "+config.EnvBackend+")")
	cmd.PersistentFlags().StringVar(&app.LogPath, "log", "", "Log file path, or - to disable (overrides log.path and "+config.EnvLog+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TIMETRACK_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// setup resolves configuration (flags, then env, then file, then defaults), starts logging
// and opens the store.
func (app *App) setup() error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if v := strings.TrimSpace(app.StorePath); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(app.Backend); v != "" {
		cfg.Store.Backend = v
	}
	if v := strings.TrimSpace(app.LogPath); v != "" {
		cfg.Log.Path = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	backend, err := store.ParseBackend(cfg.Store.Backend)
	if err != nil {
		_ = closer.Close()
		return err
	}
	s, err := store.Open(backend, cfg.Store.Path)
	if err != nil {
		_ = closer.Close()
		return err
	}

	app.cfg = cfg
	app.log = log.With("backend", string(backend), "store", cfg.Store.Path)
	app.logCloser = closer
	app.store = store.WithLogger(s, app.log)
	return nil
}

func (app *App) close() error {
	if app.logCloser == nil {
		return nil
	}
	err := app.logCloser.Close()
	app.logCloser = nil
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	if !app.isTerminal() {
		return writeErr(cmd, errors.New("interactive mode needs a terminal; run `timetrack --help` for scriptable commands"))
	}
	err := tui.Run(cmdContext(cmd), tui.Options{
		Store:        app.store,
		StorePath:    app.cfg.Store.Path,
		ReportPath:   app.cfg.Report.Path,
		TickInterval: app.cfg.TUI.TickInterval,
		Theme:        app.cfg.TUI.Theme,
		Clock:        app.Clock,
		Logger:       app.log,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut wraps data in the {"data": ...} envelope. Text output renders tables directly.
func writeOut(cmd *cobra.Command, app *App, data any) error {
	if t, ok := data.(format.Tabular); ok && strings.EqualFold(strings.TrimSpace(app.Format), "text") {
		return format.WriteTable(cmd.OutOrStdout(), t)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": data}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
