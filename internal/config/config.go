package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the user configuration. Precedence is flags, then environment, then the config
// file, then defaults.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Report ReportConfig `yaml:"report"`
	TUI    TUIConfig    `yaml:"tui"`
	Log    LogConfig    `yaml:"log"`
}

type StoreConfig struct {
	// Backend is json or sqlite.
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type ReportConfig struct {
	Path string `yaml:"path"`
}

type TUIConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	// Theme is auto, light or dark.
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	// Path "-" disables logging.
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

const (
	DefaultStorePath    = "./data/db.json"
	DefaultReportPath   = "./reports/latest_report.csv"
	DefaultTickInterval = 200 * time.Millisecond
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig  = "TIMETRACK_CONFIG"
	EnvStore   = "TIMETRACK_STORE"
	EnvBackend = "TIMETRACK_BACKEND"
	EnvReport  = "TIMETRACK_REPORT"
	EnvLog     = "TIMETRACK_LOG"
	EnvTheme   = "TIMETRACK_TUI_THEME"
)

func Default() *Config {
	return &Config{
		Store:  StoreConfig{Backend: "json", Path: DefaultStorePath},
		Report: ReportConfig{Path: DefaultReportPath},
		TUI:    TUIConfig{TickInterval: DefaultTickInterval, Theme: "auto"},
		Log:    LogConfig{Path: defaultLogPath(), Level: "info"},
	}
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "-"
	}
	return filepath.Join(home, ".timetrack", "logs", "timetrack.log")
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "timetrack", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "timetrack", "config.yaml"), nil
}

// Load reads path (or DefaultPath when empty). A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.Store.Path, EnvStore)
	set(&c.Store.Backend, EnvBackend)
	set(&c.Report.Path, EnvReport)
	set(&c.Log.Path, EnvLog)
	set(&c.TUI.Theme, EnvTheme)
}

// Validate rejects settings the program cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Store.Backend)) {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid store.backend %q (want json|sqlite)", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path is empty")
	}
	if strings.TrimSpace(c.Report.Path) == "" {
		return errors.New("report.path is empty")
	}
	if c.TUI.TickInterval <= 0 {
		return fmt.Errorf("invalid tui.tick_interval %s (must be positive)", c.TUI.TickInterval)
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Theme)) {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid tui.theme %q (want auto|light|dark)", c.TUI.Theme)
	}
	return nil
}

// applyDefaults fills in values the file left empty. A zero tick interval counts as unset;
// negative values are kept so Validate can reject them.
func (c *Config) applyDefaults() {
	d := Default()
	if strings.TrimSpace(c.Store.Backend) == "" {
		c.Store.Backend = d.Store.Backend
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = d.Store.Path
	}
	if strings.TrimSpace(c.Report.Path) == "" {
		c.Report.Path = d.Report.Path
	}
	if c.TUI.TickInterval == 0 {
		c.TUI.TickInterval = d.TUI.TickInterval
	}
	if strings.TrimSpace(c.TUI.Theme) == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if strings.TrimSpace(c.Log.Path) == "" {
		c.Log.Path = d.Log.Path
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = d.Log.Level
	}
}
