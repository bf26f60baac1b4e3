package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"timetrack-cli/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the task list in a SQLite database at Path.
// Update runs inside a single transaction and rewrites both tables.
type SQLiteStore struct {
	Path string
}

func (s SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			project TEXT NOT NULL,
			created_at TEXT NOT NULL,
			running_since TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS time_frames (
			task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			id INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			PRIMARY KEY (task_id, id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the task list. A missing database is an empty list and is not created.
func (s SQLiteStore) Load(ctx context.Context) ([]model.Task, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, ReadError{Path: s.Path, Err: err}
	}
	db, err := s.open(ctx)
	if err != nil {
		return nil, ReadError{Path: s.Path, Err: err}
	}
	defer db.Close()
	return s.readTasks(ctx, db)
}

func (s SQLiteStore) Update(ctx context.Context, fn UpdateFunc) ([]model.Task, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	tasks, err := s.readTasks(ctx, tx)
	if err != nil {
		return nil, err
	}
	next, err := fn(tasks)
	if err != nil {
		return nil, err
	}
	next = normalize(cloneTasks(next))

	// Replace-all keeps positions and ids exactly as the mutation left them.
	if _, err := tx.ExecContext(ctx, `DELETE FROM time_frames`); err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	for pos, t := range next {
		var running any
		if t.RunningSince != nil {
			running = formatInstant(*t.RunningSince)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks(id, position, project, created_at, running_since) VALUES(?, ?, ?, ?, ?)`,
			t.ID, pos, t.Project, formatInstant(t.CreatedAt), running); err != nil {
			return nil, WriteError{Path: s.Path, Err: err}
		}
		for _, f := range t.Times {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO time_frames(task_id, id, start_time, end_time) VALUES(?, ?, ?, ?)`,
				t.ID, f.ID, formatInstant(f.StartTime), formatInstant(f.EndTime)); err != nil {
				return nil, WriteError{Path: s.Path, Err: err}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	return next, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s SQLiteStore) readTasks(ctx context.Context, q queryer) ([]model.Task, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, project, created_at, running_since FROM tasks ORDER BY position`)
	if err != nil {
		return nil, ReadError{Path: s.Path, Err: err}
	}
	tasks := []model.Task{}
	byID := map[int]int{}
	for rows.Next() {
		var (
			t         model.Task
			createdAt string
			running   sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Project, &createdAt, &running); err != nil {
			_ = rows.Close()
			return nil, ReadError{Path: s.Path, Err: err}
		}
		if t.CreatedAt, err = parseInstant(createdAt); err != nil {
			_ = rows.Close()
			return nil, ParseError{Path: s.Path, Err: err}
		}
		if running.Valid {
			rs, err := parseInstant(running.String)
			if err != nil {
				_ = rows.Close()
				return nil, ParseError{Path: s.Path, Err: err}
			}
			t.RunningSince = &rs
		}
		t.Times = []model.TimeFrame{}
		byID[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Close(); err != nil {
		return nil, ReadError{Path: s.Path, Err: err}
	}
	if err := rows.Err(); err != nil {
		return nil, ReadError{Path: s.Path, Err: err}
	}

	frames, err := q.QueryContext(ctx, `SELECT task_id, id, start_time, end_time FROM time_frames ORDER BY task_id, id`)
	if err != nil {
		return nil, ReadError{Path: s.Path, Err: err}
	}
	defer frames.Close()
	for frames.Next() {
		var (
			taskID     int
			f          model.TimeFrame
			start, end string
		)
		if err := frames.Scan(&taskID, &f.ID, &start, &end); err != nil {
			return nil, ReadError{Path: s.Path, Err: err}
		}
		if f.StartTime, err = parseInstant(start); err != nil {
			return nil, ParseError{Path: s.Path, Err: err}
		}
		if f.EndTime, err = parseInstant(end); err != nil {
			return nil, ParseError{Path: s.Path, Err: err}
		}
		i, ok := byID[taskID]
		if !ok {
			continue
		}
		tasks[i].Times = append(tasks[i].Times, f)
	}
	if err := frames.Err(); err != nil {
		return nil, ReadError{Path: s.Path, Err: err}
	}
	return tasks, nil
}
