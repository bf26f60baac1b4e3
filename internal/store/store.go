package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timetrack-cli/internal/model"
)

// UpdateFunc receives a private copy of the stored task list and returns the list to persist.
// Returning an error aborts the update and nothing is written.
type UpdateFunc func(tasks []model.Task) ([]model.Task, error)

// Store is the durable record of all tasks. Every mutation is a full read-modify-write of the
// collection performed by Update; there are no partial writes.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, fn UpdateFunc) ([]model.Task, error)
}

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackendJSON):
		return BackendJSON, nil
	case string(BackendSQLite):
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unknown store backend: %q (want json|sqlite)", s)
	}
}

// Open returns the store implementation for backend rooted at path.
func Open(backend Backend, path string) (Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("open %s store: empty path", backend)
	}
	switch backend {
	case BackendJSON, "":
		return JSONStore{Path: path}, nil
	case BackendSQLite:
		return SQLiteStore{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", backend)
	}
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	for i, t := range in {
		out[i] = t
		if t.RunningSince != nil {
			rs := *t.RunningSince
			out[i].RunningSince = &rs
		}
		out[i].Times = append([]model.TimeFrame{}, t.Times...)
	}
	return out
}

// normalize puts instants in UTC and replaces nil frame slices so a list survives a
// save/load cycle unchanged. Later tasks that repeat an earlier id get a fresh one.
func normalize(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	dedupeIDs(tasks)
	for i := range tasks {
		t := &tasks[i]
		t.CreatedAt = t.CreatedAt.UTC()
		if t.RunningSince != nil {
			rs := t.RunningSince.UTC()
			t.RunningSince = &rs
		}
		if t.Times == nil {
			t.Times = []model.TimeFrame{}
		}
		for j := range t.Times {
			t.Times[j].StartTime = t.Times[j].StartTime.UTC()
			t.Times[j].EndTime = t.Times[j].EndTime.UTC()
		}
	}
	return tasks
}

// dedupeIDs keeps the first task holding each id and renumbers the rest past the current
// maximum, in list order. Files written by older versions assigned ids by list length and
// can carry the same id twice.
func dedupeIDs(tasks []model.Task) {
	next := 0
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	seen := make(map[int]bool, len(tasks))
	for i := range tasks {
		if seen[tasks[i].ID] {
			tasks[i].ID = next
			next++
		}
		seen[tasks[i].ID] = true
	}
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
