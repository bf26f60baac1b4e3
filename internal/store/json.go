package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"

	"timetrack-cli/internal/model"
)

// JSONStore keeps the task list as a single JSON array in Path.
type JSONStore struct {
	Path string
}

// Load reads the task list. A missing or empty file is an empty list.
func (s JSONStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, ReadError{Path: s.Path, Err: err}
	}
	return decodeTasks(s.Path, b)
}

// Update loads the list, applies fn and writes the result back atomically.
func (s JSONStore) Update(ctx context.Context, fn UpdateFunc) ([]model.Task, error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(tasks)
	if err != nil {
		return nil, err
	}
	next = normalize(cloneTasks(next))

	b, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := WriteFileAtomic(s.Path, append(b, '\n')); err != nil {
		return nil, WriteError{Path: s.Path, Err: err}
	}
	return next, nil
}

func decodeTasks(path string, b []byte) ([]model.Task, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, ParseError{Path: path, Err: err}
	}
	return normalize(tasks), nil
}
