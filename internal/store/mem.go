package store

import (
	"context"
	"sync"

	"timetrack-cli/internal/model"
)

// MemStore is an in-memory Store, used by tests and dry runs.
type MemStore struct {
	mu    sync.Mutex
	tasks []model.Task
}

func NewMemStore(tasks ...model.Task) *MemStore {
	return &MemStore{tasks: normalize(cloneTasks(tasks))}
}

func (s *MemStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks), nil
}

func (s *MemStore) Update(ctx context.Context, fn UpdateFunc) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cloneTasks(s.tasks))
	if err != nil {
		return nil, err
	}
	s.tasks = normalize(cloneTasks(next))
	return cloneTasks(s.tasks), nil
}
