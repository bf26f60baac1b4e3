package store

import (
	"context"
	"log/slog"

	"timetrack-cli/internal/model"
)

type loggedStore struct {
	next Store
	log  *slog.Logger
}

// WithLogger wraps s so every load and update is logged. A nil logger returns s unchanged.
func WithLogger(s Store, log *slog.Logger) Store {
	if log == nil {
		return s
	}
	return loggedStore{next: s, log: log}
}

func (s loggedStore) Load(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.next.Load(ctx)
	if err != nil {
		s.log.Error("store load failed", "err", err)
		return nil, err
	}
	s.log.Debug("store loaded", "tasks", len(tasks))
	return tasks, nil
}

func (s loggedStore) Update(ctx context.Context, fn UpdateFunc) ([]model.Task, error) {
	tasks, err := s.next.Update(ctx, fn)
	if err != nil {
		s.log.Warn("store update failed", "err", err)
		return nil, err
	}
	s.log.Debug("store updated", "tasks", len(tasks))
	return tasks, nil
}
