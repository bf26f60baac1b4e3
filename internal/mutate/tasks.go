package mutate

import (
	"strings"
	"time"

	"timetrack-cli/internal/model"
)

// NextID returns the id for a new task: one past the largest id in the list.
// Ids are stored with the task, so deleting a task never renumbers the others.
func NextID(tasks []model.Task) int {
	next := 0
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// AddTask appends a new stopped task named name.
func AddTask(tasks []model.Task, name string, now time.Time) ([]model.Task, model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return tasks, model.Task{}, ErrEmptyName
	}
	t := model.Task{
		ID:        NextID(tasks),
		Project:   name,
		CreatedAt: now.UTC(),
		Times:     []model.TimeFrame{},
	}
	return append(tasks, t), t, nil
}

// DeleteTask removes the task at index. An open interval on the removed task is discarded
// along with it.
func DeleteTask(tasks []model.Task, index int) ([]model.Task, model.Task, error) {
	if err := checkIndex(len(tasks), index); err != nil {
		return tasks, model.Task{}, err
	}
	removed := tasks[index]
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:index]...)
	out = append(out, tasks[index+1:]...)
	return out, removed, nil
}

// FindByID returns the position of the task with the given id.
func FindByID(tasks []model.Task, id int) (int, error) {
	for i := range tasks {
		if tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, NotFoundError{Kind: "task", ID: id}
}
