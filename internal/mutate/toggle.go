package mutate

import (
	"fmt"
	"time"

	"timetrack-cli/internal/model"
)

type ToggleResult struct {
	// Stopped lists ids of tasks whose open interval was closed.
	Stopped []int
	// Started is the id of the task that began running, if any.
	Started *int
}

// Toggle starts or stops the timer of the task at index.
//
// Every running task is stopped first (normally at most one, but the scan does not rely on it).
// If the target was not running before the call, it is started at now. Toggling the running
// task therefore only stops it. A running task that started after now is reported as
// model.ErrClockSkew, since closing it would produce a frame that ends before it starts.
// On error the slice is left untouched.
func Toggle(tasks []model.Task, index int, now time.Time) (ToggleResult, error) {
	if err := checkIndex(len(tasks), index); err != nil {
		return ToggleResult{}, err
	}
	now = now.UTC()
	for _, t := range tasks {
		if t.RunningSince != nil && t.RunningSince.After(now) {
			return ToggleResult{}, fmt.Errorf("toggle: task %d: %w (running_since=%s now=%s)",
				t.ID, model.ErrClockSkew, t.RunningSince.UTC().Format(time.RFC3339), now.Format(time.RFC3339))
		}
	}
	wasRunning := tasks[index].IsRunning()

	var res ToggleResult
	for i := range tasks {
		if stopTask(&tasks[i], now) {
			res.Stopped = append(res.Stopped, tasks[i].ID)
		}
	}

	if !wasRunning {
		start := now
		tasks[index].RunningSince = &start
		id := tasks[index].ID
		res.Started = &id
	}
	return res, nil
}

// stopTask closes the open interval of t, if any.
func stopTask(t *model.Task, now time.Time) bool {
	if t.RunningSince == nil {
		return false
	}
	t.Times = append(t.Times, model.TimeFrame{
		ID:        len(t.Times),
		StartTime: t.RunningSince.UTC(),
		EndTime:   now,
	})
	t.RunningSince = nil
	return true
}
