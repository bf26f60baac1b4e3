package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockSkew is returned when a running timer claims to have started after "now".
// Durations are never clamped; a future start means the clock or the store is wrong.
var ErrClockSkew = errors.New("running_since is in the future")

// Task is a tracked project with its timer history.
type Task struct {
	ID           int         `json:"id"`
	Project      string      `json:"project"`
	CreatedAt    time.Time   `json:"created_at"`
	RunningSince *time.Time  `json:"running_since"`
	Times        []TimeFrame `json:"times"`
}

// TimeFrame is one closed interval during which a task's timer was running.
type TimeFrame struct {
	ID        int       `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns the frame length truncated to whole seconds.
func (f TimeFrame) Duration() time.Duration {
	return f.EndTime.Sub(f.StartTime).Truncate(time.Second)
}

func (t Task) IsRunning() bool {
	return t.RunningSince != nil
}

// CurrentDuration returns how long the open interval has been running at now,
// or zero when the task is stopped.
func (t Task) CurrentDuration(now time.Time) (time.Duration, error) {
	if t.RunningSince == nil {
		return 0, nil
	}
	if t.RunningSince.After(now) {
		return 0, fmt.Errorf("task %d: %w (running_since=%s now=%s)",
			t.ID, ErrClockSkew, t.RunningSince.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}
	return now.Sub(*t.RunningSince), nil
}

// TotalDuration sums the closed frames (whole seconds each) and the current interval.
// A stored frame that ends before it starts is reported as ErrClockSkew.
func (t Task) TotalDuration(now time.Time) (time.Duration, error) {
	var total time.Duration
	for _, f := range t.Times {
		if f.EndTime.Before(f.StartTime) {
			return 0, fmt.Errorf("task %d frame %d: %w (start_time=%s end_time=%s)",
				t.ID, f.ID, ErrClockSkew, f.StartTime.UTC().Format(time.RFC3339), f.EndTime.UTC().Format(time.RFC3339))
		}
		total += f.Duration()
	}
	cur, err := t.CurrentDuration(now)
	if err != nil {
		return 0, err
	}
	return total + cur.Truncate(time.Second), nil
}

// Running returns the index of the first running task.
func Running(tasks []Task) (int, bool) {
	for i := range tasks {
		if tasks[i].IsRunning() {
			return i, true
		}
	}
	return -1, false
}

// FormatClock renders a duration as HH:MM:SS for live display. Hours are unbounded
// and nothing is rounded; sub-second remainders are dropped.
func FormatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
