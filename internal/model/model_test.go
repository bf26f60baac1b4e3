package model

import (
	"errors"
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestTask_TotalDuration(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		now  time.Time
		want time.Duration
	}{
		{
			name: "no frames not running",
			task: Task{ID: 0, Project: "P"},
			now:  base,
			want: 0,
		},
		{
			name: "closed frames only",
			task: Task{Times: []TimeFrame{
				{ID: 0, StartTime: base, EndTime: base.Add(10 * time.Minute)},
				{ID: 1, StartTime: base.Add(time.Hour), EndTime: base.Add(time.Hour + 90*time.Second)},
			}},
			now:  base.Add(5 * time.Hour),
			want: 11*time.Minute + 30*time.Second,
		},
		{
			name: "frames truncated to whole seconds",
			task: Task{Times: []TimeFrame{
				{StartTime: base, EndTime: base.Add(1500 * time.Millisecond)},
				{StartTime: base, EndTime: base.Add(1500 * time.Millisecond)},
			}},
			now:  base,
			want: 2 * time.Second,
		},
		{
			name: "running adds current interval",
			task: Task{
				RunningSince: tp(base.Add(time.Hour)),
				Times:        []TimeFrame{{StartTime: base, EndTime: base.Add(30 * time.Minute)}},
			},
			now:  base.Add(time.Hour + 5*time.Minute),
			want: 35 * time.Minute,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.task.TotalDuration(tt.now)
			if err != nil {
				t.Fatalf("TotalDuration: %v", err)
			}
			if got != tt.want {
				t.Fatalf("TotalDuration = %v; want %v", got, tt.want)
			}

			cur, err := tt.task.CurrentDuration(tt.now)
			if err != nil {
				t.Fatalf("CurrentDuration: %v", err)
			}
			var closed time.Duration
			for _, f := range tt.task.Times {
				closed += f.Duration()
			}
			if got != closed+cur.Truncate(time.Second) {
				t.Fatalf("additivity: total=%v closed=%v current=%v", got, closed, cur)
			}
		})
	}
}

func TestTask_CurrentDuration_NotRunningIsZero(t *testing.T) {
	t.Parallel()

	task := Task{Project: "P"}
	if task.IsRunning() {
		t.Fatalf("expected not running")
	}
	d, err := task.CurrentDuration(time.Now())
	if err != nil || d != 0 {
		t.Fatalf("CurrentDuration = %v, %v; want 0, nil", d, err)
	}
}

func TestTask_CurrentDuration_FutureStartIsClockSkew(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	task := Task{ID: 3, RunningSince: tp(now.Add(time.Minute))}

	if _, err := task.CurrentDuration(now); !errors.Is(err, ErrClockSkew) {
		t.Fatalf("CurrentDuration err = %v; want ErrClockSkew", err)
	}
	if _, err := task.TotalDuration(now); !errors.Is(err, ErrClockSkew) {
		t.Fatalf("TotalDuration err = %v; want ErrClockSkew", err)
	}
}

func TestRunning(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	if _, ok := Running(nil); ok {
		t.Fatalf("expected no running task in empty list")
	}
	tasks := []Task{{ID: 0}, {ID: 1, RunningSince: &now}, {ID: 2}}
	i, ok := Running(tasks)
	if !ok || i != 1 {
		t.Fatalf("Running = %d, %v; want 1, true", i, ok)
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{61*time.Minute + 5*time.Second, "01:01:05"},
		{123*time.Hour + 4*time.Minute, "123:04:00"},
		{1500 * time.Millisecond, "00:00:01"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Fatalf("FormatClock(%v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestTask_TotalDuration_InvertedFrameIsClockSkew(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	task := Task{ID: 4, Times: []TimeFrame{
		{ID: 0, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)},
		{ID: 1, StartTime: now.Add(time.Hour), EndTime: now},
	}}

	d, err := task.TotalDuration(now)
	if !errors.Is(err, ErrClockSkew) {
		t.Fatalf("TotalDuration err = %v; want ErrClockSkew", err)
	}
	if d != 0 {
		t.Fatalf("TotalDuration = %v; want 0 on error", d)
	}
}
