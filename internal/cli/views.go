package cli

import (
	"strconv"
	"time"

	"timetrack-cli/internal/docs"
	"timetrack-cli/internal/model"
	"timetrack-cli/internal/report"
)

type taskView struct {
	ID           int        `json:"id"`
	Project      string     `json:"project"`
	Running      bool       `json:"running"`
	RunningSince *time.Time `json:"running_since"`
	Current      string     `json:"current,omitempty"`
	Total        string     `json:"total"`
	TotalSeconds int64      `json:"total_seconds"`
	Frames       int        `json:"frames"`
}

func newTaskView(t model.Task, now time.Time) (taskView, error) {
	total, err := t.TotalDuration(now)
	if err != nil {
		return taskView{}, err
	}
	v := taskView{
		ID:           t.ID,
		Project:      t.Project,
		Running:      t.IsRunning(),
		RunningSince: t.RunningSince,
		Total:        model.FormatClock(total),
		TotalSeconds: int64(total / time.Second),
		Frames:       len(t.Times),
	}
	if t.IsRunning() {
		cur, err := t.CurrentDuration(now)
		if err != nil {
			return taskView{}, err
		}
		v.Current = model.FormatClock(cur)
	}
	return v, nil
}

func (v taskView) status() string {
	if !v.Running {
		return "Not running"
	}
	return "Running [" + v.Current + "]"
}

type taskViews []taskView

func newTaskViews(tasks []model.Task, now time.Time) (taskViews, error) {
	out := make(taskViews, 0, len(tasks))
	for _, t := range tasks {
		v, err := newTaskView(t, now)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (vs taskViews) Header() []string { return []string{"ID", "Project", "Status", "Total"} }

func (vs taskViews) Rows() [][]string {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, []string{strconv.Itoa(v.ID), v.Project, v.status(), v.Total})
	}
	return rows
}

func (v taskView) Header() []string { return taskViews{}.Header() }
func (v taskView) Rows() [][]string { return taskViews{v}.Rows() }

type toggleView struct {
	Started *int      `json:"started"`
	Stopped []int     `json:"stopped"`
	Tasks   taskViews `json:"tasks"`
}

func (v toggleView) Header() []string { return v.Tasks.Header() }
func (v toggleView) Rows() [][]string { return v.Tasks.Rows() }

type statusView struct {
	Running *taskView `json:"running"`
}

func (v statusView) Header() []string { return taskViews{}.Header() }

func (v statusView) Rows() [][]string {
	if v.Running == nil {
		return [][]string{{"-", "-", "Nothing running", "-"}}
	}
	return v.Running.Rows()
}

type reportRowView struct {
	Project      string `json:"project"`
	Duration     string `json:"duration"`
	TotalSeconds int64  `json:"total_seconds"`
}

type reportView struct {
	Path  string          `json:"path"`
	Items []reportRowView `json:"rows"`
}

func newReportView(path string, rows []report.Row) reportView {
	v := reportView{Path: path, Items: make([]reportRowView, 0, len(rows))}
	for _, r := range rows {
		v.Items = append(v.Items, reportRowView{
			Project:      r.Project,
			Duration:     report.FormatRounded(r.Total),
			TotalSeconds: int64(r.Total / time.Second),
		})
	}
	return v
}

func (v reportView) Header() []string { return []string{"Project", "Duration"} }

func (v reportView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Items))
	for _, r := range v.Items {
		rows = append(rows, []string{r.Project, r.Duration})
	}
	return rows
}

type pageViews []docs.Page

func (ps pageViews) Header() []string { return []string{"Topic", "Title"} }

func (ps pageViews) Rows() [][]string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []string{p.Topic, p.Title})
	}
	return rows
}
