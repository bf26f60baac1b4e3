// Package report aggregates tracked time per project and renders it as CSV.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"timetrack-cli/internal/model"
	"timetrack-cli/internal/store"
)

// Rounding is the billing granularity: totals are rounded up to the next multiple.
const Rounding = 15 * time.Minute

var header = []string{"Project", "Duration"}

// Row is one report line: a project and its total tracked time at the report instant.
type Row struct {
	Project string
	Total   time.Duration
}

// Rounded returns Total rounded up to the next quarter hour.
func (r Row) Rounded() time.Duration {
	return RoundUp(r.Total)
}

// Build returns one row per task in store order. A running task contributes its open
// interval up to now.
func Build(tasks []model.Task, now time.Time) ([]Row, error) {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		total, err := t.TotalDuration(now)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Project: t.Project, Total: total})
	}
	return rows, nil
}

// RoundUp rounds d up to the next multiple of Rounding. Zero stays zero; any positive
// remainder, even a second, moves to the next boundary.
func RoundUp(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	q := (d + Rounding - 1) / Rounding
	return q * Rounding
}

// FormatRounded renders d rounded up to the quarter hour as HH:MM.
func FormatRounded(d time.Duration) string {
	mins := int64(RoundUp(d) / time.Minute)
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// WriteCSV writes a header and one quoted row per entry.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Project, FormatRounded(r.Total)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile renders rows and replaces path with the result, creating parent directories.
// A previous report at path is overwritten.
func WriteFile(path string, rows []Row) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return err
	}
	if err := store.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
