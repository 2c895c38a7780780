// Package export turns the segment log into semicolon-separated CSV files
// that spreadsheet tools open without an import dialog.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"focusclock/internal/core/model"
)

// ErrNoWorkEntries is returned when an export would produce an empty table.
var ErrNoWorkEntries = errors.New("no work entries to export")

// utf8BOM makes Excel detect UTF-8 instead of guessing a legacy codepage.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Date", "Start", "End", "Duration"}

func isWorkKind(kind model.Kind) bool {
	return kind == model.KindFocus || kind == model.KindWork
}

// WorkRows converts the work segments of the log into CSV rows, skipping
// breaks and pauses. Durations are rounded to whole minutes.
func WorkRows(entries []model.LogEntry) [][]string {
	var rows [][]string
	for _, entry := range entries {
		if !isWorkKind(entry.Kind) {
			continue
		}
		rows = append(rows, []string{
			entry.Start.Format("02.01.06"),
			formatClock(entry.Start.Hour(), entry.Start.Minute()),
			formatClock(entry.End.Hour(), entry.End.Minute()),
			formatHoursMinutes(entry.DurationSec()),
		})
	}
	return rows
}

// WriteFile writes a full session export to path, replacing any previous
// file. It fails with ErrNoWorkEntries when the log holds no work segments.
func WriteFile(path string, entries []model.LogEntry) error {
	rows := WorkRows(entries)
	if len(rows) == 0 {
		return ErrNoWorkEntries
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}
	return file.Close()
}

// AppendWorklog appends the work segments of entries to the running worklog
// file. The header and BOM are written only when the file is created, so
// repeated flushes keep extending one table.
func AppendWorklog(path string, entries []model.LogEntry) error {
	var rows [][]string
	for _, entry := range entries {
		if entry.Kind != model.KindWork {
			continue
		}
		rows = append(rows, []string{
			entry.Start.Format("02.01.06"),
			formatClock(entry.Start.Hour(), entry.Start.Minute()),
			formatClock(entry.End.Hour(), entry.End.Minute()),
			formatHoursMinutes(entry.DurationSec()),
		})
	}
	if len(rows) == 0 {
		return ErrNoWorkEntries
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create worklog directory: %w", err)
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open worklog file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = ';'

	if isNew {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("write worklog file: %w", err)
		}
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write worklog header: %w", err)
		}
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write worklog row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush worklog file: %w", err)
	}
	return file.Close()
}

// DefaultWorklogPath is where the worklog flush accumulates by default.
func DefaultWorklogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "Documents", "FocusClock", "worklog.csv"), nil
}

// formatClock renders "9" for a full hour and "9:05" otherwise.
func formatClock(hour, minute int) string {
	if minute == 0 {
		return fmt.Sprintf("%d", hour)
	}
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// formatHoursMinutes renders a duration in words, e.g. "1h 30m" or "45m".
func formatHoursMinutes(seconds int) string {
	minutes := (seconds + 30) / 60
	hours := minutes / 60
	minutes %= 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
