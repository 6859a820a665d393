package main

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"scribe/internal/history"
)

const previewWidth = 40

func buildHistoryRows(records []history.Record) [][]string {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.DisplayName(),
			record.Size,
			formatDisplayTime(record.CreatedAt),
			formatRelativeTime(record.LastModified),
			previewText(record.Text),
		})
	}
	return rows
}

func formatDisplayTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04")
}

func formatRelativeTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return humanize.Time(value)
}

// previewText collapses whitespace and truncates to a single table cell.
func previewText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewWidth {
		return text
	}
	return string(runes[:previewWidth-3]) + "..."
}
