// Package logs provides file tailing helpers for the CLI log viewer.
//
// It streams log files with bounded memory usage, supports "last N lines"
// reads, and powers follow-mode updates for `scribe logs --follow`. Callers
// supply context cancellation so background polling shuts down cleanly when
// the CLI exits.
package logs
