// Package logging assembles the structured slog loggers used across Scribe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides a no-op logger for tests and wiring code that cannot
// fail. Components tag their loggers via WithComponent so every line carries a
// consistent prefix.
package logging
