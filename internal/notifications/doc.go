// Package notifications delivers transcription milestones via ntfy.
//
// The default implementation publishes to the topic configured in config.toml
// and gracefully degrades to a no-op when notifications are disabled. All
// callers depend only on the small Service interface.
package notifications
