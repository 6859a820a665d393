// Package services defines shared utilities consumed by the session, export,
// and backend integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     into the client's taxonomy (validation, transport, server, not-found,
//     busy, persistence).
//   - UserMessage, which turns a classified error into the plain sentence the
//     CLI shows.
//
// Use these helpers when wiring new operations so error handling stays
// uniform across the client.
package services
