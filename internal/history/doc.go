// Package history persists transcription records across runs and reconciles
// new or edited records into the stored sequence.
//
// The durable representation is a single JSON blob under a fixed key in a
// SQLite state table, mirroring the key-value storage of earlier clients. The
// Store owns the blob; the List owns ordering, deduplication by id, the
// 50-record cap, and timestamp maintenance. Rendering is someone else's job:
// consumers take Records() and build their own views.
//
// Corrupt stored data is treated as absent, not as an error.
package history
