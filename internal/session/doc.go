// Package session drives one media file through validation, upload, and
// transcription result capture.
//
// A session is a small state machine (idle, validating, uploading, awaiting
// result, completed/failed). Progress is a single monotonic event stream on a
// synthetic 0-100 scale; the fixed-delay "extracting audio" and "transcribing"
// checkpoints are cosmetic and are cancelled the moment the real upload
// finishes or fails. Concurrent uploads are rejected, in-process via the
// state guard and across processes via a lock file.
package session
