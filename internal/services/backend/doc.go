// Package backend is the HTTP client for the transcription service: multipart
// upload, save, and export download. Failures are classified with the
// services error markers; the {"detail": ...} body convention is decoded into
// user-facing messages.
package backend
