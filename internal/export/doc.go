// Package export coordinates save and download operations against the
// transcription backend, keeping the local history mirror current even when
// the backend is unreachable.
package export
