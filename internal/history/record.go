package history

import (
	"path/filepath"
	"strings"
	"time"
)

// Cap is the maximum number of records the history keeps. Inserting beyond it
// evicts the oldest record by insertion order.
const Cap = 50

// Record is one transcription result. The JSON field names mirror the blob
// format written by earlier clients, so histories survive the migration.
type Record struct {
	// ID is the opaque identifier the backend assigns at upload time.
	ID string `json:"id"`
	// Filename is the user-editable display name; defaults to the uploaded
	// file's base name minus its extension.
	Filename string `json:"filename"`
	// Text is the transcribed, possibly user-edited, content.
	Text string `json:"text"`
	// Size is the human-readable formatted byte size of the original upload.
	Size string `json:"size"`
	// CreatedAt is the time of first transcription.
	CreatedAt time.Time `json:"date"`
	// LastModified is the time of the most recent edit or save. It equals
	// CreatedAt until the first edit.
	LastModified time.Time `json:"lastModified"`
}

// DisplayName returns the filename the record should be shown and exported
// under, falling back to a name derived from the id.
func (r Record) DisplayName() string {
	if name := strings.TrimSpace(r.Filename); name != "" {
		return name
	}
	return "transcription_" + r.ID
}

// DefaultName derives the initial display name from an uploaded file's name by
// stripping the final dot-suffix.
func DefaultName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
