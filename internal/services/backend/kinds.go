package backend

import (
	"fmt"
	"strings"

	"scribe/internal/services"
)

// ExportKind selects the document format of an export download.
type ExportKind string

const (
	// KindText exports plain UTF-8 text.
	KindText ExportKind = "txt"
	// KindDocument exports a word-processor document.
	KindDocument ExportKind = "docx"
)

// ParseExportKind validates a user-supplied kind string.
func ParseExportKind(value string) (ExportKind, error) {
	switch ExportKind(strings.ToLower(strings.TrimSpace(value))) {
	case KindText:
		return KindText, nil
	case KindDocument:
		return KindDocument, nil
	default:
		return "", services.Wrap(services.ErrValidation, "backend", "export",
			fmt.Sprintf("unsupported export kind %q; use txt or docx", value), nil)
	}
}
