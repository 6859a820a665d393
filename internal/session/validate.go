package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"scribe/internal/services"
)

// allowedExtensions are the audio/video container formats the backend accepts.
var allowedExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".mp4", ".mov", ".avi"}

// ValidateFile checks the file's final dot-suffix against the allow-list,
// case-insensitively. Rejection happens before any network call.
func ValidateFile(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return services.Wrap(services.ErrValidation, "session", "validate",
		fmt.Sprintf("unsupported file format %q; use %s", ext, FormatList()), nil)
}

// FormatList renders the allow-list for user-facing messages.
func FormatList() string {
	names := make([]string, len(allowedExtensions))
	for i, ext := range allowedExtensions {
		names[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return strings.Join(names, ", ")
}
