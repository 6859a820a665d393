package backend

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"scribe/internal/services"
)

const maxErrorBody = 64 << 10

// errorDetail is the backend's structured failure body.
type errorDetail struct {
	Detail string `json:"detail"`
}

// decodeError turns a non-200 response into a classified error. The backend
// reports failures as JSON {"detail": ...}; plain-text bodies are used
// verbatim, and anything else falls back to a generic message.
func decodeError(resp *http.Response, operation string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := ""
	var detail errorDetail
	if err := json.Unmarshal(raw, &detail); err == nil && strings.TrimSpace(detail.Detail) != "" {
		message = strings.TrimSpace(detail.Detail)
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		message = text
	} else {
		message = "request failed with status " + resp.Status
	}

	marker := services.ErrServer
	if resp.StatusCode == http.StatusNotFound {
		marker = services.ErrNotFound
	}
	return services.Wrap(marker, "backend", operation, message, nil)
}
