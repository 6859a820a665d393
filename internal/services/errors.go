package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks failures rejected before any network call, such as
	// an unsupported file extension or empty text. Fully user-recoverable.
	ErrValidation = errors.New("validation error")
	// ErrTransport marks connection-level failures reaching the backend.
	ErrTransport = errors.New("transport error")
	// ErrServer marks non-success HTTP responses from the backend.
	ErrServer = errors.New("server error")
	// ErrNotFound marks lookups for records or files the backend does not hold.
	ErrNotFound = errors.New("not found")
	// ErrBusy marks an upload attempted while another session is in flight.
	ErrBusy = errors.New("session busy")
	// ErrPersistence marks local history storage failures. Callers report and
	// swallow these; they never abort an operation.
	ErrPersistence = errors.New("history persistence error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrServer
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether the user can retry the action without any local
// cleanup. Every failure in this client is recoverable; the distinction only
// exists for messaging.
func Recoverable(err error) bool {
	return err != nil
}

// UserMessage strips sentinel prefixes so CLI output reads as a plain sentence.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []error{ErrValidation, ErrTransport, ErrServer, ErrNotFound, ErrBusy, ErrPersistence} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
