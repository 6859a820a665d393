package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scribe/internal/config"
)

const userAgent = "Scribe-Go/0.1.0"

// Service defines the notification surface exposed to transcription sessions.
type Service interface {
	NotifyTranscriptionCompleted(ctx context.Context, name string) error
	NotifyTranscriptionFailed(ctx context.Context, name string, cause error) error
	NotifyExportCompleted(ctx context.Context, name, format string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyTranscriptionCompleted(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	data := payload{
		title:   "Scribe - Transcription Complete",
		message: fmt.Sprintf("Transcription ready: %s", name),
		tags:    []string{"scribe", "transcription", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTranscriptionFailed(ctx context.Context, name string, cause error) error {
	name = strings.TrimSpace(name)
	var builder strings.Builder
	builder.WriteString("Transcription failed")
	if name != "" {
		builder.WriteString(": ")
		builder.WriteString(name)
	}
	if cause != nil {
		builder.WriteString("\n")
		builder.WriteString(strings.TrimSpace(cause.Error()))
	}
	data := payload{
		title:    "Scribe - Error",
		message:  builder.String(),
		tags:     []string{"scribe", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, name, format string) error {
	name = strings.TrimSpace(name)
	format = strings.TrimSpace(format)
	if format == "" {
		format = "unknown"
	}
	data := payload{
		title:   "Scribe - Export Complete",
		message: fmt.Sprintf("Exported %s as %s", name, format),
		tags:    []string{"scribe", "export", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Scribe - Test",
		message:  "Notification system test",
		tags:     []string{"scribe", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyTranscriptionCompleted(context.Context, string) error     { return nil }
func (noopService) NotifyTranscriptionFailed(context.Context, string, error) error { return nil }
func (noopService) NotifyExportCompleted(context.Context, string, string) error    { return nil }
func (noopService) TestNotification(context.Context) error                         { return nil }
