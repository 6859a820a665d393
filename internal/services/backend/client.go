package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"scribe/internal/config"
	"scribe/internal/services"
)

const userAgent = "Scribe/0.1.0"

// HTTPDoer describes the HTTP client used by the backend service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the transcription backend.
type Client struct {
	baseURL string
	client  HTTPDoer
}

// NewClient builds a backend client from application configuration.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Server.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NewClientWithDoer constructs a client with a custom HTTP doer (for testing).
func NewClientWithDoer(baseURL string, doer HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  doer,
	}
}

// UploadResult is the backend's response to a successful upload.
type UploadResult struct {
	FileID   string `json:"file_id"`
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// Upload transmits a media file as a single multipart body (field "file") and
// returns the transcription result. progress, when non-nil, is invoked with
// cumulative bytes sent out of the total body size as the request streams.
func (c *Client) Upload(ctx context.Context, filename string, payload io.Reader, progress func(sent, total int64)) (UploadResult, error) {
	var result UploadResult

	body, contentType, err := buildUploadForm(filename, payload)
	if err != nil {
		return result, err
	}

	total := int64(body.Len())
	var reqBody io.Reader = body
	if progress != nil {
		reqBody = &countingReader{reader: body, total: total, report: progress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", reqBody)
	if err != nil {
		return result, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	req.ContentLength = total

	resp, err := c.client.Do(req)
	if err != nil {
		return result, services.Wrap(services.ErrTransport, "backend", "upload", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, decodeError(resp, "upload")
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, services.Wrap(services.ErrServer, "backend", "upload", "decode response", err)
	}
	if result.FileID == "" {
		return result, services.Wrap(services.ErrServer, "backend", "upload", "response missing file_id", nil)
	}
	return result, nil
}

// SaveRequest carries an edited transcription to the save endpoint.
type SaveRequest struct {
	FileID   string  `json:"file_id"`
	Text     string  `json:"text"`
	Filename *string `json:"filename"`
}

// Save persists edited text and display name on the backend.
func (c *Client) Save(ctx context.Context, save SaveRequest) error {
	payload, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("marshal save request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/save", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransport, "backend", "save", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp, "save")
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// Export fetches the rendered document for a file. The caller owns the
// returned body and must close it.
func (c *Client) Export(ctx context.Context, kind ExportKind, fileID string) (io.ReadCloser, error) {
	url := fmt.Sprintf("%s/api/export/%s/%s", c.baseURL, kind, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build export request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "backend", "export", "request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, decodeError(resp, "export")
	}
	return resp.Body, nil
}

func buildUploadForm(filename string, payload io.Reader) (*bytes.Buffer, string, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, "", services.Wrap(services.ErrValidation, "backend", "upload", "filename is required", nil)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create file form field: %w", err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return nil, "", fmt.Errorf("write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
