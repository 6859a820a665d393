package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/services/backend"
	"scribe/internal/textutil"
)

// Backend is the client surface the coordinator needs.
type Backend interface {
	Save(ctx context.Context, save backend.SaveRequest) error
	Export(ctx context.Context, kind backend.ExportKind, fileID string) (io.ReadCloser, error)
}

// Outcome reports where an edit ended up. Synced is false when the backend
// rejected or never received the save; the local history copy is still
// current in that case and SyncErr explains what went wrong upstream.
type Outcome struct {
	Record  history.Record
	Synced  bool
	SyncErr error
}

// Result is a completed download.
type Result struct {
	Outcome
	Path string
}

// Coordinator pushes edits to the backend, mirrors them into local history,
// and downloads rendered exports. Backend unavailability degrades saves to
// local-only instead of failing them.
type Coordinator struct {
	backend Backend
	history *history.List
	logger  *slog.Logger
}

func NewCoordinator(client Backend, hist *history.List, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		backend: client,
		history: hist,
		logger:  logging.WithComponent(logger, "export"),
	}
}

// Save stores edited text under id. The backend copy is updated when
// reachable; the local history copy is updated regardless. filename, when
// non-empty, renames the record on both sides.
func (c *Coordinator) Save(ctx context.Context, id, text, filename string) (Outcome, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Outcome{}, services.Wrap(services.ErrValidation, "export", "save", "transcription id is required", nil)
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{}, services.Wrap(services.ErrValidation, "export", "save", "cannot save empty text", nil)
	}
	filename = strings.TrimSpace(filename)

	request := backend.SaveRequest{FileID: id, Text: text}
	if filename != "" {
		request.Filename = &filename
	}

	var (
		synced  = true
		syncErr error
	)
	if err := c.backend.Save(ctx, request); err != nil {
		synced = false
		syncErr = err
		c.logger.Warn("backend save failed, keeping local copy",
			slog.String("id", id), slog.Any("error", err))
	}

	record := history.Record{ID: id, Text: text, Filename: filename}
	upserted, err := c.history.Upsert(ctx, record)
	if err != nil {
		// The in-memory list already holds the edit; only the durable
		// copy is behind.
		c.logger.Warn("history persist failed", slog.String("id", id), slog.Any("error", err))
	}

	return Outcome{Record: upserted, Synced: synced, SyncErr: syncErr}, nil
}

// Export saves the record's current text first, then downloads the rendered
// document to destPath. A degraded save (backend copy stale or missing) does
// not block the download; a validation failure does. destPath may be empty
// or a directory, in which case the backend-style download name
// ("<name>.<ext>") is used.
func (c *Coordinator) Export(ctx context.Context, kind backend.ExportKind, id, destPath string) (Result, error) {
	record, ok := c.history.Find(id)
	if !ok {
		return Result{}, services.Wrap(services.ErrNotFound, "export", "export",
			fmt.Sprintf("no transcription with id %q", id), nil)
	}

	outcome, err := c.Save(ctx, record.ID, record.Text, record.Filename)
	if err != nil {
		return Result{}, err
	}

	body, err := c.backend.Export(ctx, kind, record.ID)
	if err != nil {
		return Result{Outcome: outcome}, err
	}
	defer body.Close()

	path := resolveDestPath(destPath, outcome.Record, kind)
	if err := writeFile(path, body); err != nil {
		return Result{Outcome: outcome}, services.Wrap(services.ErrPersistence, "export", "export",
			fmt.Sprintf("cannot write %s", path), err)
	}

	c.logger.Info("export written",
		slog.String("id", record.ID), slog.String("format", string(kind)), slog.String("path", path))
	return Result{Outcome: outcome, Path: path}, nil
}

func resolveDestPath(destPath string, record history.Record, kind backend.ExportKind) string {
	base := textutil.SanitizeFileName(record.DisplayName())
	if base == "" {
		base = "transcription_" + record.ID
	}
	name := base + "." + string(kind)
	if destPath == "" {
		return name
	}
	if info, err := os.Stat(destPath); err == nil && info.IsDir() {
		return filepath.Join(destPath, name)
	}
	return destPath
}

func writeFile(path string, body io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	return out.Close()
}
