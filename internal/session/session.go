package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"scribe/internal/history"
	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/services/backend"
)

// State tracks one upload's position in its lifecycle.
type State string

const (
	StateIdle           State = "idle"
	StateValidating     State = "validating"
	StateUploading      State = "uploading"
	StateAwaitingResult State = "awaiting_result"
	StateCompleted      State = "completed"
	StateFailed         State = "failed"
)

// Event is one progress update on the synthetic 0-100 scale. The scale is
// cosmetic: uploading spans 10-40, the checkpoint stages are fixed-delay
// markers, and none of it reflects real server-side processing time.
type Event struct {
	Percent int
	Stage   string
}

// Uploader is the backend surface the session needs.
type Uploader interface {
	Upload(ctx context.Context, filename string, payload io.Reader, progress func(sent, total int64)) (backend.UploadResult, error)
}

// Session drives one file through validation, upload-with-progress, and
// result capture, handing the finished record to the history reconciler.
//
// Only one upload may be in flight at a time: a second Run is rejected with
// services.ErrBusy, both in-process and across processes (via the session
// lock file).
type Session struct {
	uploader Uploader
	history  *history.List
	logger   *slog.Logger
	lockPath string

	// Checkpoint delays; shortened in tests.
	extractAfter    time.Duration
	transcribeAfter time.Duration

	mu       sync.Mutex
	state    State
	sink     func(Event)
	lastPct  int
	terminal bool
}

// New constructs a session. lockPath may be empty to disable the
// cross-process guard.
func New(uploader Uploader, hist *history.List, logger *slog.Logger, lockPath string) *Session {
	return &Session{
		uploader:        uploader,
		history:         hist,
		logger:          logging.WithComponent(logger, "session"),
		lockPath:        lockPath,
		state:           StateIdle,
		extractAfter:    time.Second,
		transcribeAfter: 2 * time.Second,
	}
}

// WithCheckpointDelays overrides the cosmetic checkpoint timing (for testing).
func (s *Session) WithCheckpointDelays(extract, transcribe time.Duration) *Session {
	s.extractAfter = extract
	s.transcribeAfter = transcribe
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run transcribes one file. emit, when non-nil, receives a monotonic stream
// of progress events; the stream stops permanently once Run reaches a
// terminal state, including events from checkpoint timers still pending.
func (s *Session) Run(ctx context.Context, path string, emit func(Event)) (history.Record, error) {
	if err := s.begin(emit); err != nil {
		return history.Record{}, err
	}

	log := s.logger.With(slog.String("session_id", uuid.NewString()), slog.String("file", filepath.Base(path)))

	record, err := s.run(ctx, path, log)
	if err != nil {
		s.finish(StateFailed)
		log.Error("transcription failed", slog.Any("error", err))
		return history.Record{}, err
	}
	s.finish(StateCompleted)
	log.Info("transcription complete", slog.String("id", record.ID))
	return record, nil
}

func (s *Session) run(ctx context.Context, path string, log *slog.Logger) (history.Record, error) {
	s.emit(0, "Validating file")

	if err := ValidateFile(path); err != nil {
		return history.Record{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return history.Record{}, services.Wrap(services.ErrValidation, "session", "validate", "cannot read file", err)
	}
	if info.IsDir() {
		return history.Record{}, services.Wrap(services.ErrValidation, "session", "validate",
			fmt.Sprintf("%q is a directory", path), nil)
	}

	unlock, err := s.acquireLock()
	if err != nil {
		return history.Record{}, err
	}
	defer unlock()

	file, err := os.Open(path)
	if err != nil {
		return history.Record{}, services.Wrap(services.ErrValidation, "session", "open", "cannot read file", err)
	}
	defer file.Close()

	s.setState(StateUploading)
	s.emit(uploadFloor, "Uploading file")
	log.Info("upload started", slog.Int64("bytes", info.Size()))

	// Cosmetic checkpoint timers run alongside the real upload and are
	// cancelled with it.
	checkpointCtx, cancelCheckpoints := context.WithCancel(ctx)
	defer cancelCheckpoints()
	go s.runCheckpoints(checkpointCtx)

	result, err := s.uploader.Upload(ctx, filepath.Base(path), file, func(sent, total int64) {
		if sent >= total {
			s.setState(StateAwaitingResult)
		}
		s.emit(uploadPercent(sent, total), "Uploading file")
	})
	if err != nil {
		return history.Record{}, err
	}
	cancelCheckpoints()

	s.emit(100, "Done")

	name := history.DefaultName(path)
	if name == "" && result.Filename != "" {
		name = history.DefaultName(result.Filename)
	}
	record := history.Record{
		ID:       result.FileID,
		Filename: name,
		Text:     result.Text,
		Size:     humanize.Bytes(uint64(info.Size())),
	}

	upserted, err := s.history.Upsert(ctx, record)
	if err != nil {
		// Local persistence failures never fail the transcription.
		log.Warn("history persist failed", slog.Any("error", err))
	}
	if upserted.ID != "" {
		record = upserted
	}
	return record, nil
}

const (
	uploadFloor = 10
	uploadSpan  = 30
)

func uploadPercent(sent, total int64) int {
	if total <= 0 {
		return uploadFloor
	}
	return uploadFloor + int(uploadSpan*sent/total)
}

func (s *Session) runCheckpoints(ctx context.Context) {
	checkpoints := []struct {
		after time.Duration
		event Event
	}{
		{s.extractAfter, Event{Percent: 50, Stage: "Extracting audio"}},
		{s.transcribeAfter, Event{Percent: 70, Stage: "Transcribing"}},
	}

	start := time.Now()
	for _, cp := range checkpoints {
		delay := cp.after - time.Since(start)
		if delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
		s.emit(cp.event.Percent, cp.event.Stage)
	}
}

func (s *Session) begin(emit func(Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateValidating, StateUploading, StateAwaitingResult:
		return services.Wrap(services.ErrBusy, "session", "start", "an upload is already in flight", nil)
	}
	s.state = StateValidating
	s.sink = emit
	s.lastPct = 0
	s.terminal = false
	return nil
}

func (s *Session) finish(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.terminal = true
	s.sink = nil
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.terminal {
		s.state = state
	}
}

// emit forwards a progress event unless the session already reached a
// terminal state or the event would move the bar backwards.
func (s *Session) emit(percent int, stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal || s.sink == nil || percent < s.lastPct {
		return
	}
	s.lastPct = percent
	s.sink(Event{Percent: percent, Stage: stage})
}

func (s *Session) acquireLock() (func(), error) {
	if s.lockPath == "" {
		return func() {}, nil
	}
	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrBusy, "session", "start", "another scribe upload is running", nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
