package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driven"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

const (
	// DefaultSettleDelay is how long the processing phase is shown
	// before the lifecycle moves to completed.
	DefaultSettleDelay = 1500 * time.Millisecond

	// DefaultClearDelay is how long the completed phase is shown
	// before the state returns to idle.
	DefaultClearDelay = 2 * time.Second
)

// Ensure UploadService implements the interface.
var _ driving.UploadTracker = (*UploadService)(nil)

// UploadService tracks exactly one upload lifecycle at a time.
// Starting a new upload bumps a generation counter; continuations of
// a superseded lifecycle check the counter and drop themselves.
type UploadService struct {
	gateway  driven.Gateway
	notifier driven.Notifier

	mu    sync.Mutex
	state *domain.UploadState
	gen   int

	settleDelay time.Duration
	clearDelay  time.Duration

	onComplete func()
	observer   func(domain.UploadState)
}

// NewUploadService creates a new upload lifecycle service.
// The notifier is optional (can be nil).
func NewUploadService(gateway driven.Gateway, notifier driven.Notifier) *UploadService {
	return &UploadService{
		gateway:     gateway,
		notifier:    notifier,
		settleDelay: DefaultSettleDelay,
		clearDelay:  DefaultClearDelay,
	}
}

// SetDelays overrides the settle and clear delays.
func (s *UploadService) SetDelays(settle, clear time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settleDelay = settle
	s.clearDelay = clear
}

// SetOnComplete sets the callback invoked when a lifecycle reaches
// completed. Driving adapters use it to refresh the document list.
func (s *UploadService) SetOnComplete(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onComplete = fn
}

// SetObserver sets a callback invoked with a copy of the state after
// every transition, including progress updates.
func (s *UploadService) SetObserver(fn func(domain.UploadState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observer = fn
}

// Start begins an upload and blocks until the transfer resolves.
func (s *UploadService) Start(ctx context.Context, fileName string, content io.Reader, size int64) (*domain.UploadAck, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = &domain.UploadState{
		FileName: fileName,
		Progress: 0,
		Status:   domain.UploadUploading,
	}
	observer := s.observer
	snapshot := *s.state
	s.mu.Unlock()

	logger.Info("Upload started: %s (%d bytes)", fileName, size)
	emit(observer, snapshot)

	ack, err := s.gateway.UploadDocument(ctx, fileName, content, size, func(percent float64) {
		s.progress(gen, percent)
	})
	if err != nil {
		s.fail(gen)
		logger.Warn("Upload failed: %v", err)
		s.notify(driven.LevelError, "Upload failed", "Could not upload the document")
		return nil, err
	}

	// Bytes accepted; server-side processing proceeds regardless now.
	s.transition(gen, domain.UploadProcessing, 100)
	s.notify(driven.LevelSuccess, "Uploaded", "Document uploaded and processing")

	s.mu.Lock()
	settle := s.settleDelay
	s.mu.Unlock()
	time.AfterFunc(settle, func() { s.complete(gen) })

	return ack, nil
}

// State returns a copy of the tracked state, or nil when idle.
func (s *UploadService) State() *domain.UploadState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil
	}
	snapshot := *s.state
	return &snapshot
}

// progress records a transfer progress event. Progress never decreases
// and never exceeds 100 within one upload.
func (s *UploadService) progress(gen int, percent float64) {
	s.mu.Lock()
	if s.gen != gen || s.state == nil || s.state.Status != domain.UploadUploading {
		s.mu.Unlock()
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent > s.state.Progress {
		s.state.Progress = percent
	}
	observer := s.observer
	snapshot := *s.state
	s.mu.Unlock()

	emit(observer, snapshot)
}

// transition moves the lifecycle to a new phase, pinning progress.
func (s *UploadService) transition(gen int, status domain.UploadStatus, progress float64) {
	s.mu.Lock()
	if s.gen != gen || s.state == nil {
		s.mu.Unlock()
		return
	}
	s.state.Status = status
	s.state.Progress = progress
	observer := s.observer
	snapshot := *s.state
	s.mu.Unlock()

	emit(observer, snapshot)
}

// fail marks the lifecycle as errored. Terminal until a new upload.
func (s *UploadService) fail(gen int) {
	s.mu.Lock()
	if s.gen != gen || s.state == nil {
		s.mu.Unlock()
		return
	}
	s.state.Status = domain.UploadError
	observer := s.observer
	snapshot := *s.state
	s.mu.Unlock()

	emit(observer, snapshot)
}

// complete moves processing to completed, fires the completion
// callback, and schedules the return to idle.
func (s *UploadService) complete(gen int) {
	s.mu.Lock()
	if s.gen != gen || s.state == nil || s.state.Status != domain.UploadProcessing {
		s.mu.Unlock()
		return
	}
	s.state.Status = domain.UploadCompleted
	observer := s.observer
	onComplete := s.onComplete
	clear := s.clearDelay
	snapshot := *s.state
	s.mu.Unlock()

	emit(observer, snapshot)
	if onComplete != nil {
		onComplete()
	}

	time.AfterFunc(clear, func() { s.clear(gen) })
}

// clear returns the lifecycle to idle.
func (s *UploadService) clear(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return
	}
	s.state = nil
}

// notify emits a notice if a notifier is configured.
func (s *UploadService) notify(level driven.Level, title, description string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(driven.Notice{Level: level, Title: title, Description: description})
}

// emit invokes the observer outside the lock.
func emit(observer func(domain.UploadState), state domain.UploadState) {
	if observer != nil {
		observer(state)
	}
}
