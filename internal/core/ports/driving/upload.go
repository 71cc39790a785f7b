package driving

import (
	"context"
	"io"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// UploadTracker owns the single tracked upload lifecycle:
// idle -> uploading -> processing -> completed, with uploading -> error
// on transport failure. Starting a new upload abandons the prior
// lifecycle's pending continuations.
type UploadTracker interface {
	// Start begins an upload and blocks until the transfer resolves.
	// The processing and completed phases, and the return to idle,
	// follow asynchronously on settle delays.
	Start(ctx context.Context, fileName string, content io.Reader, size int64) (*domain.UploadAck, error)

	// State returns a copy of the tracked state, or nil when idle.
	State() *domain.UploadState

	// SetObserver registers fn to receive a state snapshot after every
	// transition, called outside internal locks. Pass nil to
	// unsubscribe. A single observer is held at a time.
	SetObserver(fn func(domain.UploadState))

	// SetOnComplete registers fn to run when a lifecycle reaches
	// completed, after the processing settle. Driving adapters use it
	// to refresh the document collection once server-side processing
	// has landed. Pass nil to unsubscribe.
	SetOnComplete(fn func())
}
