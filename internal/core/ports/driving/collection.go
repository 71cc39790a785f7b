package driving

import (
	"context"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// DocumentCollection owns the list of known documents.
// The held collection is always a strict subset or exact copy of the
// last successful Refresh, modulo completed Remove calls; it is never
// independently appended to.
type DocumentCollection interface {
	// Refresh fetches the full document set and replaces the held
	// collection wholesale. On failure the previous collection stays
	// available (stale-but-available).
	Refresh(ctx context.Context) error

	// Remove deletes a document. The local collection is mutated only
	// after the server acknowledges; on failure it is untouched.
	Remove(ctx context.Context, id string) error

	// ClearAll empties the backend collection, then the local one.
	ClearAll(ctx context.Context) error

	// Get fetches a single document for detail display.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Documents returns the held collection. Callers must not mutate it.
	Documents() []domain.Document

	// Loading reports whether a refresh is in flight.
	Loading() bool
}
