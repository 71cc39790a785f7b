package driving

import (
	"context"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// QuerySession owns the current query result and the session-scoped
// history.
type QuerySession interface {
	// Execute runs a vector or LLM query per useLLM. Blank or
	// whitespace-only input fails fast with domain.ErrEmptyQuery and
	// performs no network call. On success the current result is
	// replaced and a history entry is prepended. On failure prior
	// state is left untouched.
	//
	// Concurrent calls proceed independently; whichever resolves last
	// wins the current result, and each produces a history entry in
	// resolution order.
	Execute(ctx context.Context, text string, useLLM bool) (*domain.QueryResult, error)

	// ClearHistory atomically empties history and clears the current
	// result. Idempotent.
	ClearHistory()

	// Current returns the most recently committed result, or nil.
	Current() *domain.QueryResult

	// History returns the history, most recent first.
	History() []domain.HistoryEntry

	// Busy reports whether any query is in flight.
	Busy() bool

	// SetResultCount sets how many passages subsequent queries request.
	// Non-positive values are ignored.
	SetResultCount(n int)
}
