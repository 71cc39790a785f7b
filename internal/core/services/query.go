package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driven"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

// DefaultResultCount is the number of passages requested per query when
// the caller does not configure one.
const DefaultResultCount = 3

// Ensure QueryService implements the interface.
var _ driving.QuerySession = (*QueryService)(nil)

// QueryService owns the current query result and the session history.
// History is append-only (prepend), never reordered or deduplicated;
// repeated identical queries produce repeated entries.
type QueryService struct {
	gateway  driven.Gateway
	notifier driven.Notifier

	mu       sync.RWMutex
	nResults int
	current  *domain.QueryResult
	history  []domain.HistoryEntry
	inflight int

	now func() time.Time
}

// NewQueryService creates a new query session service.
// The notifier is optional (can be nil).
func NewQueryService(gateway driven.Gateway, notifier driven.Notifier) *QueryService {
	return &QueryService{
		gateway:  gateway,
		notifier: notifier,
		nResults: DefaultResultCount,
		now:      time.Now,
	}
}

// SetResultCount sets how many passages each query requests.
// Queries already in flight keep the count they started with.
func (s *QueryService) SetResultCount(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nResults = n
}

// Execute runs a query against the backend and commits the result.
func (s *QueryService) Execute(ctx context.Context, text string, useLLM bool) (*domain.QueryResult, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		logger.Debug("Rejecting blank query")
		s.notify(driven.LevelError, "Validation", "Enter a query")
		return nil, domain.ErrEmptyQuery
	}

	s.mu.Lock()
	s.inflight++
	nResults := s.nResults
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	logger.Debug("Executing query: %q (llm=%t, n=%d)", query, useLLM, nResults)

	var result *domain.QueryResult
	var err error
	if useLLM {
		result, err = s.gateway.RunLLMQuery(ctx, query, nResults)
	} else {
		result, err = s.gateway.RunVectorQuery(ctx, query, nResults)
	}
	if err != nil {
		logger.Warn("Query failed: %v", err)
		s.notify(driven.LevelError, "Query failed", "Could not execute the query")
		return nil, err
	}

	entry := domain.HistoryEntry{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Query:       entryQuery(result, query),
		Answer:      result.Summary(),
		Timestamp:   s.now(),
		SourceCount: result.SourceCount(),
	}

	s.mu.Lock()
	s.current = result
	s.history = append([]domain.HistoryEntry{entry}, s.history...)
	s.mu.Unlock()

	logger.Info("Query committed: kind=%s, sources=%d", result.Kind, result.SourceCount())

	return result, nil
}

// entryQuery prefers the query text the backend echoed back.
func entryQuery(result *domain.QueryResult, submitted string) string {
	if result.Query != "" {
		return result.Query
	}
	return submitted
}

// ClearHistory empties history and clears the current result.
func (s *QueryService) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	s.current = nil
}

// Current returns the most recently committed result, or nil.
func (s *QueryService) Current() *domain.QueryResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// History returns a snapshot of the history, most recent first.
func (s *QueryService) History() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Busy reports whether any query is in flight.
func (s *QueryService) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inflight > 0
}

// notify emits a notice if a notifier is configured.
func (s *QueryService) notify(level driven.Level, title, description string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(driven.Notice{Level: level, Title: title, Description: description})
}
