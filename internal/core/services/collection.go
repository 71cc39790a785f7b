package services

import (
	"context"
	"sync"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driven"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.DocumentCollection = (*CollectionService)(nil)

// CollectionService owns the list of known documents. The collection is
// only ever replaced wholesale by Refresh or narrowed by confirmed
// removals; no incremental merging.
type CollectionService struct {
	gateway  driven.Gateway
	notifier driven.Notifier

	mu      sync.RWMutex
	docs    []domain.Document
	loading bool
}

// NewCollectionService creates a new document collection service.
// The notifier is optional (can be nil).
func NewCollectionService(gateway driven.Gateway, notifier driven.Notifier) *CollectionService {
	return &CollectionService{
		gateway:  gateway,
		notifier: notifier,
	}
}

// Refresh fetches the full document set and replaces the held
// collection. On failure the previous collection stays displayed.
func (s *CollectionService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	docs, err := s.gateway.FetchAllDocuments(ctx)
	if err != nil {
		logger.Warn("Document refresh failed: %v", err)
		s.notify(driven.LevelError, "Fetch failed", "Could not load documents")
		return err
	}

	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()

	logger.Info("Collection refreshed: %d documents", len(docs))

	return nil
}

// Remove deletes a document and, once the server acknowledges, drops
// matching entries from the held collection by identifier equality.
func (s *CollectionService) Remove(ctx context.Context, id string) error {
	if err := s.gateway.DeleteDocument(ctx, id); err != nil {
		logger.Warn("Delete failed for %s: %v", id, err)
		s.notify(driven.LevelError, "Delete failed", "Could not delete the document")
		return err
	}

	s.mu.Lock()
	kept := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	s.docs = kept
	s.mu.Unlock()

	logger.Info("Document %s removed", id)
	s.notify(driven.LevelSuccess, "Deleted", "Document removed")

	return nil
}

// ClearAll empties the backend collection and then the local one.
func (s *CollectionService) ClearAll(ctx context.Context) error {
	if err := s.gateway.ClearCollection(ctx); err != nil {
		logger.Warn("Clear collection failed: %v", err)
		s.notify(driven.LevelError, "Clear failed", "Could not clear the collection")
		return err
	}

	s.mu.Lock()
	s.docs = nil
	s.mu.Unlock()

	s.notify(driven.LevelSuccess, "Cleared", "All documents removed")

	return nil
}

// Get fetches a single document for detail display. Pass-through; the
// result is not merged into the held collection.
func (s *CollectionService) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := s.gateway.FetchDocument(ctx, id)
	if err != nil {
		logger.Warn("Fetch document %s failed: %v", id, err)
		s.notify(driven.LevelError, "Fetch failed", "Could not load the document")
		return nil, err
	}
	return doc, nil
}

// Documents returns the held collection. The slice is shared, never
// mutated in place; callers must not modify it.
func (s *CollectionService) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.docs
}

// Loading reports whether a refresh is in flight.
func (s *CollectionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// notify emits a notice if a notifier is configured.
func (s *CollectionService) notify(level driven.Level, title, description string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(driven.Notice{Level: level, Title: title, Description: description})
}
