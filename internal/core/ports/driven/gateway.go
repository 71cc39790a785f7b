package driven

import (
	"context"
	"io"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// ProgressFunc receives fractional upload progress, 0-100, computed
// from bytes-sent over bytes-total at whatever granularity the
// transport provides.
type ProgressFunc func(percent float64)

// Gateway is the typed request layer over the RAG backend.
// Each operation is independently fallible and performs exactly one
// network call; no retries. Failures wrap the matching domain sentinel
// (domain.ErrUploadFailed, domain.ErrFetchFailed, ...) so callers can
// match with errors.Is.
type Gateway interface {
	// UploadDocument streams a file to the backend as multipart form
	// data and resolves with the normalized acknowledgment. onProgress
	// may be nil.
	UploadDocument(ctx context.Context, fileName string, content io.Reader, size int64, onProgress ProgressFunc) (*domain.UploadAck, error)

	// FetchDocument retrieves a single document by ID.
	// Returns domain.ErrNotFound when the backend reports 404.
	FetchDocument(ctx context.Context, id string) (*domain.Document, error)

	// FetchAllDocuments retrieves the full document set. Both the flat
	// array shape and the legacy grouped shape are normalized into the
	// canonical Document model.
	FetchAllDocuments(ctx context.Context) ([]domain.Document, error)

	// RunVectorQuery performs a similarity search and resolves with a
	// KindVector result.
	RunVectorQuery(ctx context.Context, query string, nResults int) (*domain.QueryResult, error)

	// RunLLMQuery routes the query through the language model and
	// resolves with a KindLLM result.
	RunLLMQuery(ctx context.Context, query string, nResults int) (*domain.QueryResult, error)

	// DeleteDocument removes a document by ID.
	DeleteDocument(ctx context.Context, id string) error

	// ClearCollection removes every document from the backend.
	ClearCollection(ctx context.Context) error
}
