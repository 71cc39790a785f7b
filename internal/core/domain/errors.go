package domain

import "errors"

// Domain errors represent failures of the client's operations.
// Gateway adapters wrap these so callers can match with errors.Is.
var (
	// ErrEmptyQuery indicates a blank or whitespace-only query.
	// Local validation; it never reaches the network.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedResponse indicates a query response matched neither
	// the vector nor the LLM schema. A contract violation, surfaced
	// rather than silently producing an empty result.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUploadFailed indicates the upload transfer failed.
	ErrUploadFailed = errors.New("upload failed")

	// ErrFetchFailed indicates a document fetch failed.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrQueryFailed indicates a vector or LLM query failed.
	ErrQueryFailed = errors.New("query failed")

	// ErrDeleteFailed indicates a document delete failed.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrClearFailed indicates clearing the collection failed.
	ErrClearFailed = errors.New("clear collection failed")
)
