package domain

// ProcessingStatus describes where a document is in server-side ingestion.
type ProcessingStatus string

const (
	// StatusPending means the document is queued for processing.
	StatusPending ProcessingStatus = "pending"

	// StatusProcessing means chunking/embedding is underway.
	StatusProcessing ProcessingStatus = "processing"

	// StatusCompleted means the document is fully indexed.
	StatusCompleted ProcessingStatus = "completed"

	// StatusError means server-side processing failed.
	StatusError ProcessingStatus = "error"
)

// DocumentMetadata describes a stored document. It is immutable once
// attached to a Document and only replaced wholesale on refresh.
type DocumentMetadata struct {
	// FileName is the original upload file name.
	FileName string

	// FileSize is the size in bytes, when the backend reports it.
	FileSize int64

	// UploadDate is the upload timestamp as an ISO-8601 string.
	UploadDate string

	// ChunkCount is the number of chunks produced by ingestion.
	ChunkCount int

	// Status is the server-side processing status.
	Status ProcessingStatus
}

// Chunk is a retrievable span of a document's text. Chunks are owned
// exclusively by their parent Document and never exist outside it.
type Chunk struct {
	// ID is unique within the parent document.
	ID string

	// Text is the chunk content.
	Text string

	// Summary is an optional server-generated abstract.
	Summary string

	// Metadata holds free-form scalars (page number, section name, ...).
	Metadata map[string]any

	// Embedding is the server-computed vector. Opaque to the client;
	// never computed or interpreted here.
	Embedding []float64
}

// Document is the canonical client-side representation of a stored
// document. Documents are never partially mutated in place; a fresh
// fetch always replaces them wholesale.
type Document struct {
	// ID is the globally unique document identifier.
	ID string

	// Metadata describes the document.
	Metadata DocumentMetadata

	// Chunks is the ordered sequence of chunks.
	Chunks []Chunk
}
