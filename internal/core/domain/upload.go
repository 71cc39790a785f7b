package domain

// UploadStatus is the phase of the single tracked upload lifecycle.
// Idle is represented by the absence of an UploadState.
type UploadStatus string

const (
	// UploadUploading means bytes are in transit.
	UploadUploading UploadStatus = "uploading"

	// UploadProcessing means the transfer succeeded and the server is
	// chunking/embedding the document.
	UploadProcessing UploadStatus = "processing"

	// UploadCompleted means the lifecycle finished.
	UploadCompleted UploadStatus = "completed"

	// UploadError means the transfer itself failed. Terminal until a
	// new upload starts.
	UploadError UploadStatus = "error"
)

// UploadState tracks one upload at a time. Progress is monotonically
// non-decreasing within a single upload and never exceeds 100.
type UploadState struct {
	// FileName is the name of the file being uploaded.
	FileName string

	// Progress is the transfer percentage, 0-100, derived from
	// bytes-sent over bytes-total.
	Progress float64

	// Status is the current lifecycle phase.
	Status UploadStatus
}

// UploadAck is the canonical upload acknowledgment. The backend returns
// one of two shapes ({status, chunks_added} or {doc_id}); the gateway
// normalizes both into this.
type UploadAck struct {
	// DocID is the new document's identifier, when reported.
	DocID string

	// ChunksAdded reports whether ingestion added chunks, when reported.
	ChunksAdded bool

	// Status is the raw status string, when reported.
	Status string
}
