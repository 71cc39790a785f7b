// Package domain defines the core business entities for ragview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A stored document with metadata and ordered chunks
//   - Chunk: A retrievable span of a document's text
//   - QueryResult: The normalized outcome of a vector or LLM query
//   - HistoryEntry: A session-scoped record of one completed query
//   - UploadState: The lifecycle of an in-flight upload
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
