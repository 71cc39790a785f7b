package domain

import (
	"fmt"
	"time"
)

// ResultKind discriminates the two query result variants.
type ResultKind int

const (
	// KindVector is a plain vector-search result set.
	KindVector ResultKind = iota

	// KindLLM is an LLM-composed answer with source attributions.
	KindLLM
)

// String returns the string representation of the result kind.
func (k ResultKind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindLLM:
		return "llm"
	default:
		return "unknown"
	}
}

// VectorHit is one ranked passage from a vector query.
// Distance is lower-is-better; it is carried unchanged from the wire
// and never converted to a similarity score.
type VectorHit struct {
	// Text is the passage content.
	Text string

	// Metadata holds free-form scalars from the index.
	Metadata map[string]any

	// Distance is the embedding-space distance (lower = more similar).
	Distance float64
}

// SourceNode is one cited passage backing an LLM answer.
type SourceNode struct {
	// ID identifies the source chunk.
	ID string

	// Text is the passage content.
	Text string

	// Metadata holds free-form scalars from the index.
	Metadata map[string]any

	// Score is the relevance score in [0,1] (higher = more relevant).
	Score float64
}

// QueryResult is the single display model both backend response shapes
// normalize into. Exactly one variant is populated, selected by Kind:
// Hits for KindVector, Answer and Sources for KindLLM.
type QueryResult struct {
	// Kind selects the active variant.
	Kind ResultKind

	// Query is the query text the backend echoed (or the submitted text).
	Query string

	// Answer is the LLM-composed answer. KindLLM only.
	Answer string

	// Hits are the ranked passages. KindVector only.
	Hits []VectorHit

	// Sources are the cited passages behind the answer. KindLLM only.
	Sources []SourceNode
}

// Summary derives the human-readable history line for this result:
// the answer text verbatim for the LLM variant, a synthesized count
// for the vector variant.
func (r *QueryResult) Summary() string {
	if r.Kind == KindLLM {
		return r.Answer
	}
	return fmt.Sprintf("Found %d results", len(r.Hits))
}

// SourceCount returns the number of passages backing this result.
func (r *QueryResult) SourceCount() int {
	if r.Kind == KindLLM {
		return len(r.Sources)
	}
	return len(r.Hits)
}

// HistoryEntry records one completed query for the session. Entries are
// created exactly once per successful query, never mutated afterwards,
// and live in memory only.
type HistoryEntry struct {
	// ID is unique and monotonically creation-ordered (UUIDv7).
	ID string

	// Query is the submitted query text.
	Query string

	// Answer is the display answer derived via QueryResult.Summary.
	Answer string

	// Timestamp is when the query completed.
	Timestamp time.Time

	// SourceCount is the number of backing passages.
	SourceCount int
}
