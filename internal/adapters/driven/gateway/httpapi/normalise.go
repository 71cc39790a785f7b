package httpapi

import (
	"encoding/json"
	"fmt"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

// Wire shapes. These mirror the backend's JSON exactly and exist only
// inside this package; everything above it sees the domain model.

type rawQueryResponse struct {
	Query       string          `json:"query"`
	Answer      *string         `json:"answer"`
	SourceNodes []rawSourceNode `json:"source_nodes"`
	Results     []rawResult     `json:"results"`
}

type rawResult struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
	Distance float64        `json:"distance"`
}

type rawSourceNode struct {
	ID        string         `json:"id"`
	ChunkID   string         `json:"chunk_id"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	Score     *float64       `json:"score"`
	Relevance *float64       `json:"relevance"`
}

type rawChunk struct {
	ChunkID   string         `json:"chunk_id"`
	Text      string         `json:"text"`
	Summary   string         `json:"summary"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float64      `json:"embedding"`
}

type rawMetadata struct {
	FileName         string `json:"file_name"`
	FileSize         int64  `json:"file_size"`
	UploadDate       string `json:"upload_date"`
	ChunkCount       int    `json:"chunk_count"`
	ProcessingStatus string `json:"processing_status"`
}

type rawDocument struct {
	DocID    string          `json:"doc_id"`
	Metadata json.RawMessage `json:"metadata"`
	Chunks   []rawChunk      `json:"chunks"`
	Text     string          `json:"text"`
}

// rawGroupedList is the legacy grouped-by-source positional shape:
// parallel arrays of arrays where index i across ids[0], documents[0]
// and metadatas[0] describes one chunk-document.
type rawGroupedList struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
}

type rawUploadAck struct {
	Status      string `json:"status"`
	ChunksAdded bool   `json:"chunks_added"`
	DocID       string `json:"doc_id"`
}

// decodeQueryResult turns a query endpoint body into the discriminated
// QueryResult. The discriminant is structural: an "answer" field (or
// "source_nodes") selects the LLM variant, "results" the vector
// variant, and neither is a contract violation.
func decodeQueryResult(data []byte, submitted string) (*domain.QueryResult, error) {
	var raw rawQueryResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	query := raw.Query
	if query == "" {
		query = submitted
	}

	switch {
	case raw.Answer != nil || raw.SourceNodes != nil:
		sources := make([]domain.SourceNode, len(raw.SourceNodes))
		for i, node := range raw.SourceNodes {
			sources[i] = domain.SourceNode{
				ID:       nodeID(node),
				Text:     node.Text,
				Metadata: node.Metadata,
				Score:    nodeScore(node),
			}
		}
		answer := ""
		if raw.Answer != nil {
			answer = *raw.Answer
		}
		return &domain.QueryResult{
			Kind:    domain.KindLLM,
			Query:   query,
			Answer:  answer,
			Sources: sources,
		}, nil

	case raw.Results != nil:
		hits := make([]domain.VectorHit, len(raw.Results))
		for i, res := range raw.Results {
			// Distance carried unchanged: lower = more similar.
			hits[i] = domain.VectorHit{
				Text:     res.Text,
				Metadata: res.Metadata,
				Distance: res.Distance,
			}
		}
		return &domain.QueryResult{
			Kind:  domain.KindVector,
			Query: query,
			Hits:  hits,
		}, nil

	default:
		return nil, fmt.Errorf("%w: neither answer nor results present", domain.ErrMalformedResponse)
	}
}

// nodeID prefers the canonical id field, falling back to chunk_id.
func nodeID(node rawSourceNode) string {
	if node.ID != "" {
		return node.ID
	}
	return node.ChunkID
}

// nodeScore maps whichever relevance field the backend sent onto the
// canonical score attribute.
func nodeScore(node rawSourceNode) float64 {
	if node.Score != nil {
		return *node.Score
	}
	if node.Relevance != nil {
		return *node.Relevance
	}
	return 0
}

// decodeDocument turns a single-document body into the canonical model.
func decodeDocument(data []byte) (*domain.Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", domain.ErrFetchFailed, err)
	}
	doc := raw.toDomain()
	return &doc, nil
}

// decodeDocumentList accepts both list shapes observed in the wild:
// the canonical flat Document array, and the legacy grouped positional
// arrays which are flattened into single-chunk documents.
func decodeDocumentList(data []byte) ([]domain.Document, error) {
	var flat []rawDocument
	if err := json.Unmarshal(data, &flat); err == nil {
		docs := make([]domain.Document, len(flat))
		for i, raw := range flat {
			docs[i] = raw.toDomain()
		}
		return docs, nil
	}

	var grouped rawGroupedList
	if err := json.Unmarshal(data, &grouped); err != nil || len(grouped.IDs) == 0 {
		return nil, fmt.Errorf("%w: unrecognised document list shape", domain.ErrFetchFailed)
	}

	logger.Debug("Flattening legacy grouped document list")

	ids := grouped.IDs[0]
	docs := make([]domain.Document, 0, len(ids))
	for i, id := range ids {
		doc := domain.Document{ID: id}

		var text string
		if len(grouped.Documents) > 0 && i < len(grouped.Documents[0]) {
			text = grouped.Documents[0][i]
		}
		var meta map[string]any
		if len(grouped.Metadatas) > 0 && i < len(grouped.Metadatas[0]) {
			meta = grouped.Metadatas[0][i]
		}
		if meta == nil {
			meta = map[string]any{}
		}

		if source, ok := meta["source"].(string); ok {
			doc.Metadata.FileName = source
		}
		doc.Chunks = []domain.Chunk{{ID: id, Text: text, Metadata: meta}}
		doc.Metadata.ChunkCount = len(doc.Chunks)

		docs = append(docs, doc)
	}

	return docs, nil
}

// decodeUploadAck normalizes the two observed ack shapes into one.
func decodeUploadAck(data []byte) (*domain.UploadAck, error) {
	var raw rawUploadAck
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode ack: %v", domain.ErrUploadFailed, err)
	}
	return &domain.UploadAck{
		DocID:       raw.DocID,
		ChunksAdded: raw.ChunksAdded,
		Status:      raw.Status,
	}, nil
}

// toDomain converts a wire document. The metadata field itself has two
// shapes: the structured DocumentMetadata object, or a free-form map
// from the legacy chunk-per-document backend.
func (raw rawDocument) toDomain() domain.Document {
	doc := domain.Document{ID: raw.DocID}

	var structured rawMetadata
	if err := json.Unmarshal(raw.Metadata, &structured); err == nil && structured.FileName != "" {
		doc.Metadata = domain.DocumentMetadata{
			FileName:   structured.FileName,
			FileSize:   structured.FileSize,
			UploadDate: structured.UploadDate,
			ChunkCount: structured.ChunkCount,
			Status:     domain.ProcessingStatus(structured.ProcessingStatus),
		}
	} else if len(raw.Metadata) > 0 {
		var loose map[string]any
		if err := json.Unmarshal(raw.Metadata, &loose); err == nil {
			if source, ok := loose["source"].(string); ok {
				doc.Metadata.FileName = source
			}
		}
	}

	for _, chunk := range raw.Chunks {
		doc.Chunks = append(doc.Chunks, domain.Chunk{
			ID:        chunk.ChunkID,
			Text:      chunk.Text,
			Summary:   chunk.Summary,
			Metadata:  chunk.Metadata,
			Embedding: chunk.Embedding,
		})
	}

	// Legacy shape: the document is itself a single chunk.
	if len(doc.Chunks) == 0 && raw.Text != "" {
		var loose map[string]any
		_ = json.Unmarshal(raw.Metadata, &loose)
		doc.Chunks = []domain.Chunk{{ID: raw.DocID, Text: raw.Text, Metadata: loose}}
	}

	if doc.Metadata.ChunkCount == 0 {
		doc.Metadata.ChunkCount = len(doc.Chunks)
	}

	return doc
}
