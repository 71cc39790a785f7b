package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClient("http://rag.local:9000/")
	assert.Equal(t, "http://rag.local:9000", c.BaseURL())
}

func TestClient_RunVectorQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "what is chunking", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("n_results"))
		_, _ = w.Write([]byte(`{"query": "what is chunking", "results": [{"text": "a", "metadata": {}, "distance": 0.3}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.RunVectorQuery(context.Background(), "what is chunking", 5)
	require.NoError(t, err)
	assert.Equal(t, domain.KindVector, result.Kind)
	require.Len(t, result.Hits, 1)
}

func TestClient_RunLLMQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query-llm", r.URL.Path)
		_, _ = w.Write([]byte(`{"query": "q", "answer": "an answer", "source_nodes": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.RunLLMQuery(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, domain.KindLLM, result.Kind)
	assert.Equal(t, "an answer", result.Answer)
}

func TestClient_QueryFailureCarriesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.RunVectorQuery(context.Background(), "q", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQueryFailed)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-document", r.URL.Path)
		assert.Equal(t, "doc-1", r.URL.Query().Get("doc_id"))
		_, _ = w.Write([]byte(`{"doc_id": "doc-1", "metadata": {"file_name": "a.pdf", "chunk_count": 1}, "chunks": [{"chunk_id": "c1", "text": "t"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	doc, err := c.FetchDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.Metadata.FileName)
}

func TestClient_FetchDocument_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such document", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchDocument(context.Background(), "doc-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_QueryNotFoundIsPlainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no route", http.StatusNotFound)
	}))
	defer srv.Close()

	// Only FetchDocument has a not-found contract; a 404 from the query
	// endpoints is an ordinary failure.
	c := NewClient(srv.URL)
	_, err := c.RunVectorQuery(context.Background(), "q", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQueryFailed)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	_, err = c.RunLLMQuery(context.Background(), "q", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQueryFailed)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_FetchAllDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents", r.URL.Path)
		_, _ = w.Write([]byte(`[{"doc_id": "doc-1", "metadata": {"file_name": "a.pdf"}, "chunks": []}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	docs, err := c.FetchAllDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestClient_FetchAllDocuments_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchAllDocuments(context.Background())
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_FetchAllDocuments_NotFoundIsPlainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no route", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchAllDocuments(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_DeleteDocument(t *testing.T) {
	var gotMethod, gotPath, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotID = r.URL.Query().Get("doc_id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DeleteDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/delete-document", gotPath)
	assert.Equal(t, "doc-1", gotID)
}

func TestClient_DeleteDocument_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DeleteDocument(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
}

func TestClient_ClearCollection(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.ClearCollection(context.Background()))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/clear-collection", gotPath)
}

func TestClient_UploadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-pdf", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf content", string(content))

		_, _ = w.Write([]byte(`{"status": "success", "chunks_added": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	var progress []float64
	ack, err := c.UploadDocument(context.Background(), "report.pdf", strings.NewReader("pdf content"), 11, func(p float64) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.True(t, ack.ChunksAdded)

	// Progress is reported, never decreases, never exceeds 100, and
	// ends at 100 once the body is fully drained.
	require.NotEmpty(t, progress)
	last := 0.0
	for _, p := range progress {
		assert.GreaterOrEqual(t, p, last)
		assert.LessOrEqual(t, p, 100.0)
		last = p
	}
	assert.Equal(t, 100.0, last)
}

func TestClient_UploadDocument_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad file", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.UploadDocument(context.Background(), "x.pdf", strings.NewReader("x"), 1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Contains(t, err.Error(), "422")
}
