package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driven"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the HTTP request timeout for queries and fetches.
	DefaultTimeout = 30 * time.Second

	// UploadTimeout is the more generous timeout for uploads.
	UploadTimeout = 5 * time.Minute
)

// Ensure Client implements the interface.
var _ driven.Gateway = (*Client)(nil)

// Client is the HTTP implementation of the backend gateway.
// Each operation performs exactly one request; retry policy, if any,
// belongs to the caller.
type Client struct {
	baseURL string
	httpc   *http.Client
	uploadc *http.Client
}

// NewClient creates a gateway client for the given base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: DefaultTimeout},
		uploadc: &http.Client{Timeout: UploadTimeout},
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadDocument streams the file as multipart form data to
// POST /upload-pdf, reporting fractional progress from bytes sent over
// bytes total.
func (c *Client) UploadDocument(ctx context.Context, fileName string, content io.Reader, size int64, onProgress driven.ProgressFunc) (*domain.UploadAck, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: build form: %v", domain.ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("%w: read file: %v", domain.ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: build form: %v", domain.ErrUploadFailed, err)
	}

	// Progress is measured against the multipart body, which is what
	// actually crosses the wire.
	total := int64(body.Len())
	reader := &progressReader{r: &body, total: total, onProgress: onProgress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-pdf", reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	logger.Debug("POST /upload-pdf: %s (%d bytes, %d on the wire)", fileName, size, total)

	resp, err := c.uploadc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadFailed, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUploadFailed, err)
	}

	return decodeUploadAck(data)
}

// FetchDocument retrieves one document via GET /get-document.
// A 404 maps to domain.ErrNotFound; only this operation has a
// not-found contract.
func (c *Client) FetchDocument(ctx context.Context, id string) (*domain.Document, error) {
	query := url.Values{"doc_id": {id}}
	data, err := c.get(ctx, "/get-document", query, domain.ErrFetchFailed, domain.ErrNotFound)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

// FetchAllDocuments retrieves the full document set via GET /documents.
func (c *Client) FetchAllDocuments(ctx context.Context) ([]domain.Document, error) {
	data, err := c.get(ctx, "/documents", nil, domain.ErrFetchFailed, nil)
	if err != nil {
		return nil, err
	}
	return decodeDocumentList(data)
}

// RunVectorQuery performs a similarity search via GET /query.
func (c *Client) RunVectorQuery(ctx context.Context, query string, nResults int) (*domain.QueryResult, error) {
	params := url.Values{
		"q":         {query},
		"n_results": {strconv.Itoa(nResults)},
	}
	data, err := c.get(ctx, "/query", params, domain.ErrQueryFailed, nil)
	if err != nil {
		return nil, err
	}
	return decodeQueryResult(data, query)
}

// RunLLMQuery routes the query through the language model via
// GET /query-llm.
func (c *Client) RunLLMQuery(ctx context.Context, query string, nResults int) (*domain.QueryResult, error) {
	params := url.Values{
		"q":         {query},
		"n_results": {strconv.Itoa(nResults)},
	}
	data, err := c.get(ctx, "/query-llm", params, domain.ErrQueryFailed, nil)
	if err != nil {
		return nil, err
	}
	return decodeQueryResult(data, query)
}

// DeleteDocument removes a document via DELETE /delete-document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	u := c.baseURL + "/delete-document?" + url.Values{"doc_id": {id}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	}

	logger.Debug("DELETE /delete-document: %s", id)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%w: %s", domain.ErrDeleteFailed, resp.Status)
	}
	return nil
}

// ClearCollection empties the backend via POST /clear-collection.
func (c *Client) ClearCollection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/clear-collection", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClearFailed, err)
	}

	logger.Debug("POST /clear-collection")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClearFailed, err)
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return fmt.Errorf("%w: %s", domain.ErrClearFailed, resp.Status)
	}
	return nil
}

// get issues a GET request and returns the body, wrapping failures
// with the given sentinel. When notFound is non-nil a 404 maps to it
// instead; every other endpoint treats 404 as a plain failure.
func (c *Client) get(ctx context.Context, path string, params url.Values, sentinel, notFound error) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel, err)
	}

	logger.Debug("GET %s", path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel, err)
	}
	defer resp.Body.Close()

	if notFound != nil && resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", notFound, resp.Status)
	}
	if !is2xx(resp.StatusCode) {
		// No structured error body; the status text is the message.
		return nil, fmt.Errorf("%w: %s", sentinel, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", sentinel, err)
	}
	return data, nil
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}

// progressReader reports transfer progress as the HTTP transport
// drains the request body.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress driven.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.onProgress != nil && p.total > 0 {
			percent := float64(p.sent) / float64(p.total) * 100
			if percent > 100 {
				percent = 100
			}
			p.onProgress(percent)
		}
	}
	return n, err
}
