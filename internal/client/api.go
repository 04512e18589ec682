package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docvault/internal/model"
)

// ErrNotFound is returned when the server reports that the targeted
// document does not exist for the requesting owner.
var ErrNotFound = errors.New("document not found")

// envelope is the wire shape every API response uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// API talks to the document server. All methods go through a single
// request path that decodes the response envelope and converts any
// transport, status or parse failure into a plain error. Failures are
// additionally logged as JSON lines; nothing panics past the request
// boundary.
type API struct {
	baseURL string
	ownerID int64
	http    *http.Client
	logw    io.Writer
}

// Option configures an API client.
type Option func(*API)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *API) { a.http = hc }
}

// WithLogWriter redirects diagnostic log lines, used by tests.
func WithLogWriter(w io.Writer) Option {
	return func(a *API) { a.logw = w }
}

// NewAPI creates a client for the server at baseURL acting as ownerID.
func NewAPI(baseURL string, ownerID int64, opts ...Option) *API {
	a := &API{
		baseURL: baseURL,
		ownerID: ownerID,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
		logw: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListFilters are the optional server-side listing constraints.
type ListFilters struct {
	Category   string
	SearchText string
	DateBucket model.DateBucket
}

// ListDocuments fetches the owner's documents, optionally filtered
// server-side.
func (a *API) ListDocuments(ctx context.Context, f ListFilters) ([]model.Document, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(a.ownerID, 10))
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.SearchText != "" {
		q.Set("search", f.SearchText)
	}
	if f.DateBucket != model.DateBucketNone {
		q.Set("date_filter", string(f.DateBucket))
	}

	var docs []model.Document
	if err := a.do(ctx, http.MethodGet, "/api/documents", q, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CreateDocumentRequest carries the fields for a new document record.
type CreateDocumentRequest struct {
	Name        string `json:"name"`
	FileName    string `json:"fileName,omitempty"`
	FilePath    string `json:"filePath,omitempty"`
	FileSize    string `json:"fileSize,omitempty"`
	FileType    string `json:"fileType,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	UserID      int64  `json:"user_id"`
}

// CreateDocument creates a document record on the server.
func (a *API) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*model.Document, error) {
	req.UserID = a.ownerID

	var doc model.Document
	if err := a.do(ctx, http.MethodPost, "/api/documents", nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocumentRequest carries the editable fields of a document.
type UpdateDocumentRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	UserID      int64  `json:"user_id"`
}

// UpdateDocument updates a document owned by the client's owner.
func (a *API) UpdateDocument(ctx context.Context, id int64, req UpdateDocumentRequest) (*model.Document, error) {
	req.UserID = a.ownerID

	var doc model.Document
	path := fmt.Sprintf("/api/documents/%d", id)
	if err := a.do(ctx, http.MethodPut, path, nil, req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document owned by the client's owner.
func (a *API) DeleteDocument(ctx context.Context, id int64) error {
	body := map[string]any{"user_id": a.ownerID}
	path := fmt.Sprintf("/api/documents/%d", id)
	return a.do(ctx, http.MethodDelete, path, nil, body, nil)
}

// ToggleFavorite sets or clears the favorite flag for a document.
func (a *API) ToggleFavorite(ctx context.Context, id int64, favorite bool) error {
	body := map[string]any{"user_id": a.ownerID, "favorite": favorite}
	path := fmt.Sprintf("/api/documents/%d/favorite", id)
	return a.do(ctx, http.MethodPost, path, nil, body, nil)
}

// ListCategories fetches the owner's categories.
func (a *API) ListCategories(ctx context.Context) ([]model.Category, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(a.ownerID, 10))

	var cats []model.Category
	if err := a.do(ctx, http.MethodGet, "/api/categories", q, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Health probes the server's liveness endpoint.
func (a *API) Health(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return a.fail(method, path, fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return a.fail(method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return a.fail(method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return a.fail(method, path, fmt.Errorf("decode response: %w", err))
	}

	if !env.Success {
		if resp.StatusCode == http.StatusNotFound {
			return a.fail(method, path, ErrNotFound)
		}
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("http status %d", resp.StatusCode)
		}
		return a.fail(method, path, errors.New(msg))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return a.fail(method, path, fmt.Errorf("decode data: %w", err))
		}
	}

	return nil
}

// fail logs the failure as a JSON line and returns the error unchanged.
func (a *API) fail(method, path string, err error) error {
	_ = json.NewEncoder(a.logw).Encode(map[string]any{
		"level":  "error",
		"msg":    "api request failed",
		"method": method,
		"path":   path,
		"error":  err.Error(),
		"ts":     time.Now().UTC().Format(time.RFC3339Nano),
	})
	return err
}
