package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"docvault/internal/model"
)

func respond(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestAPI_ListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/documents", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "42", q.Get("user_id"))
		assert.Equal(t, "contrat", q.Get("category"))
		assert.Equal(t, "Q1", q.Get("search"))
		assert.Equal(t, "week", q.Get("date_filter"))

		respond(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []model.Document{{ID: 1, Name: "Contract A"}},
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	docs, err := api.ListDocuments(context.Background(), ListFilters{
		Category:   "contrat",
		SearchText: "Q1",
		DateBucket: model.DateBucketWeek,
	})

	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "Contract A", docs[0].Name)
}

func TestAPI_CreateDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/documents", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Contract A", body["name"])
		assert.Equal(t, "contrat", body["category"])
		assert.Equal(t, float64(42), body["user_id"])

		respond(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    model.Document{ID: 9, Name: "Contract A"},
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	doc, err := api.CreateDocument(context.Background(), CreateDocumentRequest{
		Name:     "Contract A",
		Category: "contrat",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), doc.ID)
}

func TestAPI_UpdateDocument_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/documents/9", r.URL.Path)

		respond(t, w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "document not found",
		})
	}))
	defer srv.Close()

	var logBuf bytes.Buffer
	api := NewAPI(srv.URL, 42, WithLogWriter(&logBuf))
	_, err := api.UpdateDocument(context.Background(), 9, UpdateDocumentRequest{Name: "x"})

	assert.ErrorIs(t, err, ErrNotFound)

	// Failures get a diagnostic JSON line.
	var logLine map[string]any
	assert.NoError(t, json.Unmarshal(logBuf.Bytes(), &logLine))
	assert.Equal(t, "api request failed", logLine["msg"])
	assert.Equal(t, "PUT", logLine["method"])
}

func TestAPI_DeleteDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/documents/9", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(42), body["user_id"])

		respond(t, w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 9}})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	assert.NoError(t, api.DeleteDocument(context.Background(), 9))
}

func TestAPI_ToggleFavorite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/9/favorite", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["favorite"])

		respond(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	assert.NoError(t, api.ToggleFavorite(context.Background(), 9, true))
}

func TestAPI_ListCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))

		respond(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []model.Category{{ID: 1, Name: "contrat", Color: "#10b981"}},
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	cats, err := api.ListCategories(context.Background())

	assert.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, "contrat", cats[0].Name)
}

func TestAPI_ServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "failed to fetch documents",
		})
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	_, err := api.ListDocuments(context.Background(), ListFilters{})

	assert.EqualError(t, err, "failed to fetch documents")
}

func TestAPI_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, 42, WithLogWriter(&bytes.Buffer{}))
	err := api.Health(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
