package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docvault/internal/model"
)

// fakeServer serves the documents endpoint from an in-memory list and
// records mutation requests.
type fakeServer struct {
	mu      sync.Mutex
	docs    []model.Document
	deletes []string
	creates int
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/documents":
			respond(t, w, http.StatusOK, map[string]any{"success": true, "data": f.docs})
		case r.Method == http.MethodPost && r.URL.Path == "/api/documents":
			f.creates++
			doc := model.Document{ID: int64(100 + f.creates), Name: "created", CreatedAt: time.Now()}
			f.docs = append(f.docs, doc)
			respond(t, w, http.StatusOK, map[string]any{"success": true, "data": doc})
		case r.Method == http.MethodDelete:
			f.deletes = append(f.deletes, r.URL.Path)
			if len(f.docs) > 0 {
				f.docs = f.docs[1:]
			}
			respond(t, w, http.StatusOK, map[string]any{"success": true})
		default:
			respond(t, w, http.StatusNotFound, map[string]any{"success": false, "error": "resource not found"})
		}
	})
}

func TestController_RefreshRendersStore(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeServer{docs: []model.Document{
		{ID: 1, Name: "older", CreatedAt: base},
		{ID: 2, Name: "newer", CreatedAt: base.Add(time.Hour)},
	}}
	srv := httptest.NewServer(fs.handler(t))
	defer srv.Close()

	surface := &fakeSurface{}
	ctrl := NewController(NewAPI(srv.URL, 1, WithLogWriter(&bytes.Buffer{})), surface)

	assert.NoError(t, ctrl.Refresh(context.Background()))

	// Projection orders newest first regardless of server order.
	assert.Equal(t, []int64{2, 1}, surface.Keys())
	assert.Equal(t, 2, ctrl.store.Len())
}

func TestController_SetViewFiltersWithoutNetwork(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeServer{docs: []model.Document{
		{ID: 1, Name: "Invoice", CategoryName: "facture", CreatedAt: base},
		{ID: 2, Name: "Contract", CategoryName: "contrat", CreatedAt: base.Add(time.Hour)},
	}}
	srv := httptest.NewServer(fs.handler(t))

	surface := &fakeSurface{}
	ctrl := NewController(NewAPI(srv.URL, 1, WithLogWriter(&bytes.Buffer{})), surface)
	assert.NoError(t, ctrl.Refresh(context.Background()))
	srv.Close() // any further request would fail the test

	ctrl.SetView(ViewState{Category: "facture"})
	assert.Equal(t, []int64{1}, surface.Keys())

	ctrl.SetView(ViewState{Category: model.CategoryAll, SearchText: "cont"})
	assert.Equal(t, []int64{2}, surface.Keys())

	ctrl.SetView(ViewState{Category: model.CategoryAll})
	assert.Equal(t, []int64{2, 1}, surface.Keys())
}

func TestController_MutationTriggersRefresh(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeServer{docs: []model.Document{
		{ID: 1, Name: "doomed", CreatedAt: base},
		{ID: 2, Name: "kept", CreatedAt: base.Add(time.Hour)},
	}}
	srv := httptest.NewServer(fs.handler(t))
	defer srv.Close()

	surface := &fakeSurface{}
	ctrl := NewController(NewAPI(srv.URL, 1, WithLogWriter(&bytes.Buffer{})), surface)
	assert.NoError(t, ctrl.Refresh(context.Background()))

	// The delete is followed by a full refresh, so the surface reflects
	// the authoritative list without any optimistic patching.
	assert.NoError(t, ctrl.Delete(context.Background(), 1))
	assert.Equal(t, []int64{2}, surface.Keys())
	assert.Equal(t, []string{"/api/documents/1"}, fs.deletes)

	assert.NoError(t, ctrl.Create(context.Background(), CreateDocumentRequest{Name: "created"}))
	assert.Contains(t, surface.Keys(), int64(101))
}

func TestController_RefreshFailureLeavesSurfaceUntouched(t *testing.T) {
	fs := &fakeServer{docs: []model.Document{{ID: 1, Name: "doc", CreatedAt: time.Now()}}}
	srv := httptest.NewServer(fs.handler(t))

	surface := &fakeSurface{}
	ctrl := NewController(NewAPI(srv.URL, 1, WithLogWriter(&bytes.Buffer{})), surface)
	assert.NoError(t, ctrl.Refresh(context.Background()))
	srv.Close()

	err := ctrl.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []int64{1}, surface.Keys())
}

func TestController_ViewRoundTrip(t *testing.T) {
	ctrl := NewController(NewAPI("http://unused", 1, WithLogWriter(&bytes.Buffer{})), &fakeSurface{})

	assert.Equal(t, model.CategoryAll, ctrl.View().Category)

	ctrl.SetView(ViewState{Category: "rapport", SearchText: "x"})
	assert.Equal(t, ViewState{Category: "rapport", SearchText: "x"}, ctrl.View())
}

func TestControllerDocumentsSnapshot(t *testing.T) {
	ctrl := NewController(NewAPI("http://unused", 1, WithLogWriter(&bytes.Buffer{})), &fakeSurface{})
	ctrl.store.Replace([]model.Document{{ID: 1, Name: "a"}})

	docs := ctrl.Documents()
	docs[0].Name = "mutated"

	assert.Equal(t, "a", ctrl.Documents()[0].Name)
}
