package client

import (
	"context"

	"docvault/internal/model"
)

// Controller wires the API, the document store, the view projection and
// the reconciler together. Mutations never patch the store in place:
// each one is sent to the server and followed by a full refresh, so the
// rendered list always reflects the authoritative server state.
type Controller struct {
	api     *API
	store   *Store
	surface Surface
	rec     *Reconciler
	view    ViewState
}

// NewController creates a controller rendering to surface. The initial
// view shows every category with no search text.
func NewController(api *API, surface Surface) *Controller {
	return &Controller{
		api:     api,
		store:   NewStore(),
		surface: surface,
		rec:     NewReconciler(),
		view:    ViewState{Category: model.CategoryAll},
	}
}

// Refresh fetches the full document list, replaces the store and
// re-renders.
func (c *Controller) Refresh(ctx context.Context) error {
	docs, err := c.api.ListDocuments(ctx, ListFilters{})
	if err != nil {
		return err
	}
	c.store.Replace(docs)
	c.render()
	return nil
}

// SetView updates the UI filter inputs and re-renders from the current
// store without a network round trip.
func (c *Controller) SetView(view ViewState) {
	c.view = view
	c.render()
}

// View returns the current UI filter inputs.
func (c *Controller) View() ViewState {
	return c.view
}

// Documents returns a snapshot of the unfiltered store.
func (c *Controller) Documents() []model.Document {
	return c.store.Snapshot()
}

// Create sends a new document to the server and refreshes.
func (c *Controller) Create(ctx context.Context, req CreateDocumentRequest) error {
	if _, err := c.api.CreateDocument(ctx, req); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Update edits a document on the server and refreshes.
func (c *Controller) Update(ctx context.Context, id int64, req UpdateDocumentRequest) error {
	if _, err := c.api.UpdateDocument(ctx, id, req); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes a document on the server and refreshes.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeleteDocument(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// ToggleFavorite flips the favorite flag on the server and refreshes.
func (c *Controller) ToggleFavorite(ctx context.Context, id int64, favorite bool) error {
	if err := c.api.ToggleFavorite(ctx, id, favorite); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Controller) render() {
	c.rec.Apply(c.surface, Project(c.store.Snapshot(), c.view))
}
