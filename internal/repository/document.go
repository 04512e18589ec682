package repository

import (
	"context"

	"docvault/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
//
// Every operation is owner-scoped: a document is only visible to, and mutable
// by, the user id it belongs to. Implementations report a missing or
// not-owned row as sql.ErrNoRows so callers can translate it distinctly.
type DocumentRepository interface {
	// List returns documents matching the filter criteria, newest first.
	List(ctx context.Context, criteria model.FilterCriteria) ([]model.Document, error)

	// FindByID returns a single document owned by ownerID.
	FindByID(ctx context.Context, ownerID, id int64) (*model.Document, error)

	// Create inserts a new document row. The database assigns id, created_at
	// and updated_at; the stored record is returned.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Update rewrites name, category and description for an owned document
	// and bumps updated_at. created_at is never touched.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes an owned document. The favorites relation rows go with it.
	Delete(ctx context.Context, ownerID, id int64) error

	// SetFavorite adds or removes the favorite relation for the owner/document
	// pair. Adding twice or removing an absent relation is a no-op.
	SetFavorite(ctx context.Context, ownerID, id int64, favorite bool) error

	// AppendHistory records one audit entry for a document mutation.
	AppendHistory(ctx context.Context, entry model.HistoryEntry) error
}
