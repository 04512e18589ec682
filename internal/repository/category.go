package repository

import (
	"context"

	"docvault/internal/model"
)

// CategoryRepository defines data access for per-user categories.
type CategoryRepository interface {
	// ListByOwner returns the owner's categories ordered by name.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Category, error)

	// ResolveID looks up the category id for a name owned by ownerID.
	// An unknown name returns (nil, nil): the caller keeps the literal name
	// and stores no id.
	ResolveID(ctx context.Context, ownerID int64, name string) (*int64, error)
}
