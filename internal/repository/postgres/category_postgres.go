package postgres

import (
	"context"
	"database/sql"
	"errors"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

// ListByOwner returns the owner's categories ordered by name.
func (r *CategoryPostgres) ListByOwner(ctx context.Context, ownerID int64) ([]model.Category, error) {
	const q = `
		SELECT id, user_id, name, color
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ResolveID returns the id of an owned category by name, or (nil, nil) when
// the owner has no category with that name.
func (r *CategoryPostgres) ResolveID(ctx context.Context, ownerID int64, name string) (*int64, error) {
	const q = `SELECT id FROM categories WHERE name = $1 AND user_id = $2`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name, ownerID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &id, nil
}
