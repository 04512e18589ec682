package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/query"
	"docvault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// scanDocument reads one row of the shared document projection.
func scanDocument(row interface{ Scan(dest ...any) error }) (*model.Document, error) {
	var (
		d             model.Document
		fileName      sql.NullString
		filePath      sql.NullString
		fileSize      sql.NullString
		fileType      sql.NullString
		categoryID    sql.NullInt64
		categoryName  sql.NullString
		categoryColor sql.NullString
		description   sql.NullString
	)
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&fileName,
		&filePath,
		&fileSize,
		&fileType,
		&categoryID,
		&categoryName,
		&categoryColor,
		&description,
		&d.Favorite,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.FileName = fileName.String
	d.FilePath = filePath.String
	d.FileSize = fileSize.String
	d.FileType = fileType.String
	if categoryID.Valid {
		id := categoryID.Int64
		d.CategoryID = &id
	}
	d.CategoryName = categoryName.String
	d.CategoryColor = categoryColor.String
	d.Description = description.String
	return &d, nil
}

// List compiles the filter criteria into a parameterized query and returns the
// matching documents, newest first.
func (r *DocumentPostgres) List(ctx context.Context, criteria model.FilterCriteria) ([]model.Document, error) {
	q, args := query.BuildDocumentQuery(criteria)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single owned document using the same projection as List.
func (r *DocumentPostgres) FindByID(ctx context.Context, ownerID, id int64) (*model.Document, error) {
	q, args := query.BuildDocumentByIDQuery(ownerID, id)
	return scanDocument(r.db.QueryRowContext(ctx, q, args...))
}

// Create inserts a new document row and returns the stored record.
// id, created_at and updated_at come from the database.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (user_id, name, file_name, file_path, file_size, file_type,
			category_id, category_name, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, name, file_name, file_path, file_size, file_type,
			category_id, category_name, description, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.UserID,
		doc.Name,
		doc.FileName,
		doc.FilePath,
		doc.FileSize,
		doc.FileType,
		doc.CategoryID,
		doc.CategoryName,
		doc.Description,
	)
	return scanStoredDocument(row)
}

// Update rewrites the mutable fields of an owned document and bumps updated_at.
// created_at is deliberately left out of the SET list.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET name = $1, category_id = $2, category_name = $3, description = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, name, file_name, file_path, file_size, file_type,
			category_id, category_name, description, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.Name,
		doc.CategoryID,
		doc.CategoryName,
		doc.Description,
		doc.ID,
		doc.UserID,
	)
	return scanStoredDocument(row)
}

// scanStoredDocument reads the RETURNING projection of Create/Update, which
// carries no joined category color or favorite flag.
func scanStoredDocument(row *sql.Row) (*model.Document, error) {
	var (
		d            model.Document
		fileName     sql.NullString
		filePath     sql.NullString
		fileSize     sql.NullString
		fileType     sql.NullString
		categoryID   sql.NullInt64
		categoryName sql.NullString
		description  sql.NullString
	)
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&fileName,
		&filePath,
		&fileSize,
		&fileType,
		&categoryID,
		&categoryName,
		&description,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.FileName = fileName.String
	d.FilePath = filePath.String
	d.FileSize = fileSize.String
	d.FileType = fileType.String
	if categoryID.Valid {
		id := categoryID.Int64
		d.CategoryID = &id
	}
	d.CategoryName = categoryName.String
	d.Description = description.String
	return &d, nil
}

// Delete removes an owned document. sql.ErrNoRows is returned when the row
// does not exist or belongs to another user.
func (r *DocumentPostgres) Delete(ctx context.Context, ownerID, id int64) error {
	const q = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetFavorite inserts or removes the favorite relation for the pair.
// The insert tolerates duplicates; the delete tolerates absence.
func (r *DocumentPostgres) SetFavorite(ctx context.Context, ownerID, id int64, favorite bool) error {
	if favorite {
		const q = `
			INSERT INTO favorites (user_id, document_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, document_id) DO NOTHING
		`
		_, err := r.db.ExecContext(ctx, q, ownerID, id)
		return err
	}
	const q = `DELETE FROM favorites WHERE user_id = $1 AND document_id = $2`
	_, err := r.db.ExecContext(ctx, q, ownerID, id)
	return err
}

// AppendHistory records one audit entry.
func (r *DocumentPostgres) AppendHistory(ctx context.Context, entry model.HistoryEntry) error {
	const q = `
		INSERT INTO document_history (document_id, user_id, action, details)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, entry.DocumentID, entry.UserID, entry.Action, entry.Details)
	return err
}
