package model

import "time"

// Document represents a stored document owned by a single user.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, client) without coupling to persistence.
type Document struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	FileName      string    `json:"file_name,omitempty"`
	FilePath      string    `json:"file_path,omitempty"`
	FileSize      string    `json:"file_size,omitempty"`
	FileType      string    `json:"file_type,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	CategoryName  string    `json:"category_name"`
	CategoryColor string    `json:"category_color,omitempty"`
	Description   string    `json:"description,omitempty"`
	Favorite      bool      `json:"favorite"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Category is a per-user document category with a display color.
// Documents reference it by name; the id is advisory and may be absent
// when a document carries a category name the owner never defined.
type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// HistoryEntry is one append-only audit record for a document mutation.
type HistoryEntry struct {
	DocumentID int64  `json:"document_id"`
	UserID     int64  `json:"user_id"`
	Action     string `json:"action"`
	Details    string `json:"details"`
}

// History actions recorded for document mutations.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
