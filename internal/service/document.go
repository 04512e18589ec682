package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

var (
	ErrIDRequired    = errors.New("id is required")
	ErrOwnerRequired = errors.New("owner id is required")
	ErrNotFound      = errors.New("document not found")
	ErrReaderNil     = errors.New("reader is nil")
)

// CreateDocumentInput carries the fields accepted by the create operation.
// Fields are passed through as-is; the original system performs no field
// validation here and that behavior is preserved.
type CreateDocumentInput struct {
	OwnerID     int64
	Name        string
	FileName    string
	FilePath    string
	FileSize    string
	FileType    string
	Category    string
	Description string
}

// UpdateDocumentInput carries the mutable fields of an existing document.
// The creation timestamp is never part of an update.
type UpdateDocumentInput struct {
	OwnerID     int64
	ID          int64
	Name        string
	Category    string
	Description string
}

// UploadInput carries metadata for a document created from a real file upload.
type UploadInput struct {
	OwnerID          int64
	Name             string
	Category         string
	Description      string
	OriginalFilename string
	ContentType      string
	Size             int64
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// List returns the owner's documents matching the filter criteria.
	List(ctx context.Context, criteria model.FilterCriteria) ([]model.Document, error)

	// Create stores a new metadata-only document and records the action.
	Create(ctx context.Context, in CreateDocumentInput) (*model.Document, error)

	// Update rewrites name, category and description of an owned document.
	Update(ctx context.Context, in UpdateDocumentInput) (*model.Document, error)

	// Delete removes an owned document and records the action.
	Delete(ctx context.Context, ownerID, id int64) error

	// ToggleFavorite adds or removes the favorite relation for the pair.
	ToggleFavorite(ctx context.Context, ownerID, id int64, favorite bool) error

	// Upload streams file content to object storage and creates the document
	// with the object key as its file path. Storage is rolled back if the
	// database insert fails.
	Upload(ctx context.Context, in UploadInput, r io.Reader) (*model.Document, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo     repository.DocumentRepository
	catRepo  repository.CategoryRepository
	store    storage.Storage
	catCache *gocache.Cache
}

// NewDocumentService constructs a new DocumentService. catCacheTTL bounds how
// long a category name->id resolution is reused per owner.
func NewDocumentService(repo repository.DocumentRepository, catRepo repository.CategoryRepository, store storage.Storage, catCacheTTL time.Duration) DocumentService {
	return &documentService{
		repo:     repo,
		catRepo:  catRepo,
		store:    store,
		catCache: gocache.New(catCacheTTL, 2*catCacheTTL),
	}
}

func (s *documentService) List(ctx context.Context, criteria model.FilterCriteria) ([]model.Document, error) {
	if criteria.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}
	return s.repo.List(ctx, criteria)
}

func (s *documentService) Create(ctx context.Context, in CreateDocumentInput) (*model.Document, error) {
	if in.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}

	catID, err := s.resolveCategoryID(ctx, in.OwnerID, in.Category)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Create(ctx, &model.Document{
		UserID:       in.OwnerID,
		Name:         in.Name,
		FileName:     in.FileName,
		FilePath:     in.FilePath,
		FileSize:     in.FileSize,
		FileType:     in.FileType,
		CategoryID:   catID,
		CategoryName: in.Category,
		Description:  in.Description,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.AppendHistory(ctx, model.HistoryEntry{
		DocumentID: stored.ID,
		UserID:     in.OwnerID,
		Action:     model.ActionCreated,
		Details:    fmt.Sprintf("Document %q created", in.Name),
	}); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *documentService) Update(ctx context.Context, in UpdateDocumentInput) (*model.Document, error) {
	if in.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}
	if in.ID == 0 {
		return nil, ErrIDRequired
	}

	catID, err := s.resolveCategoryID(ctx, in.OwnerID, in.Category)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Update(ctx, &model.Document{
		ID:           in.ID,
		UserID:       in.OwnerID,
		Name:         in.Name,
		CategoryID:   catID,
		CategoryName: in.Category,
		Description:  in.Description,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.AppendHistory(ctx, model.HistoryEntry{
		DocumentID: stored.ID,
		UserID:     in.OwnerID,
		Action:     model.ActionUpdated,
		Details:    fmt.Sprintf("Document %q updated", in.Name),
	}); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *documentService) Delete(ctx context.Context, ownerID, id int64) error {
	if ownerID == 0 {
		return ErrOwnerRequired
	}
	if id == 0 {
		return ErrIDRequired
	}

	// Fetch first so the history entry can carry the document name
	// and so a non-owned id is reported distinctly as not found.
	doc, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// Uploaded documents also own an object in storage.
	if doc.FilePath != "" && s.store != nil {
		if err := s.store.Delete(ctx, doc.FilePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}

	return s.repo.AppendHistory(ctx, model.HistoryEntry{
		DocumentID: id,
		UserID:     ownerID,
		Action:     model.ActionDeleted,
		Details:    fmt.Sprintf("Document %q deleted", doc.Name),
	})
}

func (s *documentService) ToggleFavorite(ctx context.Context, ownerID, id int64, favorite bool) error {
	if ownerID == 0 {
		return ErrOwnerRequired
	}
	if id == 0 {
		return ErrIDRequired
	}
	return s.repo.SetFavorite(ctx, ownerID, id, favorite)
}

func (s *documentService) Upload(ctx context.Context, in UploadInput, r io.Reader) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if in.OwnerID == 0 {
		return nil, ErrOwnerRequired
	}

	// Generate object key using UUID + original extension
	ext := filepath.Ext(in.OriginalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	name := in.Name
	if name == "" {
		name = in.OriginalFilename
	}

	stored, err := s.Create(ctx, CreateDocumentInput{
		OwnerID:     in.OwnerID,
		Name:        name,
		FileName:    in.OriginalFilename,
		FilePath:    objInfo.Key,
		FileSize:    units.HumanSize(float64(objInfo.Size)),
		FileType:    strings.TrimPrefix(ext, "."),
		Category:    in.Category,
		Description: in.Description,
	})
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// resolveCategoryID maps a category name to the owner's stored category id.
// Unknown names are accepted and yield a nil id: filtering keys off the name,
// so availability wins over strict referential integrity here. Known
// resolutions are cached per owner with a TTL.
func (s *documentService) resolveCategoryID(ctx context.Context, ownerID int64, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("%d:%s", ownerID, name)
	if v, ok := s.catCache.Get(cacheKey); ok {
		id := v.(int64)
		return &id, nil
	}

	id, err := s.catRepo.ResolveID(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	if id != nil {
		s.catCache.Set(cacheKey, *id, gocache.DefaultExpiration)
	}
	return id, nil
}
