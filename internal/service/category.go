package service

import (
	"context"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// CategoryService exposes the read-only category use cases.
type CategoryService interface {
	// List returns the owner's categories ordered by name.
	List(ctx context.Context, ownerID int64) ([]model.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, ownerID int64) ([]model.Category, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	return s.repo.ListByOwner(ctx, ownerID)
}
