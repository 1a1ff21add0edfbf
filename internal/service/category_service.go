package service

import (
	"context"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// CategoryStore is the persistence surface CategoryService needs.
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int) error
}

// CategoryService handles catalog categories.
type CategoryService struct {
	store CategoryStore
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// List retrieves all categories.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// Create inserts a new category.
func (s *CategoryService) Create(ctx context.Context, req *model.UpsertCategoryRequest) (*model.Category, error) {
	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.store.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits an existing category.
func (s *CategoryService) Update(ctx context.Context, id int, req *model.UpsertCategoryRequest) (*model.Category, error) {
	category, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := s.store.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Fails while formations still reference it.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}
