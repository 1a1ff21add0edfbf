package service

import (
	"context"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// AdminStore is the persistence surface AdminService needs.
type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	GetByID(ctx context.Context, id int) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// AdminService handles admin accounts.
type AdminService struct {
	store AdminStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

// Create inserts an admin. Used by the create-admin CLI, not exposed over HTTP.
func (s *AdminService) Create(ctx context.Context, a *model.Admin) error {
	return s.store.Create(ctx, a)
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.store.GetByID(ctx, id)
}

// GetByEmail retrieves an admin by email.
func (s *AdminService) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	return s.store.GetByEmail(ctx, email)
}
