package service

import (
	"context"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// LearnerStore is the persistence surface LearnerService needs.
type LearnerStore interface {
	Create(ctx context.Context, l *model.Learner) error
	GetByID(ctx context.Context, id int) (*model.Learner, error)
	GetByEmail(ctx context.Context, email string) (*model.Learner, error)
}

// LearnerService handles learner accounts.
type LearnerService struct {
	store LearnerStore
	auth  *AuthService
}

// NewLearnerService creates a new LearnerService.
func NewLearnerService(store LearnerStore, auth *AuthService) *LearnerService {
	return &LearnerService{store: store, auth: auth}
}

// Register creates a learner account. The password is hashed here, before
// the record is built; duplicate emails surface as repository.ErrDuplicateEmail.
func (s *LearnerService) Register(ctx context.Context, req *model.RegisterLearnerRequest) (*model.Learner, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	learner := &model.Learner{
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Email:        req.Email,
		PasswordHash: hash,
		Adresse:      req.Adresse,
		Telephone:    req.Telephone,
	}
	if err := s.store.Create(ctx, learner); err != nil {
		return nil, err
	}
	return learner, nil
}

// GetByID retrieves a learner by ID.
func (s *LearnerService) GetByID(ctx context.Context, id int) (*model.Learner, error) {
	return s.store.GetByID(ctx, id)
}

// GetByEmail retrieves a learner by email.
func (s *LearnerService) GetByEmail(ctx context.Context, email string) (*model.Learner, error) {
	return s.store.GetByEmail(ctx, email)
}
