package service

import (
	"context"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// ExpertStore is the persistence surface ExpertService needs.
type ExpertStore interface {
	Create(ctx context.Context, e *model.Expert) error
	GetByID(ctx context.Context, id int) (*model.Expert, error)
	GetByEmail(ctx context.Context, email string) (*model.Expert, error)
}

// ExpertService handles expert accounts.
type ExpertService struct {
	store  ExpertStore
	auth   *AuthService
	mailer Mailer
}

// NewExpertService creates a new ExpertService.
func NewExpertService(store ExpertStore, auth *AuthService, mailer Mailer) *ExpertService {
	return &ExpertService{store: store, auth: auth, mailer: mailer}
}

// Create provisions an expert account with a generated initial password and
// mails the credentials. The mail is sent only after the account exists; a
// mail failure is reported but does not roll the account back.
func (s *ExpertService) Create(ctx context.Context, req *model.CreateExpertRequest) (*model.Expert, error) {
	password, err := s.auth.GenerateInitialPassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	expert := &model.Expert{
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Email:        req.Email,
		PasswordHash: hash,
		ImageURL:     req.ImageURL,
	}
	if err := s.store.Create(ctx, expert); err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, expert.Email, expert.Prenom, password); err != nil {
		return expert, err
	}
	return expert, nil
}

// GetByID retrieves an expert by ID.
func (s *ExpertService) GetByID(ctx context.Context, id int) (*model.Expert, error) {
	return s.store.GetByID(ctx, id)
}

// GetByEmail retrieves an expert by email.
func (s *ExpertService) GetByEmail(ctx context.Context, email string) (*model.Expert, error) {
	return s.store.GetByEmail(ctx, email)
}
