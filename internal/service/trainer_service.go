package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// ErrAlreadyActive is returned when activating an already-active trainer.
var ErrAlreadyActive = errors.New("trainer account is already activated")

// TrainerStore is the persistence surface TrainerService needs.
type TrainerStore interface {
	Create(ctx context.Context, t *model.Trainer) error
	GetByID(ctx context.Context, id int) (*model.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*model.Trainer, error)
	List(ctx context.Context) ([]model.Trainer, error)
	SetActivated(ctx context.Context, id int, activated bool) error
	UpdateProfile(ctx context.Context, t *model.Trainer) error
	Delete(ctx context.Context, id int) error
}

// TrainerService handles trainer accounts and their activation lifecycle.
type TrainerService struct {
	store  TrainerStore
	mailer Mailer
}

// NewTrainerService creates a new TrainerService.
func NewTrainerService(store TrainerStore, mailer Mailer) *TrainerService {
	return &TrainerService{store: store, mailer: mailer}
}

// GetByID retrieves a trainer by ID.
func (s *TrainerService) GetByID(ctx context.Context, id int) (*model.Trainer, error) {
	return s.store.GetByID(ctx, id)
}

// GetByEmail retrieves a trainer by email.
func (s *TrainerService) GetByEmail(ctx context.Context, email string) (*model.Trainer, error) {
	return s.store.GetByEmail(ctx, email)
}

// List retrieves all trainers.
func (s *TrainerService) List(ctx context.Context) ([]model.Trainer, error) {
	return s.store.List(ctx)
}

// Activate flips a trainer's activation flag and notifies them. Activating
// an already-active trainer fails with ErrAlreadyActive and no side effect.
func (s *TrainerService) Activate(ctx context.Context, id int) (*model.Trainer, error) {
	trainer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trainer.Activated {
		return nil, ErrAlreadyActive
	}

	if err := s.store.SetActivated(ctx, id, true); err != nil {
		return nil, err
	}
	trainer.Activated = true

	// The account is usable either way; mail failure must not undo that.
	if err := s.mailer.SendActivation(ctx, trainer.Email, trainer.Prenom); err != nil {
		return trainer, fmt.Errorf("activation mail: %w", err)
	}
	return trainer, nil
}

// UpdateProfile edits a trainer's own profile fields.
func (s *TrainerService) UpdateProfile(ctx context.Context, id int, req *model.UpdateTrainerProfileRequest) (*model.Trainer, error) {
	trainer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	trainer.Adresse = req.Adresse
	trainer.Telephone = req.Telephone
	trainer.Profession = req.Profession
	trainer.YearsExperience = req.YearsExperience

	if err := s.store.UpdateProfile(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}
