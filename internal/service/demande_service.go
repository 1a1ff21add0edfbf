package service

import (
	"context"
	"fmt"

	"github.com/formaplace/formaplace-backend/internal/model"
)

// DemandeStore is the persistence surface DemandeService needs.
type DemandeStore interface {
	Create(ctx context.Context, d *model.Demande) error
	List(ctx context.Context) ([]model.Demande, error)
	GetByID(ctx context.Context, id int) (*model.Demande, error)
	Delete(ctx context.Context, id int) error
}

// DemandeService handles trainer-onboarding requests.
type DemandeService struct {
	store    DemandeStore
	trainers TrainerStore
	auth     *AuthService
	mailer   Mailer
}

// NewDemandeService creates a new DemandeService.
func NewDemandeService(store DemandeStore, trainers TrainerStore, auth *AuthService, mailer Mailer) *DemandeService {
	return &DemandeService{store: store, trainers: trainers, auth: auth, mailer: mailer}
}

// Submit records a public application to become a trainer.
func (s *DemandeService) Submit(ctx context.Context, req *model.SubmitDemandeRequest) (*model.Demande, error) {
	demande := &model.Demande{
		Nom:    req.Nom,
		Prenom: req.Prenom,
		Email:  req.Email,
		Status: model.DemandePending,
	}
	if err := s.store.Create(ctx, demande); err != nil {
		return nil, err
	}
	return demande, nil
}

// List retrieves all pending demandes.
func (s *DemandeService) List(ctx context.Context) ([]model.Demande, error) {
	demandes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if demandes == nil {
		demandes = []model.Demande{}
	}
	return demandes, nil
}

// Accept turns a demande into a trainer account: a password is generated,
// the account is created deactivated, the credentials are mailed, and only
// then is the demande deleted. A mail failure keeps the demande and removes
// the half-created account, so a retried Accept starts clean with fresh
// credentials; the applicant would otherwise never learn their password.
func (s *DemandeService) Accept(ctx context.Context, id int) (*model.Trainer, error) {
	demande, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	password, err := s.auth.GenerateInitialPassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	trainer := &model.Trainer{
		Nom:          demande.Nom,
		Prenom:       demande.Prenom,
		Email:        demande.Email,
		PasswordHash: hash,
		Activated:    false,
	}
	if err := s.trainers.Create(ctx, trainer); err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, trainer.Email, trainer.Prenom, password); err != nil {
		// The account must not survive an undelivered password: it would
		// block the retry on the unique email.
		if delErr := s.trainers.Delete(ctx, trainer.ID); delErr != nil {
			return nil, fmt.Errorf("welcome mail: %w (trainer %d not rolled back: %v)", err, trainer.ID, delErr)
		}
		return nil, fmt.Errorf("welcome mail: %w", err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	return trainer, nil
}

// Refuse rejects a demande: the applicant is notified and the record is
// deleted. The refusal mail is best-effort.
func (s *DemandeService) Refuse(ctx context.Context, id int) error {
	demande, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.mailer.SendRefusal(ctx, demande.Email, demande.Prenom); err != nil {
		return fmt.Errorf("refusal mail: %w", err)
	}
	return nil
}
