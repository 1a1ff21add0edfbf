package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
)

type fakeDemandeStore struct {
	demandes map[int]*model.Demande
	nextID   int
}

func newFakeDemandeStore() *fakeDemandeStore {
	return &fakeDemandeStore{demandes: map[int]*model.Demande{}, nextID: 1}
}

func (f *fakeDemandeStore) Create(_ context.Context, d *model.Demande) error {
	d.ID = f.nextID
	f.nextID++
	f.demandes[d.ID] = d
	return nil
}

func (f *fakeDemandeStore) List(_ context.Context) ([]model.Demande, error) {
	var out []model.Demande
	for _, d := range f.demandes {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDemandeStore) GetByID(_ context.Context, id int) (*model.Demande, error) {
	d, ok := f.demandes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDemandeStore) Delete(_ context.Context, id int) error {
	if _, ok := f.demandes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.demandes, id)
	return nil
}

type fakeTrainerStore struct {
	trainers map[int]*model.Trainer
	byEmail  map[string]*model.Trainer
	nextID   int
}

func newFakeTrainerStore() *fakeTrainerStore {
	return &fakeTrainerStore{trainers: map[int]*model.Trainer{}, byEmail: map[string]*model.Trainer{}, nextID: 1}
}

func (f *fakeTrainerStore) Create(_ context.Context, t *model.Trainer) error {
	if _, ok := f.byEmail[t.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	t.ID = f.nextID
	f.nextID++
	f.trainers[t.ID] = t
	f.byEmail[t.Email] = t
	return nil
}

func (f *fakeTrainerStore) GetByID(_ context.Context, id int) (*model.Trainer, error) {
	t, ok := f.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTrainerStore) GetByEmail(_ context.Context, email string) (*model.Trainer, error) {
	t, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTrainerStore) List(_ context.Context) ([]model.Trainer, error) {
	var out []model.Trainer
	for _, t := range f.trainers {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTrainerStore) SetActivated(_ context.Context, id int, activated bool) error {
	t, ok := f.trainers[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Activated = activated
	return nil
}

func (f *fakeTrainerStore) UpdateProfile(_ context.Context, t *model.Trainer) error {
	if _, ok := f.trainers[t.ID]; !ok {
		return repository.ErrNotFound
	}
	f.trainers[t.ID] = t
	return nil
}

func (f *fakeTrainerStore) Delete(_ context.Context, id int) error {
	t, ok := f.trainers[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(f.trainers, id)
	delete(f.byEmail, t.Email)
	return nil
}

func newDemandeFixture() (*DemandeService, *fakeDemandeStore, *fakeTrainerStore, *fakeMailer) {
	demandes := newFakeDemandeStore()
	trainers := newFakeTrainerStore()
	mailer := &fakeMailer{}
	auth := NewAuthService(&config.Config{JWTSecret: "s", BcryptCost: 4})
	return NewDemandeService(demandes, trainers, auth, mailer), demandes, trainers, mailer
}

func submitDemande(t *testing.T, s *DemandeService) *model.Demande {
	t.Helper()
	d, err := s.Submit(context.Background(), &model.SubmitDemandeRequest{
		Nom: "Martin", Prenom: "Claire", Email: "claire@example.com",
	})
	require.NoError(t, err)
	return d
}

func TestAcceptCreatesDeactivatedTrainerAndDeletesDemande(t *testing.T) {
	s, demandes, trainers, mailer := newDemandeFixture()
	d := submitDemande(t, s)

	trainer, err := s.Accept(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "claire@example.com", trainer.Email)
	assert.False(t, trainer.Activated, "accepted trainer must start deactivated")
	assert.NotEmpty(t, trainer.PasswordHash)
	assert.Equal(t, 1, mailer.welcomes)

	_, err = demandes.GetByID(context.Background(), d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = trainers.GetByEmail(context.Background(), "claire@example.com")
	assert.NoError(t, err)
}

func TestAcceptMailFailureKeepsDemande(t *testing.T) {
	s, demandes, trainers, mailer := newDemandeFixture()
	d := submitDemande(t, s)

	mailer.fail = true
	_, err := s.Accept(context.Background(), d.ID)
	assert.Error(t, err)

	// The demande survives so the admin can retry once mail is back, and
	// no half-created account lingers to block that retry.
	_, err = demandes.GetByID(context.Background(), d.ID)
	assert.NoError(t, err)
	_, err = trainers.GetByEmail(context.Background(), "claire@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mailer.fail = false
	trainer, err := s.Accept(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "claire@example.com", trainer.Email)
	assert.False(t, trainer.Activated)
	assert.Equal(t, 1, mailer.welcomes)

	_, err = demandes.GetByID(context.Background(), d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAcceptUnknownDemande(t *testing.T) {
	s, _, _, _ := newDemandeFixture()

	_, err := s.Accept(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRefuseDeletesDemande(t *testing.T) {
	s, demandes, trainers, _ := newDemandeFixture()
	d := submitDemande(t, s)

	require.NoError(t, s.Refuse(context.Background(), d.ID))

	_, err := demandes.GetByID(context.Background(), d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = trainers.GetByEmail(context.Background(), "claire@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound, "refusal must not create an account")
}
