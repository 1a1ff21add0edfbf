package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
)

func seedTrainer(t *testing.T, store *fakeTrainerStore) *model.Trainer {
	t.Helper()
	trainer := &model.Trainer{Nom: "Martin", Prenom: "Claire", Email: "claire@example.com"}
	require.NoError(t, store.Create(context.Background(), trainer))
	return trainer
}

func TestActivateTrainer(t *testing.T) {
	store := newFakeTrainerStore()
	mailer := &fakeMailer{}
	s := NewTrainerService(store, mailer)
	trainer := seedTrainer(t, store)

	activated, err := s.Activate(context.Background(), trainer.ID)
	require.NoError(t, err)
	assert.True(t, activated.Activated)

	// Second activation is rejected, no mail sent.
	_, err = s.Activate(context.Background(), trainer.ID)
	assert.ErrorIs(t, err, ErrAlreadyActive)
}

func TestActivateUnknownTrainer(t *testing.T) {
	s := NewTrainerService(newFakeTrainerStore(), &fakeMailer{})

	_, err := s.Activate(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivateMailFailureKeepsActivation(t *testing.T) {
	store := newFakeTrainerStore()
	mailer := &fakeMailer{fail: true}
	s := NewTrainerService(store, mailer)
	trainer := seedTrainer(t, store)

	activated, err := s.Activate(context.Background(), trainer.ID)
	assert.Error(t, err)
	require.NotNil(t, activated)
	assert.True(t, activated.Activated, "activation must survive a mail failure")

	stored, err := store.GetByID(context.Background(), trainer.ID)
	require.NoError(t, err)
	assert.True(t, stored.Activated)
}

func TestUpdateTrainerProfile(t *testing.T) {
	store := newFakeTrainerStore()
	s := NewTrainerService(store, &fakeMailer{})
	trainer := seedTrainer(t, store)

	updated, err := s.UpdateProfile(context.Background(), trainer.ID, &model.UpdateTrainerProfileRequest{
		Adresse:         "2 rue Victor Hugo, Lyon",
		Telephone:       "0698765432",
		Profession:      "Développeuse",
		YearsExperience: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Développeuse", updated.Profession)
	assert.Equal(t, 8, updated.YearsExperience)
}
