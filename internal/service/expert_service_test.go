package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/formaplace/formaplace-backend/internal/config"
	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
)

type fakeExpertStore struct {
	byEmail map[string]*model.Expert
	nextID  int
}

func (f *fakeExpertStore) Create(_ context.Context, e *model.Expert) error {
	if _, ok := f.byEmail[e.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.nextID++
	e.ID = f.nextID
	f.byEmail[e.Email] = e
	return nil
}

func (f *fakeExpertStore) GetByID(_ context.Context, id int) (*model.Expert, error) {
	for _, e := range f.byEmail {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExpertStore) GetByEmail(_ context.Context, email string) (*model.Expert, error) {
	e, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func TestCreateExpertGeneratesCredentials(t *testing.T) {
	store := &fakeExpertStore{byEmail: map[string]*model.Expert{}}
	mailer := &fakeMailer{}
	auth := NewAuthService(&config.Config{JWTSecret: "s", BcryptCost: 4})
	s := NewExpertService(store, auth, mailer)

	expert, err := s.Create(context.Background(), &model.CreateExpertRequest{
		Nom: "Bernard", Prenom: "Luc", Email: "luc@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mailer.welcomes)

	// Only a bcrypt hash is stored, never the plaintext.
	assert.NotEmpty(t, expert.PasswordHash)
	_, err = bcrypt.Cost([]byte(expert.PasswordHash))
	assert.NoError(t, err)
}

func TestCreateExpertDuplicateEmail(t *testing.T) {
	store := &fakeExpertStore{byEmail: map[string]*model.Expert{}}
	auth := NewAuthService(&config.Config{JWTSecret: "s", BcryptCost: 4})
	s := NewExpertService(store, auth, &fakeMailer{})

	req := &model.CreateExpertRequest{Nom: "Bernard", Prenom: "Luc", Email: "luc@example.com"}
	_, err := s.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}
