package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
)

type fakeFormationStore struct {
	formations map[uuid.UUID]*model.Formation
}

func newFakeFormationStore() *fakeFormationStore {
	return &fakeFormationStore{formations: map[uuid.UUID]*model.Formation{}}
}

func (f *fakeFormationStore) Create(_ context.Context, formation *model.Formation) error {
	formation.ID = uuid.New()
	f.formations[formation.ID] = formation
	return nil
}

func (f *fakeFormationStore) GetByID(_ context.Context, id uuid.UUID) (*model.Formation, error) {
	formation, ok := f.formations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *formation
	return &cp, nil
}

func (f *fakeFormationStore) Update(_ context.Context, formation *model.Formation) error {
	stored, ok := f.formations[formation.ID]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *formation
	stored.ExpertApproved = false
	stored.AdminApproved = false
	return nil
}

func (f *fakeFormationStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.formations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.formations, id)
	return nil
}

func (f *fakeFormationStore) ListByTrainer(_ context.Context, trainerID int) ([]model.Formation, error) {
	var out []model.Formation
	for _, formation := range f.formations {
		if formation.TrainerID == trainerID {
			out = append(out, *formation)
		}
	}
	return out, nil
}

func (f *fakeFormationStore) ListAll(_ context.Context) ([]model.Formation, error) {
	var out []model.Formation
	for _, formation := range f.formations {
		out = append(out, *formation)
	}
	return out, nil
}

func (f *fakeFormationStore) ListPublished(_ context.Context, categoryID *int) ([]model.Formation, error) {
	var out []model.Formation
	for _, formation := range f.formations {
		if !formation.Published() {
			continue
		}
		if categoryID != nil && formation.CategoryID != *categoryID {
			continue
		}
		out = append(out, *formation)
	}
	return out, nil
}

func (f *fakeFormationStore) ListPendingExpert(_ context.Context) ([]model.Formation, error) {
	var out []model.Formation
	for _, formation := range f.formations {
		if !formation.ExpertApproved {
			out = append(out, *formation)
		}
	}
	return out, nil
}

func (f *fakeFormationStore) SetExpertApproved(_ context.Context, id uuid.UUID) error {
	formation, ok := f.formations[id]
	if !ok {
		return repository.ErrNotFound
	}
	formation.ExpertApproved = true
	return nil
}

func (f *fakeFormationStore) SetAdminApproved(_ context.Context, id uuid.UUID) error {
	formation, ok := f.formations[id]
	if !ok {
		return repository.ErrNotFound
	}
	formation.AdminApproved = true
	return nil
}

func (f *fakeFormationStore) LoadHierarchy(_ context.Context, formation *model.Formation) error {
	if formation.Chapters == nil {
		formation.Chapters = []model.Chapter{}
	}
	return nil
}

type fakeChapterStore struct {
	chapterOwner map[uuid.UUID]uuid.UUID
}

func (f *fakeChapterStore) CreateChapter(_ context.Context, c *model.Chapter) error {
	c.ID = uuid.New()
	f.chapterOwner[c.ID] = c.FormationID
	return nil
}

func (f *fakeChapterStore) GetChapter(_ context.Context, id uuid.UUID) (*model.Chapter, error) {
	formationID, ok := f.chapterOwner[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.Chapter{ID: id, FormationID: formationID}, nil
}

func (f *fakeChapterStore) UpdateChapter(context.Context, *model.Chapter) error { return nil }

func (f *fakeChapterStore) DeleteChapter(_ context.Context, id uuid.UUID) error {
	delete(f.chapterOwner, id)
	return nil
}

func (f *fakeChapterStore) ReviewChapter(context.Context, uuid.UUID, bool, *string) error {
	return nil
}

func (f *fakeChapterStore) CreatePart(_ context.Context, p *model.Part) error {
	p.ID = uuid.New()
	return nil
}

func (f *fakeChapterStore) GetPart(context.Context, uuid.UUID) (*model.Part, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeChapterStore) DeletePart(context.Context, uuid.UUID) error { return nil }

func (f *fakeChapterStore) CreateResource(_ context.Context, r *model.Resource) error {
	r.ID = uuid.New()
	return nil
}

func (f *fakeChapterStore) DeleteResource(context.Context, uuid.UUID) error { return nil }

func (f *fakeChapterStore) FormationIDForChapter(_ context.Context, chapterID uuid.UUID) (uuid.UUID, error) {
	formationID, ok := f.chapterOwner[chapterID]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return formationID, nil
}

func (f *fakeChapterStore) FormationIDForPart(context.Context, uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, repository.ErrNotFound
}

func (f *fakeChapterStore) FormationIDForResource(context.Context, uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, repository.ErrNotFound
}

// newFormationFixture wires the service against fakes and an unreachable
// Redis, so cache reads and writes degrade to the store path.
func newFormationFixture() (*FormationService, *fakeFormationStore) {
	store := newFakeFormationStore()
	chapters := &fakeChapterStore{chapterOwner: map[uuid.UUID]uuid.UUID{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewFormationService(store, chapters, rdb, zerolog.Nop()), store
}

func createFormation(t *testing.T, s *FormationService, trainerID int) *model.Formation {
	t.Helper()
	formation, err := s.Create(context.Background(), trainerID, &model.UpsertFormationRequest{
		Title:       "Go pour le web",
		Description: "API REST en Go",
		CategoryID:  1,
		PriceCents:  4999,
	})
	require.NoError(t, err)
	return formation
}

func TestCreateFormationStartsUnapproved(t *testing.T) {
	s, _ := newFormationFixture()

	formation := createFormation(t, s, 1)
	assert.False(t, formation.ExpertApproved)
	assert.False(t, formation.AdminApproved)
	assert.False(t, formation.Published())
}

func TestUpdateRequiresOwnership(t *testing.T) {
	s, _ := newFormationFixture()
	formation := createFormation(t, s, 1)

	req := &model.UpsertFormationRequest{Title: "Autre", Description: "d", CategoryID: 1, PriceCents: 100}
	_, err := s.Update(context.Background(), 2, formation.ID, req)
	assert.ErrorIs(t, err, ErrNotFormationOwner)

	_, err = s.Update(context.Background(), 1, formation.ID, req)
	assert.NoError(t, err)
}

func TestUpdateResetsApprovals(t *testing.T) {
	s, store := newFormationFixture()
	formation := createFormation(t, s, 1)

	require.NoError(t, s.ApproveByExpert(context.Background(), formation.ID))
	require.NoError(t, s.ApproveByAdmin(context.Background(), formation.ID))
	stored, _ := store.GetByID(context.Background(), formation.ID)
	require.True(t, stored.Published())

	_, err := s.Update(context.Background(), 1, formation.ID, &model.UpsertFormationRequest{
		Title: "Go pour le web v2", Description: "mise à jour", CategoryID: 1, PriceCents: 5999,
	})
	require.NoError(t, err)

	stored, _ = store.GetByID(context.Background(), formation.ID)
	assert.False(t, stored.Published(), "editing must drop the formation from the catalog")
}

func TestPublishedRequiresBothApprovals(t *testing.T) {
	s, _ := newFormationFixture()
	formation := createFormation(t, s, 1)

	require.NoError(t, s.ApproveByExpert(context.Background(), formation.ID))
	_, err := s.GetPublishedDetail(context.Background(), formation.ID)
	assert.ErrorIs(t, err, ErrNotPublished)

	require.NoError(t, s.ApproveByAdmin(context.Background(), formation.ID))
	detail, err := s.GetPublishedDetail(context.Background(), formation.ID)
	require.NoError(t, err)
	assert.True(t, detail.Published())
}

func TestListPublishedFiltersByCategory(t *testing.T) {
	s, _ := newFormationFixture()

	f1 := createFormation(t, s, 1)
	require.NoError(t, s.ApproveByExpert(context.Background(), f1.ID))
	require.NoError(t, s.ApproveByAdmin(context.Background(), f1.ID))

	// Second formation in another category, also published.
	f2, err := s.Create(context.Background(), 1, &model.UpsertFormationRequest{
		Title: "Cuisine", Description: "d", CategoryID: 2, PriceCents: 1000,
	})
	require.NoError(t, err)
	require.NoError(t, s.ApproveByExpert(context.Background(), f2.ID))
	require.NoError(t, s.ApproveByAdmin(context.Background(), f2.ID))

	// Third one stays unpublished.
	createFormation(t, s, 1)

	all, err := s.ListPublished(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	catID := 2
	filtered, err := s.ListPublished(context.Background(), &catID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Cuisine", filtered[0].Title)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	s, store := newFormationFixture()
	formation := createFormation(t, s, 1)

	err := s.Delete(context.Background(), 2, formation.ID)
	assert.ErrorIs(t, err, ErrNotFormationOwner)

	require.NoError(t, s.Delete(context.Background(), 1, formation.ID))
	_, err = store.GetByID(context.Background(), formation.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChapterOpsCheckOwnership(t *testing.T) {
	s, _ := newFormationFixture()
	formation := createFormation(t, s, 1)

	chapter, err := s.AddChapter(context.Background(), 1, formation.ID, &model.UpsertChapterRequest{Title: "Intro", OrderIndex: 1})
	require.NoError(t, err)

	_, err = s.AddChapter(context.Background(), 2, formation.ID, &model.UpsertChapterRequest{Title: "Pirate", OrderIndex: 2})
	assert.ErrorIs(t, err, ErrNotFormationOwner)

	err = s.DeleteChapter(context.Background(), 2, chapter.ID)
	assert.ErrorIs(t, err, ErrNotFormationOwner)

	err = s.DeleteChapter(context.Background(), 1, chapter.ID)
	assert.NoError(t, err)
}
