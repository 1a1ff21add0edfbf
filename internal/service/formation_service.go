package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Formation access errors.
var (
	ErrNotFormationOwner = errors.New("trainer does not own this formation")
	ErrNotPublished      = errors.New("formation is not published")
)

// catalogCacheKey holds the JSON-encoded published catalog in Redis.
const catalogCacheKey = "catalog:published"

// catalogCacheTTL bounds staleness if an invalidation is ever missed.
const catalogCacheTTL = 10 * time.Minute

// FormationStore is the persistence surface FormationService needs.
type FormationStore interface {
	Create(ctx context.Context, f *model.Formation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Formation, error)
	Update(ctx context.Context, f *model.Formation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTrainer(ctx context.Context, trainerID int) ([]model.Formation, error)
	ListAll(ctx context.Context) ([]model.Formation, error)
	ListPublished(ctx context.Context, categoryID *int) ([]model.Formation, error)
	ListPendingExpert(ctx context.Context) ([]model.Formation, error)
	SetExpertApproved(ctx context.Context, id uuid.UUID) error
	SetAdminApproved(ctx context.Context, id uuid.UUID) error
	LoadHierarchy(ctx context.Context, f *model.Formation) error
}

// ChapterStore is the persistence surface for the content hierarchy.
type ChapterStore interface {
	CreateChapter(ctx context.Context, c *model.Chapter) error
	GetChapter(ctx context.Context, id uuid.UUID) (*model.Chapter, error)
	UpdateChapter(ctx context.Context, c *model.Chapter) error
	DeleteChapter(ctx context.Context, id uuid.UUID) error
	ReviewChapter(ctx context.Context, id uuid.UUID, accepted bool, comment *string) error
	CreatePart(ctx context.Context, p *model.Part) error
	GetPart(ctx context.Context, id uuid.UUID) (*model.Part, error)
	DeletePart(ctx context.Context, id uuid.UUID) error
	CreateResource(ctx context.Context, r *model.Resource) error
	DeleteResource(ctx context.Context, id uuid.UUID) error
	FormationIDForChapter(ctx context.Context, chapterID uuid.UUID) (uuid.UUID, error)
	FormationIDForPart(ctx context.Context, partID uuid.UUID) (uuid.UUID, error)
	FormationIDForResource(ctx context.Context, resourceID uuid.UUID) (uuid.UUID, error)
}

// FormationService handles formations, their content hierarchy, the
// dual-approval flow and the published-catalog cache.
type FormationService struct {
	store    FormationStore
	chapters ChapterStore
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewFormationService creates a new FormationService.
func NewFormationService(store FormationStore, chapters ChapterStore, rdb *redis.Client, log zerolog.Logger) *FormationService {
	return &FormationService{store: store, chapters: chapters, rdb: rdb, log: log}
}

// ─── Trainer operations ────────────────────────────────────────────────────

// Create inserts a formation owned by the trainer. New formations start
// unapproved on both axes.
func (s *FormationService) Create(ctx context.Context, trainerID int, req *model.UpsertFormationRequest) (*model.Formation, error) {
	formation := &model.Formation{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		TrainerID:   trainerID,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
	}
	if err := s.store.Create(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}

// Update edits a trainer's own formation. Approval flags reset, so the
// formation drops out of the published catalog until re-approved.
func (s *FormationService) Update(ctx context.Context, trainerID int, id uuid.UUID, req *model.UpsertFormationRequest) (*model.Formation, error) {
	formation, err := s.ownedFormation(ctx, trainerID, id)
	if err != nil {
		return nil, err
	}

	formation.Title = req.Title
	formation.Description = req.Description
	formation.CategoryID = req.CategoryID
	formation.PriceCents = req.PriceCents
	formation.ImageURL = req.ImageURL

	if err := s.store.Update(ctx, formation); err != nil {
		return nil, err
	}
	formation.ExpertApproved = false
	formation.AdminApproved = false
	s.invalidateCatalog(ctx)
	return formation, nil
}

// Delete removes a trainer's own formation and its whole hierarchy.
func (s *FormationService) Delete(ctx context.Context, trainerID int, id uuid.UUID) error {
	if _, err := s.ownedFormation(ctx, trainerID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ListByTrainer retrieves a trainer's own formations.
func (s *FormationService) ListByTrainer(ctx context.Context, trainerID int) ([]model.Formation, error) {
	formations, err := s.store.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	if formations == nil {
		formations = []model.Formation{}
	}
	return formations, nil
}

// GetOwnedDetail retrieves a trainer's own formation with its hierarchy.
func (s *FormationService) GetOwnedDetail(ctx context.Context, trainerID int, id uuid.UUID) (*model.Formation, error) {
	formation, err := s.ownedFormation(ctx, trainerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.LoadHierarchy(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}

// ─── Hierarchy operations (trainer-owned) ──────────────────────────────────

// AddChapter appends a chapter to a trainer's own formation.
func (s *FormationService) AddChapter(ctx context.Context, trainerID int, formationID uuid.UUID, req *model.UpsertChapterRequest) (*model.Chapter, error) {
	if _, err := s.ownedFormation(ctx, trainerID, formationID); err != nil {
		return nil, err
	}
	chapter := &model.Chapter{FormationID: formationID, Title: req.Title, OrderIndex: req.OrderIndex}
	if err := s.chapters.CreateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// UpdateChapter edits a chapter of a trainer's own formation.
func (s *FormationService) UpdateChapter(ctx context.Context, trainerID int, chapterID uuid.UUID, req *model.UpsertChapterRequest) (*model.Chapter, error) {
	if err := s.checkChapterOwner(ctx, trainerID, chapterID); err != nil {
		return nil, err
	}
	chapter, err := s.chapters.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	chapter.Title = req.Title
	chapter.OrderIndex = req.OrderIndex
	if err := s.chapters.UpdateChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// DeleteChapter removes a chapter of a trainer's own formation.
func (s *FormationService) DeleteChapter(ctx context.Context, trainerID int, chapterID uuid.UUID) error {
	if err := s.checkChapterOwner(ctx, trainerID, chapterID); err != nil {
		return err
	}
	return s.chapters.DeleteChapter(ctx, chapterID)
}

// AddPart appends a part to a chapter of a trainer's own formation.
func (s *FormationService) AddPart(ctx context.Context, trainerID int, chapterID uuid.UUID, req *model.UpsertPartRequest) (*model.Part, error) {
	if err := s.checkChapterOwner(ctx, trainerID, chapterID); err != nil {
		return nil, err
	}
	part := &model.Part{ChapterID: chapterID, Title: req.Title, OrderIndex: req.OrderIndex}
	if err := s.chapters.CreatePart(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// DeletePart removes a part of a trainer's own formation.
func (s *FormationService) DeletePart(ctx context.Context, trainerID int, partID uuid.UUID) error {
	formationID, err := s.chapters.FormationIDForPart(ctx, partID)
	if err != nil {
		return err
	}
	if _, err := s.ownedFormation(ctx, trainerID, formationID); err != nil {
		return err
	}
	return s.chapters.DeletePart(ctx, partID)
}

// AddResource attaches a resource to a part of a trainer's own formation.
func (s *FormationService) AddResource(ctx context.Context, trainerID int, partID uuid.UUID, req *model.AddResourceRequest) (*model.Resource, error) {
	formationID, err := s.chapters.FormationIDForPart(ctx, partID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedFormation(ctx, trainerID, formationID); err != nil {
		return nil, err
	}
	resource := &model.Resource{PartID: partID, Kind: req.Kind, FileURL: req.FileURL, OrderIndex: req.OrderIndex}
	if err := s.chapters.CreateResource(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// DeleteResource removes a resource of a trainer's own formation.
func (s *FormationService) DeleteResource(ctx context.Context, trainerID int, resourceID uuid.UUID) error {
	formationID, err := s.chapters.FormationIDForResource(ctx, resourceID)
	if err != nil {
		return err
	}
	if _, err := s.ownedFormation(ctx, trainerID, formationID); err != nil {
		return err
	}
	return s.chapters.DeleteResource(ctx, resourceID)
}

// ─── Review operations ─────────────────────────────────────────────────────

// ListPendingExpert retrieves formations waiting for expert review.
func (s *FormationService) ListPendingExpert(ctx context.Context) ([]model.Formation, error) {
	formations, err := s.store.ListPendingExpert(ctx)
	if err != nil {
		return nil, err
	}
	if formations == nil {
		formations = []model.Formation{}
	}
	return formations, nil
}

// ApproveByExpert sets the expert approval flag.
func (s *FormationService) ApproveByExpert(ctx context.Context, id uuid.UUID) error {
	if err := s.store.SetExpertApproved(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ApproveByAdmin sets the admin approval flag.
func (s *FormationService) ApproveByAdmin(ctx context.Context, id uuid.UUID) error {
	if err := s.store.SetAdminApproved(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ReviewChapter records an expert verdict on a chapter.
func (s *FormationService) ReviewChapter(ctx context.Context, chapterID uuid.UUID, req *model.ReviewChapterRequest) error {
	return s.chapters.ReviewChapter(ctx, chapterID, req.Accepted, req.Comment)
}

// GetDetail retrieves any formation with its hierarchy, regardless of
// publication state. Reviewer-facing.
func (s *FormationService) GetDetail(ctx context.Context, id uuid.UUID) (*model.Formation, error) {
	formation, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.LoadHierarchy(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}

// ListAll retrieves every formation for admin moderation.
func (s *FormationService) ListAll(ctx context.Context) ([]model.Formation, error) {
	formations, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if formations == nil {
		formations = []model.Formation{}
	}
	return formations, nil
}

// ─── Learner-facing catalog ────────────────────────────────────────────────

// ListPublished retrieves the learner-facing catalog: only formations with
// both approval flags set are visible or purchasable. The unfiltered list
// is served from Redis when possible; cache errors fall through to
// Postgres and are only logged.
func (s *FormationService) ListPublished(ctx context.Context, categoryID *int) ([]model.Formation, error) {
	if categoryID == nil {
		if cached, err := s.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
			var formations []model.Formation
			if err := json.Unmarshal(cached, &formations); err == nil {
				return formations, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Catalog cache read failed")
		}
	}

	formations, err := s.store.ListPublished(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if formations == nil {
		formations = []model.Formation{}
	}

	if categoryID == nil {
		if encoded, err := json.Marshal(formations); err == nil {
			if err := s.rdb.Set(ctx, catalogCacheKey, encoded, catalogCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Catalog cache write failed")
			}
		}
	}
	return formations, nil
}

// GetPublishedDetail retrieves one published formation with its hierarchy.
// Unpublished formations are invisible to learners: ErrNotPublished.
func (s *FormationService) GetPublishedDetail(ctx context.Context, id uuid.UUID) (*model.Formation, error) {
	formation, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !formation.Published() {
		return nil, ErrNotPublished
	}
	if err := s.store.LoadHierarchy(ctx, formation); err != nil {
		return nil, err
	}
	return formation, nil
}

// PrewarmCatalog loads the published catalog into Redis before the server
// accepts traffic.
func (s *FormationService) PrewarmCatalog(ctx context.Context) error {
	_, err := s.ListPublished(ctx, nil)
	return err
}

// ─── Internal helpers ──────────────────────────────────────────────────────

func (s *FormationService) ownedFormation(ctx context.Context, trainerID int, id uuid.UUID) (*model.Formation, error) {
	formation, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if formation.TrainerID != trainerID {
		return nil, ErrNotFormationOwner
	}
	return formation, nil
}

func (s *FormationService) checkChapterOwner(ctx context.Context, trainerID int, chapterID uuid.UUID) error {
	formationID, err := s.chapters.FormationIDForChapter(ctx, chapterID)
	if err != nil {
		return err
	}
	_, err = s.ownedFormation(ctx, trainerID, formationID)
	return err
}

func (s *FormationService) invalidateCatalog(ctx context.Context) {
	if err := s.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
