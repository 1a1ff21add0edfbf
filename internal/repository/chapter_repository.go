package repository

import (
	"context"
	"errors"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChapterRepository handles the chapter → part → resource hierarchy.
type ChapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository creates a new ChapterRepository.
func NewChapterRepository(pool *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{pool: pool}
}

// CreateChapter inserts a chapter under a formation.
func (r *ChapterRepository) CreateChapter(ctx context.Context, c *model.Chapter) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO chapters (formation_id, title, order_index)
		 VALUES ($1, $2, $3) RETURNING id`,
		c.FormationID, c.Title, c.OrderIndex,
	).Scan(&c.ID)
}

// GetChapter retrieves a chapter by ID.
func (r *ChapterRepository) GetChapter(ctx context.Context, id uuid.UUID) (*model.Chapter, error) {
	c := &model.Chapter{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, formation_id, title, order_index, expert_accepted, comment
		 FROM chapters WHERE id = $1`, id,
	).Scan(&c.ID, &c.FormationID, &c.Title, &c.OrderIndex, &c.ExpertAccepted, &c.Comment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// UpdateChapter modifies a chapter's title and position.
func (r *ChapterRepository) UpdateChapter(ctx context.Context, c *model.Chapter) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE chapters SET title = $1, order_index = $2 WHERE id = $3`,
		c.Title, c.OrderIndex, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChapter removes a chapter; parts and resources cascade.
func (r *ChapterRepository) DeleteChapter(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReviewChapter records an expert's verdict on a chapter.
func (r *ChapterRepository) ReviewChapter(ctx context.Context, id uuid.UUID, accepted bool, comment *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE chapters SET expert_accepted = $1, comment = $2 WHERE id = $3`,
		accepted, comment, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreatePart inserts a part under a chapter.
func (r *ChapterRepository) CreatePart(ctx context.Context, p *model.Part) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO parts (chapter_id, title, order_index)
		 VALUES ($1, $2, $3) RETURNING id`,
		p.ChapterID, p.Title, p.OrderIndex,
	).Scan(&p.ID)
}

// GetPart retrieves a part by ID.
func (r *ChapterRepository) GetPart(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	p := &model.Part{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, chapter_id, title, order_index FROM parts WHERE id = $1`, id,
	).Scan(&p.ID, &p.ChapterID, &p.Title, &p.OrderIndex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// DeletePart removes a part; resources cascade.
func (r *ChapterRepository) DeletePart(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateResource attaches a resource to a part.
func (r *ChapterRepository) CreateResource(ctx context.Context, res *model.Resource) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO resources (part_id, kind, file_url, order_index)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		res.PartID, res.Kind, res.FileURL, res.OrderIndex,
	).Scan(&res.ID)
}

// DeleteResource removes a resource.
func (r *ChapterRepository) DeleteResource(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FormationIDForChapter resolves the owning formation of a chapter.
func (r *ChapterRepository) FormationIDForChapter(ctx context.Context, chapterID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT formation_id FROM chapters WHERE id = $1`, chapterID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

// FormationIDForPart resolves the owning formation of a part.
func (r *ChapterRepository) FormationIDForPart(ctx context.Context, partID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT c.formation_id FROM parts p JOIN chapters c ON c.id = p.chapter_id
		 WHERE p.id = $1`, partID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

// FormationIDForResource resolves the owning formation of a resource.
func (r *ChapterRepository) FormationIDForResource(ctx context.Context, resourceID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT c.formation_id
		 FROM resources r
		 JOIN parts p ON p.id = r.part_id
		 JOIN chapters c ON c.id = p.chapter_id
		 WHERE r.id = $1`, resourceID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}
