package repository

import (
	"context"
	"errors"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FormationRepository handles formation data access.
type FormationRepository struct {
	pool *pgxpool.Pool
}

// NewFormationRepository creates a new FormationRepository.
func NewFormationRepository(pool *pgxpool.Pool) *FormationRepository {
	return &FormationRepository{pool: pool}
}

const formationColumns = `id, title, description, category_id, trainer_id, price_cents,
	expert_approved, admin_approved, image_url, created_at, updated_at`

func scanFormation(row pgx.Row) (*model.Formation, error) {
	f := &model.Formation{}
	err := row.Scan(&f.ID, &f.Title, &f.Description, &f.CategoryID, &f.TrainerID, &f.PriceCents,
		&f.ExpertApproved, &f.AdminApproved, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func collectFormations(rows pgx.Rows) ([]model.Formation, error) {
	defer rows.Close()
	var formations []model.Formation
	for rows.Next() {
		var f model.Formation
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.CategoryID, &f.TrainerID, &f.PriceCents,
			&f.ExpertApproved, &f.AdminApproved, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		formations = append(formations, f)
	}
	return formations, rows.Err()
}

// Create inserts a new formation.
func (r *FormationRepository) Create(ctx context.Context, f *model.Formation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO formations (title, description, category_id, trainer_id, price_cents, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, expert_approved, admin_approved, created_at, updated_at`,
		f.Title, f.Description, f.CategoryID, f.TrainerID, f.PriceCents, f.ImageURL,
	).Scan(&f.ID, &f.ExpertApproved, &f.AdminApproved, &f.CreatedAt, &f.UpdatedAt)
}

// GetByID retrieves a formation by ID.
func (r *FormationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Formation, error) {
	return scanFormation(r.pool.QueryRow(ctx,
		`SELECT `+formationColumns+` FROM formations WHERE id = $1`, id))
}

// Update modifies a formation's editable fields. Any content edit resets
// both approval flags: re-approval is required after changes.
func (r *FormationRepository) Update(ctx context.Context, f *model.Formation) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE formations
		 SET title = $1, description = $2, category_id = $3, price_cents = $4, image_url = $5,
		     expert_approved = FALSE, admin_approved = FALSE, updated_at = NOW()
		 WHERE id = $6`,
		f.Title, f.Description, f.CategoryID, f.PriceCents, f.ImageURL, f.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a formation; chapters, parts and resources cascade.
func (r *FormationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM formations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByTrainer retrieves a trainer's own formations, newest first.
func (r *FormationRepository) ListByTrainer(ctx context.Context, trainerID int) ([]model.Formation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+formationColumns+` FROM formations WHERE trainer_id = $1 ORDER BY created_at DESC`,
		trainerID)
	if err != nil {
		return nil, err
	}
	return collectFormations(rows)
}

// ListAll retrieves every formation regardless of approval state.
func (r *FormationRepository) ListAll(ctx context.Context) ([]model.Formation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+formationColumns+` FROM formations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectFormations(rows)
}

// ListPublished retrieves formations with both approval flags set,
// optionally filtered by category.
func (r *FormationRepository) ListPublished(ctx context.Context, categoryID *int) ([]model.Formation, error) {
	query := `SELECT ` + formationColumns + ` FROM formations
	          WHERE expert_approved AND admin_approved`
	var args []interface{}
	if categoryID != nil {
		query += ` AND category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectFormations(rows)
}

// ListPendingExpert retrieves formations still waiting for expert approval.
func (r *FormationRepository) ListPendingExpert(ctx context.Context) ([]model.Formation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+formationColumns+` FROM formations WHERE NOT expert_approved ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return collectFormations(rows)
}

// SetExpertApproved sets the expert approval flag.
func (r *FormationRepository) SetExpertApproved(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE formations SET expert_approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdminApproved sets the admin approval flag.
func (r *FormationRepository) SetAdminApproved(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE formations SET admin_approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadHierarchy populates f.Chapters with the ordered
// chapter → part → resource tree.
func (r *FormationRepository) LoadHierarchy(ctx context.Context, f *model.Formation) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, formation_id, title, order_index, expert_accepted, comment
		 FROM chapters WHERE formation_id = $1 ORDER BY order_index`, f.ID)
	if err != nil {
		return err
	}
	chapters := []model.Chapter{}
	chapterIdx := map[uuid.UUID]int{}
	for rows.Next() {
		var c model.Chapter
		if err := rows.Scan(&c.ID, &c.FormationID, &c.Title, &c.OrderIndex, &c.ExpertAccepted, &c.Comment); err != nil {
			rows.Close()
			return err
		}
		chapterIdx[c.ID] = len(chapters)
		chapters = append(chapters, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	partRows, err := r.pool.Query(ctx,
		`SELECT p.id, p.chapter_id, p.title, p.order_index
		 FROM parts p JOIN chapters c ON c.id = p.chapter_id
		 WHERE c.formation_id = $1 ORDER BY p.order_index`, f.ID)
	if err != nil {
		return err
	}
	partIdx := map[uuid.UUID][2]int{} // part id -> (chapter index, part index)
	for partRows.Next() {
		var p model.Part
		if err := partRows.Scan(&p.ID, &p.ChapterID, &p.Title, &p.OrderIndex); err != nil {
			partRows.Close()
			return err
		}
		ci := chapterIdx[p.ChapterID]
		partIdx[p.ID] = [2]int{ci, len(chapters[ci].Parts)}
		chapters[ci].Parts = append(chapters[ci].Parts, p)
	}
	partRows.Close()
	if err := partRows.Err(); err != nil {
		return err
	}

	resRows, err := r.pool.Query(ctx,
		`SELECT r.id, r.part_id, r.kind, r.file_url, r.order_index
		 FROM resources r
		 JOIN parts p ON p.id = r.part_id
		 JOIN chapters c ON c.id = p.chapter_id
		 WHERE c.formation_id = $1 ORDER BY r.order_index`, f.ID)
	if err != nil {
		return err
	}
	defer resRows.Close()
	for resRows.Next() {
		var res model.Resource
		if err := resRows.Scan(&res.ID, &res.PartID, &res.Kind, &res.FileURL, &res.OrderIndex); err != nil {
			return err
		}
		loc := partIdx[res.PartID]
		part := &chapters[loc[0]].Parts[loc[1]]
		part.Resources = append(part.Resources, res)
	}
	if err := resRows.Err(); err != nil {
		return err
	}

	f.Chapters = chapters
	return nil
}
