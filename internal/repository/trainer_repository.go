package repository

import (
	"context"
	"errors"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TrainerRepository handles trainer data access.
type TrainerRepository struct {
	pool *pgxpool.Pool
}

// NewTrainerRepository creates a new TrainerRepository.
func NewTrainerRepository(pool *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{pool: pool}
}

const trainerColumns = `id, nom, prenom, email, password_hash, adresse, telephone,
	profession, years_experience, activated, created_at, updated_at`

func scanTrainer(row pgx.Row) (*model.Trainer, error) {
	t := &model.Trainer{}
	err := row.Scan(&t.ID, &t.Nom, &t.Prenom, &t.Email, &t.PasswordHash, &t.Adresse, &t.Telephone,
		&t.Profession, &t.YearsExperience, &t.Activated, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create inserts a new trainer. New trainers always start deactivated.
func (r *TrainerRepository) Create(ctx context.Context, t *model.Trainer) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO trainers (nom, prenom, email, password_hash, adresse, telephone, profession, years_experience, activated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
		 RETURNING id, activated, created_at, updated_at`,
		t.Nom, t.Prenom, t.Email, t.PasswordHash, t.Adresse, t.Telephone, t.Profession, t.YearsExperience,
	).Scan(&t.ID, &t.Activated, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves a trainer by ID.
func (r *TrainerRepository) GetByID(ctx context.Context, id int) (*model.Trainer, error) {
	return scanTrainer(r.pool.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE id = $1`, id))
}

// GetByEmail retrieves a trainer by their unique email.
func (r *TrainerRepository) GetByEmail(ctx context.Context, email string) (*model.Trainer, error) {
	return scanTrainer(r.pool.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE email = $1`, email))
}

// List retrieves all trainers ordered by name.
func (r *TrainerRepository) List(ctx context.Context) ([]model.Trainer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+trainerColumns+` FROM trainers ORDER BY nom, prenom`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []model.Trainer
	for rows.Next() {
		var t model.Trainer
		if err := rows.Scan(&t.ID, &t.Nom, &t.Prenom, &t.Email, &t.PasswordHash, &t.Adresse, &t.Telephone,
			&t.Profession, &t.YearsExperience, &t.Activated, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

// SetActivated flips the activation flag.
func (r *TrainerRepository) SetActivated(ctx context.Context, id int, activated bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trainers SET activated = $1, updated_at = NOW() WHERE id = $2`,
		activated, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a trainer account; their formations cascade.
func (r *TrainerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile modifies a trainer's own profile fields.
func (r *TrainerRepository) UpdateProfile(ctx context.Context, t *model.Trainer) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trainers SET adresse = $1, telephone = $2, profession = $3, years_experience = $4, updated_at = NOW()
		 WHERE id = $5`,
		t.Adresse, t.Telephone, t.Profession, t.YearsExperience, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
