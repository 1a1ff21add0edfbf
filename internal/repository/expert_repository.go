package repository

import (
	"context"
	"errors"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpertRepository handles expert data access.
type ExpertRepository struct {
	pool *pgxpool.Pool
}

// NewExpertRepository creates a new ExpertRepository.
func NewExpertRepository(pool *pgxpool.Pool) *ExpertRepository {
	return &ExpertRepository{pool: pool}
}

// Create inserts a new expert.
func (r *ExpertRepository) Create(ctx context.Context, e *model.Expert) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO experts (nom, prenom, email, password_hash, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		e.Nom, e.Prenom, e.Email, e.PasswordHash, e.ImageURL,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves an expert by ID.
func (r *ExpertRepository) GetByID(ctx context.Context, id int) (*model.Expert, error) {
	e := &model.Expert{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nom, prenom, email, password_hash, image_url, created_at, updated_at
		 FROM experts WHERE id = $1`, id,
	).Scan(&e.ID, &e.Nom, &e.Prenom, &e.Email, &e.PasswordHash, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// GetByEmail retrieves an expert by their unique email.
func (r *ExpertRepository) GetByEmail(ctx context.Context, email string) (*model.Expert, error) {
	e := &model.Expert{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nom, prenom, email, password_hash, image_url, created_at, updated_at
		 FROM experts WHERE email = $1`, email,
	).Scan(&e.ID, &e.Nom, &e.Prenom, &e.Email, &e.PasswordHash, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
