package repository

import (
	"context"
	"errors"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DemandeRepository handles trainer-onboarding request data access.
type DemandeRepository struct {
	pool *pgxpool.Pool
}

// NewDemandeRepository creates a new DemandeRepository.
func NewDemandeRepository(pool *pgxpool.Pool) *DemandeRepository {
	return &DemandeRepository{pool: pool}
}

// Create inserts a new pending demande.
func (r *DemandeRepository) Create(ctx context.Context, d *model.Demande) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO demandes (nom, prenom, email, status)
		 VALUES ($1, $2, $3, 'pending')
		 RETURNING id, status, created_at`,
		d.Nom, d.Prenom, d.Email,
	).Scan(&d.ID, &d.Status, &d.CreatedAt)
}

// List retrieves all pending demandes, oldest first.
func (r *DemandeRepository) List(ctx context.Context) ([]model.Demande, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nom, prenom, email, status, created_at FROM demandes ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var demandes []model.Demande
	for rows.Next() {
		var d model.Demande
		if err := rows.Scan(&d.ID, &d.Nom, &d.Prenom, &d.Email, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		demandes = append(demandes, d)
	}
	return demandes, rows.Err()
}

// GetByID retrieves a demande by ID.
func (r *DemandeRepository) GetByID(ctx context.Context, id int) (*model.Demande, error) {
	d := &model.Demande{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nom, prenom, email, status, created_at FROM demandes WHERE id = $1`, id,
	).Scan(&d.ID, &d.Nom, &d.Prenom, &d.Email, &d.Status, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Delete removes a demande. Accepted and refused demandes never persist in
// a terminal state; the transition deletes the record.
func (r *DemandeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM demandes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
