package repository

import (
	"context"
	"errors"
	"time"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartRepository handles cart persistence. Every mutating operation runs in
// a single transaction with the cart row locked (SELECT ... FOR UPDATE), so
// two concurrent mutations on the same cart serialize instead of losing
// updates, and the total is always re-derived from the line items inside
// the same transaction.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetByLearner retrieves the learner's cart with its items, or ErrNotFound
// when the learner has never added an item.
func (r *CartRepository) GetByLearner(ctx context.Context, learnerID int) (*model.Cart, error) {
	return loadCart(ctx, r.pool, learnerID)
}

// AddItem adds a formation to the learner's cart, creating the cart lazily.
// The price is captured at add-time. Re-adding a formation already in the
// cart is idempotent: already=true is returned and nothing changes.
func (r *CartRepository) AddItem(ctx context.Context, learnerID int, formationID uuid.UUID, priceCents int64) (cart *model.Cart, already bool, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO carts (learner_id) VALUES ($1) ON CONFLICT (learner_id) DO NOTHING`,
		learnerID); err != nil {
		return nil, false, err
	}

	cartID, paid, err := lockCart(ctx, tx, learnerID)
	if err != nil {
		return nil, false, err
	}
	if paid {
		return nil, false, ErrCartPaid
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO cart_items (cart_id, formation_id, price_cents)
		 VALUES ($1, $2, $3) ON CONFLICT (cart_id, formation_id) DO NOTHING`,
		cartID, formationID, priceCents)
	if err != nil {
		return nil, false, err
	}
	already = tag.RowsAffected() == 0

	if !already {
		if err := recomputeTotal(ctx, tx, cartID); err != nil {
			return nil, false, err
		}
	}

	cart, err = loadCart(ctx, tx, learnerID)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return cart, already, nil
}

// RemoveItem removes a formation from the learner's cart and recomputes the
// total. ErrNotFound when no cart exists, ErrCartItemNotFound when the
// formation is not a line item.
func (r *CartRepository) RemoveItem(ctx context.Context, learnerID int, formationID uuid.UUID) (*model.Cart, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, paid, err := lockCart(ctx, tx, learnerID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, ErrCartPaid
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND formation_id = $2`,
		cartID, formationID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrCartItemNotFound
	}

	if err := recomputeTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}

	cart, err := loadCart(ctx, tx, learnerID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

// Checkout marks the cart paid. The transition is one-way: a paid cart
// fails ErrCartPaid with its payment fields untouched, an empty cart fails
// ErrCartEmpty.
func (r *CartRepository) Checkout(ctx context.Context, learnerID int, paymentRef string) (*model.Cart, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cartID, paid, err := lockCart(ctx, tx, learnerID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, ErrCartPaid
	}

	var count int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCartEmpty
	}

	if _, err := tx.Exec(ctx,
		`UPDATE carts SET paid = TRUE, paid_at = NOW(), payment_ref = $1, updated_at = NOW()
		 WHERE id = $2`, paymentRef, cartID); err != nil {
		return nil, err
	}

	cart, err := loadCart(ctx, tx, learnerID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

// lockCart locks the learner's cart row and returns its id and paid flag.
func lockCart(ctx context.Context, tx pgx.Tx, learnerID int) (uuid.UUID, bool, error) {
	var id uuid.UUID
	var paid bool
	err := tx.QueryRow(ctx,
		`SELECT id, paid FROM carts WHERE learner_id = $1 FOR UPDATE`,
		learnerID).Scan(&id, &paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, ErrNotFound
		}
		return uuid.Nil, false, err
	}
	return id, paid, nil
}

// recomputeTotal re-derives the cart total as the sum of its line items,
// never incrementing it in place.
func recomputeTotal(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE carts
		 SET total_cents = (SELECT COALESCE(SUM(price_cents), 0) FROM cart_items WHERE cart_id = $1),
		     updated_at = NOW()
		 WHERE id = $1`, cartID)
	return err
}

func loadCart(ctx context.Context, q querier, learnerID int) (*model.Cart, error) {
	c := &model.Cart{}
	var paidAt *time.Time
	var paymentRef *string
	err := q.QueryRow(ctx,
		`SELECT id, learner_id, total_cents, paid, paid_at, payment_ref, created_at, updated_at
		 FROM carts WHERE learner_id = $1`, learnerID,
	).Scan(&c.ID, &c.LearnerID, &c.TotalCents, &c.Paid, &paidAt, &paymentRef, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.PaidAt = paidAt
	c.PaymentRef = paymentRef

	rows, err := q.Query(ctx,
		`SELECT i.formation_id, f.title, i.price_cents, i.added_at
		 FROM cart_items i JOIN formations f ON f.id = i.formation_id
		 WHERE i.cart_id = $1 ORDER BY i.added_at`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Items = []model.CartItem{}
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.FormationID, &it.Title, &it.PriceCents, &it.AddedAt); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}
