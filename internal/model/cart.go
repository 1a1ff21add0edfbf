package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the single shopping cart of a learner. Once paid it is terminal:
// no mutation is accepted and no successor cart is created.
type Cart struct {
	ID         uuid.UUID  `json:"id"`
	LearnerID  int        `json:"learner_id"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	Paid       bool       `json:"paid"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	PaymentRef *string    `json:"payment_ref,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is one formation in a cart. PriceCents is captured at add-time;
// later formation price changes never touch existing carts.
type CartItem struct {
	FormationID uuid.UUID `json:"formation_id"`
	Title       string    `json:"title"`
	PriceCents  int64     `json:"price_cents"`
	AddedAt     time.Time `json:"added_at"`
}

// AddCartItemRequest is the learner payload for adding a formation to the cart.
type AddCartItemRequest struct {
	FormationID uuid.UUID `json:"formation_id" binding:"required"`
}
