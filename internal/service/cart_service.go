package service

import (
	"context"
	"fmt"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/google/uuid"
)

// CartStore is the persistence surface CartService needs. Mutations run in
// a single transaction with the cart row locked, so two concurrent requests
// on the same cart serialize instead of corrupting the total.
type CartStore interface {
	GetByLearner(ctx context.Context, learnerID int) (*model.Cart, error)
	AddItem(ctx context.Context, learnerID int, formationID uuid.UUID, priceCents int64) (cart *model.Cart, already bool, err error)
	RemoveItem(ctx context.Context, learnerID int, formationID uuid.UUID) (*model.Cart, error)
	Checkout(ctx context.Context, learnerID int, paymentRef string) (*model.Cart, error)
}

// FormationGetter resolves a formation for purchasability checks.
type FormationGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Formation, error)
}

// CartService handles the learner cart and checkout.
type CartService struct {
	store      CartStore
	formations FormationGetter
	mailer     Mailer
}

// NewCartService creates a new CartService.
func NewCartService(store CartStore, formations FormationGetter, mailer Mailer) *CartService {
	return &CartService{store: store, formations: formations, mailer: mailer}
}

// Get retrieves the learner's cart.
func (s *CartService) Get(ctx context.Context, learnerID int) (*model.Cart, error) {
	cart, err := s.store.GetByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

// AddItem puts a published formation into the learner's cart, capturing its
// price at add-time. Adding a formation already in the cart is a no-op that
// returns the unchanged cart (already=true). Unpublished formations cannot
// be purchased: ErrNotPublished.
func (s *CartService) AddItem(ctx context.Context, learnerID int, formationID uuid.UUID) (*model.Cart, bool, error) {
	formation, err := s.formations.GetByID(ctx, formationID)
	if err != nil {
		return nil, false, err
	}
	if !formation.Published() {
		return nil, false, ErrNotPublished
	}
	return s.store.AddItem(ctx, learnerID, formationID, formation.PriceCents)
}

// RemoveItem takes a formation out of the learner's cart.
func (s *CartService) RemoveItem(ctx context.Context, learnerID int, formationID uuid.UUID) (*model.Cart, error) {
	return s.store.RemoveItem(ctx, learnerID, formationID)
}

// Checkout marks the learner's non-empty cart paid with a generated payment
// reference, then mails the receipt. The payment is committed either way;
// a mail failure is reported alongside the paid cart, never rolled back.
func (s *CartService) Checkout(ctx context.Context, learnerID int, email, prenom string) (*model.Cart, error) {
	paymentRef := uuid.NewString()
	cart, err := s.store.Checkout(ctx, learnerID, paymentRef)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendReceipt(ctx, email, prenom, paymentRef, cart.TotalCents); err != nil {
		return cart, fmt.Errorf("receipt mail: %w", err)
	}
	return cart, nil
}
