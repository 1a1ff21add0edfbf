package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formaplace/formaplace-backend/internal/model"
	"github.com/formaplace/formaplace-backend/internal/repository"
)

// fakeCartStore reproduces the repository's contract in memory: price
// captured at add-time, idempotent add, terminal paid carts.
type fakeCartStore struct {
	carts map[int]*model.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[int]*model.Cart{}}
}

func (f *fakeCartStore) GetByLearner(_ context.Context, learnerID int) (*model.Cart, error) {
	cart, ok := f.carts[learnerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cart, nil
}

func (f *fakeCartStore) AddItem(_ context.Context, learnerID int, formationID uuid.UUID, priceCents int64) (*model.Cart, bool, error) {
	cart, ok := f.carts[learnerID]
	if !ok {
		cart = &model.Cart{ID: uuid.New(), LearnerID: learnerID}
		f.carts[learnerID] = cart
	}
	if cart.Paid {
		return nil, false, repository.ErrCartPaid
	}
	for _, item := range cart.Items {
		if item.FormationID == formationID {
			return cart, true, nil
		}
	}
	cart.Items = append(cart.Items, model.CartItem{FormationID: formationID, PriceCents: priceCents, AddedAt: time.Now()})
	cart.TotalCents += priceCents
	return cart, false, nil
}

func (f *fakeCartStore) RemoveItem(_ context.Context, learnerID int, formationID uuid.UUID) (*model.Cart, error) {
	cart, ok := f.carts[learnerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if cart.Paid {
		return nil, repository.ErrCartPaid
	}
	for i, item := range cart.Items {
		if item.FormationID == formationID {
			cart.TotalCents -= item.PriceCents
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return cart, nil
		}
	}
	return nil, repository.ErrCartItemNotFound
}

func (f *fakeCartStore) Checkout(_ context.Context, learnerID int, paymentRef string) (*model.Cart, error) {
	cart, ok := f.carts[learnerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if cart.Paid {
		return nil, repository.ErrCartPaid
	}
	if len(cart.Items) == 0 {
		return nil, repository.ErrCartEmpty
	}
	now := time.Now()
	cart.Paid = true
	cart.PaidAt = &now
	cart.PaymentRef = &paymentRef
	return cart, nil
}

type fakeFormationGetter struct {
	formations map[uuid.UUID]*model.Formation
}

func (f *fakeFormationGetter) GetByID(_ context.Context, id uuid.UUID) (*model.Formation, error) {
	formation, ok := f.formations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return formation, nil
}

// fakeMailer records receipts and can be told to fail.
type fakeMailer struct {
	receipts int
	welcomes int
	fail     bool
}

func (f *fakeMailer) SendWelcome(context.Context, string, string, string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.welcomes++
	return nil
}

func (f *fakeMailer) SendActivation(context.Context, string, string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (f *fakeMailer) SendRefusal(context.Context, string, string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (f *fakeMailer) SendReceipt(context.Context, string, string, string, int64) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.receipts++
	return nil
}

func publishedFormation(price int64) *model.Formation {
	return &model.Formation{
		ID:             uuid.New(),
		Title:          "Go avancé",
		PriceCents:     price,
		ExpertApproved: true,
		AdminApproved:  true,
	}
}

func newCartServiceFixture(formations ...*model.Formation) (*CartService, *fakeCartStore, *fakeMailer) {
	getter := &fakeFormationGetter{formations: map[uuid.UUID]*model.Formation{}}
	for _, f := range formations {
		getter.formations[f.ID] = f
	}
	store := newFakeCartStore()
	mailer := &fakeMailer{}
	return NewCartService(store, getter, mailer), store, mailer
}

func TestGetCartBeforeFirstAdd(t *testing.T) {
	s, _, _ := newCartServiceFixture()

	// The cart is created lazily on the first add; until then there is
	// nothing to return.
	_, err := s.Get(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddItemUnpublishedRejected(t *testing.T) {
	f := publishedFormation(1000)
	f.AdminApproved = false
	s, _, _ := newCartServiceFixture(f)

	_, _, err := s.AddItem(context.Background(), 1, f.ID)
	assert.ErrorIs(t, err, ErrNotPublished)
}

func TestAddItemUnknownFormation(t *testing.T) {
	s, _, _ := newCartServiceFixture()

	_, _, err := s.AddItem(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddItemIdempotent(t *testing.T) {
	f := publishedFormation(2500)
	s, _, _ := newCartServiceFixture(f)

	cart, already, err := s.AddItem(context.Background(), 1, f.ID)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, int64(2500), cart.TotalCents)

	cart, already, err = s.AddItem(context.Background(), 1, f.ID)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2500), cart.TotalCents)
}

func TestTotalIsSumOfItems(t *testing.T) {
	f1 := publishedFormation(1999)
	f2 := publishedFormation(3500)
	s, _, _ := newCartServiceFixture(f1, f2)

	_, _, err := s.AddItem(context.Background(), 1, f1.ID)
	require.NoError(t, err)
	cart, _, err := s.AddItem(context.Background(), 1, f2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5499), cart.TotalCents)

	cart, err = s.RemoveItem(context.Background(), 1, f1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), cart.TotalCents)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := publishedFormation(1000)
	s, _, _ := newCartServiceFixture(f)

	_, _, err := s.AddItem(context.Background(), 1, f.ID)
	require.NoError(t, err)
	_, err = s.RemoveItem(context.Background(), 1, f.ID)
	require.NoError(t, err)

	_, err = s.Checkout(context.Background(), 1, "a@b.fr", "Alice")
	assert.ErrorIs(t, err, repository.ErrCartEmpty)
}

func TestCheckoutMarksPaidAndSendsReceipt(t *testing.T) {
	f := publishedFormation(4999)
	s, _, mailer := newCartServiceFixture(f)

	_, _, err := s.AddItem(context.Background(), 1, f.ID)
	require.NoError(t, err)

	cart, err := s.Checkout(context.Background(), 1, "a@b.fr", "Alice")
	require.NoError(t, err)
	assert.True(t, cart.Paid)
	require.NotNil(t, cart.PaymentRef)
	assert.NotEmpty(t, *cart.PaymentRef)
	assert.Equal(t, 1, mailer.receipts)

	// Paid cart is terminal.
	_, _, err = s.AddItem(context.Background(), 1, f.ID)
	assert.ErrorIs(t, err, repository.ErrCartPaid)
	_, err = s.Checkout(context.Background(), 1, "a@b.fr", "Alice")
	assert.ErrorIs(t, err, repository.ErrCartPaid)
}

func TestCheckoutMailFailureKeepsPayment(t *testing.T) {
	f := publishedFormation(1500)
	s, store, mailer := newCartServiceFixture(f)

	_, _, err := s.AddItem(context.Background(), 1, f.ID)
	require.NoError(t, err)

	mailer.fail = true
	cart, err := s.Checkout(context.Background(), 1, "a@b.fr", "Alice")
	assert.Error(t, err)
	require.NotNil(t, cart)
	assert.True(t, cart.Paid)
	assert.True(t, store.carts[1].Paid, "payment must survive a mail failure")
}

func TestPriceCapturedAtAddTime(t *testing.T) {
	f := publishedFormation(1000)
	s, _, _ := newCartServiceFixture(f)

	cart, _, err := s.AddItem(context.Background(), 1, f.ID)
	require.NoError(t, err)

	// A later price change must not touch the cart.
	f.PriceCents = 9900
	cart, err = s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), cart.TotalCents)
}
