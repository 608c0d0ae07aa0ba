package service

import (
	"context"
	"errors"
	"time"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/store"
	"github.com/unimarket/gateway/pkg/idx"
)

// DefaultGuestCartTTL is how long a pre-login cart is retained without
// activity before housekeeping removes it.
const DefaultGuestCartTTL = 30 * 24 * time.Hour

// ErrCartNotFound is returned when no guest cart exists for the given id.
var ErrCartNotFound = errors.New("guest cart not found")

// GuestCartService holds pre-login carts server-side, keyed by the
// guest_cart_id cookie. It owns id issuance and retention.
type GuestCartService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *GuestCartService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultGuestCartTTL
	}
	return s.TTL
}

// Save stores the cart's line items. A zero id means a new guest; a fresh
// ULID is issued and returned so the handler can set the cookie.
func (s *GuestCartService) Save(
	ctx context.Context,
	id idx.ID,
	items []domain.CartItem,
) (idx.ID, error) {
	if id.IsZero() {
		id = idx.New()
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	now := time.Now()
	err := s.Store.GuestCarts().Upsert(ctx, domain.GuestCart{
		ID:        id,
		Items:     items,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	})
	if err != nil {
		return idx.Zero, err
	}
	return id, nil
}

// Get returns the cart's line items, or ErrCartNotFound.
func (s *GuestCartService) Get(ctx context.Context, id idx.ID) ([]domain.CartItem, error) {
	if id.IsZero() {
		return nil, ErrCartNotFound
	}

	cart, err := s.Store.GuestCarts().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart.Items, nil
}

// Discard removes the cart after a successful merge. Absent carts are fine.
func (s *GuestCartService) Discard(ctx context.Context, id idx.ID) error {
	if id.IsZero() {
		return nil
	}
	return s.Store.GuestCarts().Delete(ctx, id)
}
