// Package store defines the persistence interface for gateway-held state.
// The only state this layer owns is the pre-login guest cart; sessions are
// deliberately not stored (validity is delegated to the backend on every
// check).
package store

import (
	"context"
	"errors"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/pkg/idx"
)

// ErrNotFound is returned when a guest cart does not exist or has expired.
var ErrNotFound = errors.New("store: not found")

// Store is the top-level persistence interface.
type Store interface {
	GuestCarts() GuestCarts

	Ping(ctx context.Context) error
	Close() error
}

// GuestCarts persists pre-login carts keyed by the guest_cart_id cookie.
type GuestCarts interface {
	// Upsert creates or replaces the cart's line items, resetting its
	// retention deadline.
	Upsert(ctx context.Context, cart domain.GuestCart) error

	// Get returns the cart, or ErrNotFound when absent.
	Get(ctx context.Context, id idx.ID) (domain.GuestCart, error)

	// Delete removes the cart. Deleting an absent cart is not an error.
	Delete(ctx context.Context, id idx.ID) error

	// DeleteExpired removes carts past their retention deadline and reports
	// how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
