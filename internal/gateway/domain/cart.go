package domain

import (
	"time"

	"github.com/unimarket/gateway/pkg/idx"
)

// CartItem is a single line item in a cart, either held server-side for a
// guest or submitted for merging into a logged-in user's backend cart.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GuestCart is a pre-login cart held by the gateway, keyed by the guest_cart_id
// cookie. Merged into the backend cart on login and then deleted.
type GuestCart struct {
	ID        idx.ID
	Items     []CartItem
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the cart has passed its retention deadline.
func (g GuestCart) Expired(now time.Time) bool {
	return !g.ExpiresAt.IsZero() && now.After(g.ExpiresAt)
}
