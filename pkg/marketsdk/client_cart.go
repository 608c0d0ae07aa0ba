package marketsdk

import (
	"context"
	"net/http"
)

// GetGuestCart reads the pre-login cart tied to the jar's guest_cart_id
// cookie. A browser that never saved a cart gets an empty slice.
func (c *Client) GetGuestCart(ctx context.Context) ([]CartItem, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/cart/guest", nil)
	if err != nil {
		return nil, err
	}

	var cart GuestCartResponse
	if err := decodeJSON(resp, &cart); err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// SaveGuestCart replaces the pre-login cart's items. The first save issues
// a guest_cart_id cookie into the jar.
func (c *Client) SaveGuestCart(ctx context.Context, items []CartItem) error {
	payload := struct {
		Items []CartItem `json:"items"`
	}{Items: items}

	resp, err := c.doJSON(ctx, http.MethodPut, "/api/cart/guest", payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// MergeCart folds pre-login items into the authenticated user's cart.
// Pass nil to merge the server-side guest cart; the gateway discards it
// once the backend confirms.
func (c *Client) MergeCart(ctx context.Context, items []CartItem) error {
	payload := struct {
		Items []CartItem `json:"items"`
	}{Items: items}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/cart/merge", payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}
