package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unimarket/gateway/pkg/httpx"
	"github.com/unimarket/gateway/pkg/slogx"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/service"
)

// GuestCartResponse carries a guest cart's line items.
type GuestCartResponse struct {
	Success bool              `json:"success"`
	Items   []domain.CartItem `json:"items"`
}

// GuestCartRequest is the payload for PUT /api/cart/guest.
type GuestCartRequest struct {
	Items []domain.CartItem `json:"items"`
}

// GuestCartHandler serves the pre-login cart endpoints. The cart lives
// server-side keyed by the guest_cart_id cookie, so an anonymous browser
// keeps its cart across tabs and restarts.
type GuestCartHandler struct {
	Jar        cookies.Jar
	GuestCarts *service.GuestCartService
}

// HandleGet godoc
//
//	@Summary		Read guest cart
//	@Description	Returns the pre-login cart for the guest_cart_id cookie.
//	@Description	An unknown or missing id yields an empty cart, not an error.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	GuestCartResponse
//	@Router			/api/cart/guest [get].
func (h *GuestCartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	items, err := h.GuestCarts.Get(r.Context(), cookies.GuestCartID(r))
	if err != nil {
		if !errors.Is(err, service.ErrCartNotFound) {
			slogx.FromContext(r.Context()).Error("guest cart lookup failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		items = []domain.CartItem{}
	}

	httpx.WriteJSON(w, http.StatusOK, GuestCartResponse{Success: true, Items: items})
}

// HandlePut godoc
//
//	@Summary		Replace guest cart
//	@Description	Replaces the pre-login cart's items. First write for a browser
//	@Description	issues a guest_cart_id cookie.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GuestCartRequest	true	"cart items"
//	@Success		200		{object}	GuestCartResponse
//	@Failure		400		{object}	Response	"malformed payload"
//	@Router			/api/cart/guest [put].
func (h *GuestCartHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req GuestCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.GuestCarts.Save(r.Context(), cookies.GuestCartID(r), req.Items)
	if err != nil {
		slogx.FromContext(r.Context()).Error("guest cart save failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Jar.SetGuestCart(w, id)
	items := req.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, GuestCartResponse{Success: true, Items: items})
}
