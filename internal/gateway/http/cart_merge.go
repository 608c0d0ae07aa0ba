package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/unimarket/gateway/pkg/slogx"

	"github.com/unimarket/gateway/internal/gateway/cookies"
	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/internal/gateway/relay"
	"github.com/unimarket/gateway/internal/gateway/service"
)

// CartMergeRequest is the payload for POST /api/cart/merge. Items may be
// omitted, in which case the server-side guest cart is merged instead.
type CartMergeRequest struct {
	Items []domain.CartItem `json:"items"`
}

// CartMergeHandler serves POST /api/cart/merge: folds a pre-login cart
// into the authenticated user's cart right after login.
type CartMergeHandler struct {
	Relay      *relay.Client
	Jar        cookies.Jar
	GuestCarts *service.GuestCartService
}

// ServeHTTP godoc
//
//	@Summary		Merge guest cart
//	@Description	Merges pre-login cart items into the authenticated user's cart.
//	@Description	Items come from the request body, or from the server-side guest
//	@Description	cart when the body carries none. The guest cart is discarded only
//	@Description	after the backend confirms the merge.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CartMergeRequest	true	"cart items to merge"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	Response	"malformed payload"
//	@Failure		401		{object}	Response	"no credentials"
//	@Failure		503		{object}	Response	"backend unreachable"
//	@Router			/api/cart/merge [post].
func (h *CartMergeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	creds := cookies.Credentials(r)
	if creds.IsZero() {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized - Please log in")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var req CartMergeRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	guestID := cookies.GuestCartID(r)
	if len(req.Items) == 0 {
		items, err := h.GuestCarts.Get(r.Context(), guestID)
		if err != nil && !errors.Is(err, service.ErrCartNotFound) {
			slogx.FromContext(r.Context()).Error("guest cart lookup failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		req.Items = items
	}
	if req.Items == nil {
		req.Items = []domain.CartItem{}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result, err := h.Relay.DoGuarded(r.Context(), http.MethodPost, "/cart/merge", payload, creds)
	if err != nil {
		writeRelayError(r.Context(), w, err)
		return
	}

	forwardSetCookies(w, result.RefreshSetCookies)

	if result.Resp.OK() {
		// Merge confirmed: the guest cart is no longer the source of truth.
		if err := h.GuestCarts.Discard(r.Context(), guestID); err != nil {
			slogx.FromContext(r.Context()).Warn("guest cart discard failed", "error", err)
		}
		h.Jar.ClearGuestCart(w)
	}

	relayBody(w, result.Resp)
}
