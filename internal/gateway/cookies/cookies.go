// Package cookies owns the credential cookie wire format shared by every
// relay handler: names, lifetimes, scoping attributes, and the translation
// between cookies and the Cookie header forwarded to the backend.
package cookies

import (
	"net/http"
	"strings"

	"github.com/unimarket/gateway/internal/gateway/domain"
	"github.com/unimarket/gateway/pkg/idx"
)

// Cookie names.
const (
	AccessTokenName  = "access_token"
	RefreshTokenName = "refresh_token"
	GuestCartName    = "guest_cart_id"
)

// Cookie lifetimes in seconds. Access and refresh lifetimes mirror the
// backend's token TTLs (45 minutes / 7 days).
const (
	AccessTokenMaxAge  = 45 * 60
	RefreshTokenMaxAge = 7 * 24 * 60 * 60
	GuestCartMaxAge    = 30 * 24 * 60 * 60
)

// Jar issues and clears the gateway's cookies with consistent attributes:
// HttpOnly, Path=/, SameSite=Lax, and Secure outside dev. Configured once at
// startup from the environment flag, never re-read per call.
type Jar struct {
	Secure bool
}

// Get returns the named cookie value, or "" when absent. Absence is a normal
// state, not an error.
func Get(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// Credentials reads the credential pair off an incoming request.
func Credentials(r *http.Request) domain.CredentialPair {
	return domain.CredentialPair{
		AccessToken:  Get(r, AccessTokenName),
		RefreshToken: Get(r, RefreshTokenName),
	}
}

// GuestCartID returns the guest cart id cookie as a validated ULID, or the
// zero ID when absent or malformed.
func GuestCartID(r *http.Request) idx.ID {
	id, err := idx.Parse(Get(r, GuestCartName))
	if err != nil {
		return idx.Zero
	}
	return id
}

// SetCredentials writes both credential cookies with their standard
// lifetimes. Used when the gateway itself materialises tokens (OAuth callback
// query shape); login and refresh normally relay the backend's Set-Cookie
// headers instead.
func (j Jar) SetCredentials(w http.ResponseWriter, pair domain.CredentialPair) {
	j.set(w, AccessTokenName, pair.AccessToken, AccessTokenMaxAge)
	j.set(w, RefreshTokenName, pair.RefreshToken, RefreshTokenMaxAge)
}

// SetGuestCart writes the guest cart id cookie.
func (j Jar) SetGuestCart(w http.ResponseWriter, id idx.ID) {
	j.set(w, GuestCartName, id.String(), GuestCartMaxAge)
}

// ClearCredentials wipes both credential cookies. Always safe to call; the
// wire result is Max-Age=0 regardless of whether the cookies were present.
func (j Jar) ClearCredentials(w http.ResponseWriter) {
	j.Clear(w, AccessTokenName)
	j.Clear(w, RefreshTokenName)
}

// ClearGuestCart wipes the guest cart id cookie.
func (j Jar) ClearGuestCart(w http.ResponseWriter) {
	j.Clear(w, GuestCartName)
}

// Clear wipes the named cookie. A negative MaxAge serialises as Max-Age=0.
func (j Jar) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j Jar) set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   j.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Header builds the Cookie header forwarded to the backend from the available
// token values. Returns "" when no token is present.
func Header(pair domain.CredentialPair) string {
	parts := make([]string, 0, 2)
	if pair.HasAccess() {
		parts = append(parts, AccessTokenName+"="+pair.AccessToken)
	}
	if pair.HasRefresh() {
		parts = append(parts, RefreshTokenName+"="+pair.RefreshToken)
	}
	return strings.Join(parts, "; ")
}

// Rotated extracts a credential pair from a backend response's Set-Cookie
// headers. Tokens the response did not rotate come back empty; callers
// overlay the result onto the previous pair.
func Rotated(h http.Header) domain.CredentialPair {
	resp := http.Response{Header: h}

	var pair domain.CredentialPair
	for _, c := range resp.Cookies() {
		switch c.Name {
		case AccessTokenName:
			pair.AccessToken = c.Value
		case RefreshTokenName:
			pair.RefreshToken = c.Value
		}
	}
	return pair
}
