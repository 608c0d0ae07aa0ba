package relay

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway refreshes slightly ahead of the deadline so a token that
// expires mid-flight doesn't cost a guaranteed 401 round trip.
const expiryLeeway = 30 * time.Second

// accessTokenExpired reports whether an access token is known to be past its
// exp claim. Tokens are opaque to the relay by contract, so this is a
// best-effort hint: anything that doesn't parse as a JWT with an exp claim
// reports false and validity stays delegated to the backend. The signature is
// deliberately not verified; a forged exp only costs an extra refresh.
func accessTokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return now.Add(expiryLeeway).After(exp.Time)
}
