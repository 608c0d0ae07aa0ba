package domain

// CredentialPair holds the opaque bearer tokens issued by the marketplace
// backend. The gateway stores them exclusively in HTTP-only cookies and
// forwards them verbatim; it never interprets their contents beyond a
// best-effort expiry hint.
type CredentialPair struct {
	AccessToken  string
	RefreshToken string
}

// HasAccess reports whether an access token is present.
func (c CredentialPair) HasAccess() bool { return c.AccessToken != "" }

// HasRefresh reports whether a refresh token is present.
func (c CredentialPair) HasRefresh() bool { return c.RefreshToken != "" }

// IsZero reports whether neither token is present.
func (c CredentialPair) IsZero() bool { return !c.HasAccess() && !c.HasRefresh() }

// Merge overlays non-empty tokens from other onto c. Used when a refresh
// response rotates only part of the pair.
func (c CredentialPair) Merge(other CredentialPair) CredentialPair {
	if other.AccessToken != "" {
		c.AccessToken = other.AccessToken
	}
	if other.RefreshToken != "" {
		c.RefreshToken = other.RefreshToken
	}
	return c
}
