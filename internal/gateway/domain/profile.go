package domain

// Profile is the user record returned by the backend's /auth/me and
// /auth/verify endpoints. Read-only to the gateway; it is forwarded, never
// mutated.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
}
