package marketsdk

// User is the authenticated user's profile as the gateway relays it.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// CartItem is a single cart line.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthResponse is the gateway's reply to login, signup, and profile reads.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// SessionStatus is the reply to GET /api/auth/session.
type SessionStatus struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}

// GuestCartResponse is the reply to the guest cart endpoints.
type GuestCartResponse struct {
	Success bool       `json:"success"`
	Items   []CartItem `json:"items"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
// Used in the /readyz endpoint to indicate the status of each component.
type HealthChecks struct {
	// Database indicates the guest cart database status
	Database string `json:"database"`

	// Backend indicates marketplace backend reachability
	Backend string `json:"backend"`
}
