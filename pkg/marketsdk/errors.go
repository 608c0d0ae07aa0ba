package marketsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors callers branch on.
var (
	// ErrNotAuthenticated is returned when the gateway answers 401: there is
	// no session, or the refresh cycle could not restore one.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrGatewayUnreachable is returned when the gateway itself cannot be
	// reached, or when it reports the marketplace backend down (503).
	ErrGatewayUnreachable = errors.New("gateway unreachable")
)

// APIError is a non-2xx gateway response with its status and message intact.
// 401 and 503 responses additionally match the sentinel errors via Unwrap, so
// errors.Is(err, ErrNotAuthenticated) works on any returned error.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the taxonomy statuses onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrNotAuthenticated
	case http.StatusServiceUnavailable:
		return ErrGatewayUnreachable
	}
	return nil
}

// parseErrorResponse builds a typed error from a non-2xx gateway reply.
// Returns nil for 2xx.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)

	msg := envelope.Message
	if msg == "" {
		msg = envelope.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
