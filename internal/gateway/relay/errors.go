package relay

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated covers every terminal credential failure: no tokens
	// present, backend-rejected tokens, and an exhausted refresh-and-retry
	// cycle. The caller must log in again.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrBackendUnreachable reports that the marketplace backend could not be
	// reached (connection failure or timeout). Surfaced as 503, never
	// silently retried.
	ErrBackendUnreachable = errors.New("backend unreachable")
)

// UpstreamError carries a backend-reported failure unrelated to auth. The
// relay passes its status and message through verbatim.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Status, e.Message)
}
