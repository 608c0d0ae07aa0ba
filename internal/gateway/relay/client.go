// Package relay implements the gateway's side of the session protocol: a
// proxy client that forwards requests to the marketplace backend with the
// browser's credential cookies attached, and a guarded-call helper that runs
// the refresh-and-retry cycle once for every authenticated operation.
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds each backend round trip so a hung upstream cannot
// stall the relay indefinitely.
const DefaultTimeout = 10 * time.Second

// Client issues HTTP calls to the marketplace backend. The base URL is
// injected once at startup.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend proxy client. A non-positive timeout falls back
// to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ForwardOptions carries the optional parts of a forwarded request. At most
// one of JSONBody and FormBody may be set.
type ForwardOptions struct {
	// CookieHeader is forwarded verbatim as the Cookie header when non-empty.
	CookieHeader string
	// JSONBody is sent as-is with Content-Type application/json.
	JSONBody []byte
	// FormBody is encoded with Content-Type application/x-www-form-urlencoded.
	FormBody url.Values
}

// BackendResponse is a fully-read backend reply.
type BackendResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports whether the response carries a 2xx status.
func (r *BackendResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Forward issues a single request to the backend and reads the reply in
// full. Connection failures and timeouts both surface as
// ErrBackendUnreachable; the wrapped cause distinguishes them in logs.
func (c *Client) Forward(
	ctx context.Context,
	method, path string,
	opts ForwardOptions,
) (*BackendResponse, error) {
	var body io.Reader
	contentType := ""
	switch {
	case opts.JSONBody != nil:
		body = bytes.NewReader(opts.JSONBody)
		contentType = "application/json"
	case opts.FormBody != nil:
		body = strings.NewReader(opts.FormBody.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.CookieHeader != "" {
		req.Header.Set("Cookie", opts.CookieHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, fmt.Errorf("%w: backend call timed out: %v", ErrBackendUnreachable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading backend response: %v", ErrBackendUnreachable, err)
	}

	return &BackendResponse{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   respBody,
	}, nil
}
