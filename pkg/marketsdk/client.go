package marketsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client is a client for the UniMarket gateway. Credential cookies issued by
// the gateway are held in an in-memory jar and replayed on every call, so a
// Client behaves like a logged-in browser tab.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a gateway client with a fresh cookie jar. Each Client is
// an independent session; share one across goroutines, not across users.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
	}
}
