package marketsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the gateway is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the gateway and its dependencies are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
