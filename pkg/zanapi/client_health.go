package zanapi

import (
	"context"
	"net/http"
)

// Health checks that the backend is alive.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", "", nil, &health); err != nil {
		return nil, err
	}

	return &health, nil
}
