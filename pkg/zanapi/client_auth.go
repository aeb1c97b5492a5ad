package zanapi

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and the operator profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Register creates a new operator account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Status, error) {
	var resp Status
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ForgotPassword asks the backend to send a reset link to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Status, error) {
	var resp Status
	err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", ForgotPasswordRequest{Email: email}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Logout asks the backend to invalidate the session token. Callers treat
// it as best-effort.
func (s *Session) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
