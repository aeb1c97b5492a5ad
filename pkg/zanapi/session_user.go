package zanapi

import (
	"context"
	"net/http"
)

// GetProfile returns the profile of the token's owner.
func (s *Session) GetProfile(ctx context.Context) (*User, error) {
	var resp ProfileResponse
	if err := s.do(ctx, http.MethodGet, "/user/profile", nil, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// UpdateProfile changes the username and email of the token's owner and
// returns the stored profile.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var resp ProfileResponse
	if err := s.do(ctx, http.MethodPut, "/user/profile", req, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// ChangePassword replaces the password of the token's owner.
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	var resp Status
	return s.do(ctx, http.MethodPost, "/user/change-password", req, &resp)
}
