package service

import (
	"context"
	"strings"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

const (
	MsgProfileLoadFailed   = "Failed to load profile"
	MsgProfileUpdated      = "Profile updated successfully"
	MsgProfileUpdateFailed = "Failed to update profile"

	MsgAllFieldsRequired   = "All fields are required"
	MsgNewPasswordMismatch = "New password and confirmation do not match"
	MsgPasswordTooShort    = "New password must be at least 6 characters"
	MsgPasswordChanged     = "Password changed successfully"
	MsgPasswordFailed      = "Failed to change password"
)

type ProfileService struct {
	API      *zanapi.Client
	Sessions *session.Manager
}

// Load fetches the operator's profile from the backend.
func (s *ProfileService) Load(ctx context.Context, sess *session.Session) (*zanapi.User, error) {
	return s.API.WithToken(sess.Token).GetProfile(ctx)
}

type ProfileInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
}

var profileMessages = map[string]string{
	"Username.required": "Username is required",
	"Email.required":    "Email is required",
	"Email.email":       "Enter a valid email address",
}

// Update saves the profile and refreshes the user cached in the session.
func (s *ProfileService) Update(ctx context.Context, sess *session.Session, in ProfileInput) (*zanapi.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := checkInput(in, profileMessages); err != nil {
		return nil, err
	}

	user, err := s.API.WithToken(sess.Token).UpdateProfile(ctx, zanapi.UpdateProfileRequest{
		Username: in.Username,
		Email:    in.Email,
	})
	if err != nil {
		return nil, err
	}

	// The backend may answer without echoing the user.
	if user.Username == "" {
		user.Username, user.Email = in.Username, in.Email
	}
	if err := s.Sessions.UpdateUser(ctx, sess, *user); err != nil {
		slogx.FromContext(ctx).Error("failed to refresh session user", "err", err)
	}
	return user, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

var changePasswordMessages = map[string]string{
	"required": MsgAllFieldsRequired,
	"eqfield":  MsgNewPasswordMismatch,
	"min":      MsgPasswordTooShort,
}

// ChangePassword checks the three fields locally, in the order required,
// match, length, then submits.
func (s *ProfileService) ChangePassword(ctx context.Context, sess *session.Session, in ChangePasswordInput) error {
	if err := checkInput(in, changePasswordMessages, "required", "eqfield", "min"); err != nil {
		return err
	}

	return s.API.WithToken(sess.Token).ChangePassword(ctx, zanapi.ChangePasswordRequest{
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
	})
}
