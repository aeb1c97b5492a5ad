package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

const (
	MsgLoginFailed       = "Username or password incorrect"
	MsgPasswordsMismatch = "Passwords do not match"
	MsgRegistered        = "Account created! Please login"
	MsgRegisterFailed    = "Registration failed. Try again."
	MsgResetRequested    = "If an account exists for that email, a reset link has been sent."
	MsgEmailRequired     = "Email is required"
)

var ErrLoginRejected = errors.New("login rejected")

// AuthService drives the account screens that work without a session.
type AuthService struct {
	API      *zanapi.Client
	Sessions *session.Manager
}

type LoginInput struct {
	Username string
	Password string
}

// Login authenticates against the backend and starts a session.
func (s *AuthService) Login(ctx context.Context, w http.ResponseWriter, in LoginInput) (*session.Session, error) {
	resp, err := s.API.Login(ctx, zanapi.LoginRequest{
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &zanapi.APIError{StatusCode: http.StatusOK, Message: MsgLoginFailed, Err: ErrLoginRejected}
	}

	return s.Sessions.Begin(ctx, w, resp.User, resp.Token)
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string `validate:"eqfield=Password"`
}

// Register creates an account. Mismatched passwords never reach the backend.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if err := checkInput(in, map[string]string{"eqfield": MsgPasswordsMismatch}); err != nil {
		return err
	}

	_, err := s.API.Register(ctx, zanapi.RegisterRequest{
		Username:        strings.TrimSpace(in.Username),
		Email:           strings.TrimSpace(in.Email),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	return err
}

type ForgotPasswordInput struct {
	Email string `validate:"required"`
}

// ForgotPassword requests a reset link. Whatever the backend answers, the
// caller only learns whether the backend could be reached, so the screen
// cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	in.Email = strings.TrimSpace(in.Email)
	if err := checkInput(in, map[string]string{"required": MsgEmailRequired}); err != nil {
		return err
	}

	_, err := s.API.ForgotPassword(ctx, in.Email)
	if errors.Is(err, zanapi.ErrNetwork) {
		return err
	}
	if err != nil {
		slogx.FromContext(ctx).Info("forgot-password rejected by backend", "err", err)
	}
	return nil
}

// Logout tells the backend best-effort and ends the local session.
func (s *AuthService) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if sess, err := s.Sessions.Resolve(r); err == nil {
		if err := s.API.WithToken(sess.Token).Logout(ctx); err != nil {
			slogx.FromContext(ctx).Warn("backend logout failed", "err", err)
		}
	}
	return s.Sessions.End(ctx, w, r)
}
