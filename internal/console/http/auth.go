package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// AuthHandler serves the screens that work without a session.
type AuthHandler struct {
	AuthService *service.AuthService
	Sessions    *session.Manager
	views       *renderer
}

type loginData struct {
	Username string
	Next     string
}

type registerData struct {
	Username string
	Email    string
}

type forgotData struct {
	Email string
}

// HandleLoginForm handles GET /login. An operator who is already signed in
// is sent on to the dashboard.
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if _, err := h.Sessions.Resolve(r); err == nil {
		httpx.Redirect(w, r, next)
		return
	}

	h.views.render(w, r, http.StatusOK, "login.html", page{
		Title: "Login",
		Data:  loginData{Next: next},
	})
}

// HandleLogin handles POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	in := service.LoginInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	next := safeNext(r.PostFormValue("next"))

	if _, err := h.AuthService.Login(ctx, w, in); err != nil {
		log.Info("login failed", "username", strings.TrimSpace(in.Username), "err", err)

		status := http.StatusUnauthorized
		if errors.Is(err, zanapi.ErrNetwork) {
			status = http.StatusBadGateway
		}
		h.views.render(w, r, status, "login.html", page{
			Title: "Login",
			Error: messageFor(err, service.MsgLoginFailed),
			Data:  loginData{Username: in.Username, Next: next},
		})
		return
	}

	httpx.Redirect(w, r, next)
}

// rejectLogin renders the login page when an address has made too many attempts.
func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, retryAfter int) {
	h.views.render(w, r, http.StatusTooManyRequests, "login.html", page{
		Title: "Login",
		Error: fmt.Sprintf("Too many login attempts. Try again in %d seconds.", retryAfter),
		Data: loginData{
			Username: r.PostFormValue("username"),
			Next:     safeNext(r.PostFormValue("next")),
		},
	})
}

// HandleRegisterForm handles GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.views.render(w, r, http.StatusOK, "register.html", page{
		Title: "Register",
		Data:  registerData{},
	})
}

// HandleRegister handles POST /register. On success the login page is
// shown with a confirmation.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in := service.RegisterInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := h.AuthService.Register(ctx, in); err != nil {
		slogx.FromContext(ctx).Info("registration failed", "username", in.Username, "err", err)
		h.views.render(w, r, statusFor(err), "register.html", page{
			Title: "Register",
			Error: messageFor(err, service.MsgRegisterFailed),
			Data:  registerData{Username: in.Username, Email: in.Email},
		})
		return
	}

	h.views.render(w, r, http.StatusOK, "login.html", page{
		Title:  "Login",
		Notice: service.MsgRegistered,
		Data:   loginData{Username: strings.TrimSpace(in.Username), Next: "/"},
	})
}

// HandleForgotForm handles GET /forgot-password
func (h *AuthHandler) HandleForgotForm(w http.ResponseWriter, r *http.Request) {
	h.views.render(w, r, http.StatusOK, "forgot_password.html", page{
		Title: "Forgot Password",
		Data:  forgotData{},
	})
}

// HandleForgot handles POST /forgot-password. Any backend answer yields
// the same confirmation.
func (h *AuthHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	in := service.ForgotPasswordInput{Email: r.PostFormValue("email")}

	if err := h.AuthService.ForgotPassword(r.Context(), in); err != nil {
		h.views.render(w, r, statusFor(err), "forgot_password.html", page{
			Title: "Forgot Password",
			Error: messageFor(err, zanapi.NetworkMessage),
			Data:  forgotData{Email: in.Email},
		})
		return
	}

	h.views.render(w, r, http.StatusOK, "forgot_password.html", page{
		Title:  "Forgot Password",
		Notice: service.MsgResetRequested,
		Data:   forgotData{},
	})
}

// HandleLogout handles POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), w, r); err != nil {
		slogx.FromContext(r.Context()).Error("failed to end session", "err", err)
	}
	httpx.Redirect(w, r, "/login")
}

// safeNext keeps post-login redirects on this site. Anything but a local
// absolute path becomes "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
