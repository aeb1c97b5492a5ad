package http

import (
	"net/http"

	"github.com/zancompute/zanconfig/internal/console/service"
	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/slogx"
)

// AccountHandler serves the signed-in operator's own account pages.
type AccountHandler struct {
	ProfileService *service.ProfileService
	views          *renderer
}

type profileData struct {
	Username string
	Email    string
}

// HandleProfile handles GET /profile
func (h *AccountHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session.FromContext(ctx)

	p := page{Title: "Profile", Nav: "profile"}

	user, err := h.ProfileService.Load(ctx, sess)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load profile", "err", err)
		p.Error = messageFor(err, service.MsgProfileLoadFailed)
		p.Data = profileData{Username: sess.User.Username, Email: sess.User.Email}
		h.views.render(w, r, statusFor(err), "profile.html", p)
		return
	}

	p.Data = profileData{Username: user.Username, Email: user.Email}
	h.views.render(w, r, http.StatusOK, "profile.html", p)
}

// HandleProfileUpdate handles POST /profile
func (h *AccountHandler) HandleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session.FromContext(ctx)

	in := service.ProfileInput{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}

	user, err := h.ProfileService.Update(ctx, sess, in)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to update profile", "err", err)
		h.views.render(w, r, statusFor(err), "profile.html", page{
			Title: "Profile",
			Nav:   "profile",
			Error: messageFor(err, service.MsgProfileUpdateFailed),
			Data:  profileData{Username: in.Username, Email: in.Email},
		})
		return
	}

	h.views.render(w, r, http.StatusOK, "profile.html", page{
		Title:  "Profile",
		Nav:    "profile",
		Notice: service.MsgProfileUpdated,
		Data:   profileData{Username: user.Username, Email: user.Email},
	})
}

// HandleChangePasswordForm handles GET /change-password
func (h *AccountHandler) HandleChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	h.views.render(w, r, http.StatusOK, "change_password.html", page{
		Title: "Change Password",
		Nav:   "password",
	})
}

// HandleChangePassword handles POST /change-password. The form is always
// re-rendered empty.
func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in := service.ChangePasswordInput{
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	p := page{Title: "Change Password", Nav: "password"}

	if err := h.ProfileService.ChangePassword(ctx, session.FromContext(ctx), in); err != nil {
		slogx.FromContext(ctx).Info("password change rejected", "err", err)
		p.Error = messageFor(err, service.MsgPasswordFailed)
		h.views.render(w, r, statusFor(err), "change_password.html", p)
		return
	}

	slogx.FromContext(ctx).Info("password changed")
	p.Notice = service.MsgPasswordChanged
	h.views.render(w, r, http.StatusOK, "change_password.html", p)
}
