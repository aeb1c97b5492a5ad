package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/zancompute/zanconfig/pkg/slogx"
)

// Authenticator resolves the caller of a request. On success it returns the
// request context enriched with whatever the downstream handlers need.
type Authenticator interface {
	Authenticate(r *http.Request) (context.Context, error)
}

// AuthenticatorFunc adapts a plain function to an Authenticator.
type AuthenticatorFunc func(r *http.Request) (context.Context, error)

func (f AuthenticatorFunc) Authenticate(r *http.Request) (context.Context, error) { return f(r) }

// AuthnMiddleware guards a handler behind an Authenticator. Browsers are
// sent to loginPath with a 303; JSON callers get a bare 401.
func AuthnMiddleware(a Authenticator, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("unauthenticated request", "err", err)

				if WantsJSON(r) {
					WriteJSON(w, http.StatusUnauthorized, map[string]string{
						"error": "unauthorized",
					})
					return
				}

				target := loginPath
				if r.Method == http.MethodGet && r.URL.Path != "/" {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				Redirect(w, r, target)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WantsJSON reports whether the caller asked for a JSON response, either
// explicitly through Accept or implicitly by hitting an /api/ path.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
