package httpx

import "context"

type ctxKey string

const (
	CtxKeyUser ctxKey = "user"
)

// ContextWithUser records the authenticated username so per-user
// middleware (rate limiting, logging) can key on it.
func ContextWithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, CtxKeyUser, username)
}

// UserFromContext returns the username stored by ContextWithUser.
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUser).(string); ok {
		return v
	}
	return ""
}
