// Package session keeps an operator's backend token on the server side.
//
// A browser holds only a signed cookie naming a session row; the row holds
// the operator's profile and the backend bearer token sealed with AES-GCM.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zancompute/zanconfig/internal/console/domain"
	"github.com/zancompute/zanconfig/internal/console/store"
	"github.com/zancompute/zanconfig/pkg/cryptox"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/idx"
	"github.com/zancompute/zanconfig/pkg/jwtx"
	"github.com/zancompute/zanconfig/pkg/slogx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

const (
	DefaultCookieName = "zanconfig_session"
	Issuer            = "zanconfig-console"
)

var (
	ErrNoSession = errors.New("session: no session")
	ErrExpired   = errors.New("session: expired")
)

// Session is a resolved, live operator session.
type Session struct {
	ID        string
	User      zanapi.User
	Token     string
	ExpiresAt time.Time
}

// Config wires a Manager.
type Config struct {
	Store    store.Store
	Sealer   *cryptox.Sealer
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	TTL        time.Duration
	CookieName string
	Secure     bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// Manager creates, resolves and ends sessions.
type Manager struct {
	store    store.Store
	sealer   *cryptox.Sealer
	signer   jwtx.Signer
	verifier jwtx.Verifier

	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

func NewManager(cfg Config) *Manager {
	m := &Manager{
		store:    cfg.Store,
		sealer:   cfg.Sealer,
		signer:   cfg.Signer,
		verifier: cfg.Verifier,
		ttl:      cfg.TTL,
		cookie:   cfg.CookieName,
		secure:   cfg.Secure,
		now:      cfg.Now,
	}
	if m.ttl <= 0 {
		m.ttl = jwtx.DefaultSessionTTL
	}
	if m.cookie == "" {
		m.cookie = DefaultCookieName
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Begin stores a new session for user and sets the session cookie.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, user zanapi.User, token string) (*Session, error) {
	now := m.now().UTC()
	id := idx.NewAt(now).String()

	sealed, err := m.sealer.Seal([]byte(token), []byte(id))
	if err != nil {
		return nil, fmt.Errorf("seal token: %w", err)
	}

	row := domain.Session{
		ID:          id,
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		TokenSealed: sealed,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}

	// The row only survives if its cookie could be signed.
	var signed string
	err = m.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().CreateSession(ctx, row); err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		cookie, err := m.signer.Sign(jwtx.NewSessionClaims(id, user.Username, m.ttl, Issuer, []string{Issuer}, now))
		if err != nil {
			return fmt.Errorf("sign session cookie: %w", err)
		}
		signed = cookie
		return nil
	})
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    signed,
		Path:     "/",
		Expires:  row.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	slogx.FromContext(ctx).Info("session started",
		"sid", id,
		"username", user.Username,
		"token_fp", cryptox.FingerprintToken(token),
	)

	return &Session{ID: id, User: user, Token: token, ExpiresAt: row.ExpiresAt}, nil
}

// Resolve returns the live session named by the request's cookie.
func (m *Manager) Resolve(r *http.Request) (*Session, error) {
	sid, err := m.sessionID(r)
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	row, err := m.store.Sessions().GetSessionByID(ctx, sid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if row.Expired(m.now()) {
		_ = m.store.Sessions().DeleteSession(ctx, sid)
		return nil, ErrExpired
	}

	token, err := m.sealer.Open(row.TokenSealed, []byte(row.ID))
	if err != nil {
		return nil, fmt.Errorf("open token: %w", err)
	}

	return &Session{
		ID: row.ID,
		User: zanapi.User{
			ID:       row.UserID,
			Username: row.Username,
			Email:    row.Email,
		},
		Token:     string(token),
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// End deletes the request's session, if any, and clears the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer m.clearCookie(w)

	sid, err := m.sessionID(r)
	if err != nil {
		return nil
	}

	if err := m.store.Sessions().DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	slogx.FromContext(ctx).Info("session ended", "sid", sid)
	return nil
}

// UpdateUser refreshes the profile cached in s after a profile edit.
func (m *Manager) UpdateUser(ctx context.Context, s *Session, user zanapi.User) error {
	if err := m.store.Sessions().UpdateSessionUser(ctx, s.ID, user.Username, user.Email); err != nil {
		return fmt.Errorf("update session user: %w", err)
	}
	s.User.Username = user.Username
	s.User.Email = user.Email
	return nil
}

// Active counts sessions that have not expired.
func (m *Manager) Active(ctx context.Context) (int64, error) {
	return m.store.Sessions().CountActiveSessions(ctx, m.now())
}

// Authenticate implements httpx.Authenticator. The returned context carries
// the session, the username for per-user rate limiting and a logger
// tagged with the operator.
func (m *Manager) Authenticate(r *http.Request) (context.Context, error) {
	s, err := m.Resolve(r)
	if err != nil {
		return nil, err
	}

	ctx := WithContext(r.Context(), s)
	ctx = httpx.ContextWithUser(ctx, s.User.Username)
	ctx = slogx.With(ctx, "user", s.User.Username)
	return ctx, nil
}

func (m *Manager) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(m.cookie)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}

	claims, err := m.verifier.Verify(c.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	return claims.SID, nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
