package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/internal/console/store/drivers/sqlite"
	"github.com/zancompute/zanconfig/pkg/cryptox"
	"github.com/zancompute/zanconfig/pkg/jwtx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// backend is a fake ZanConfig API that counts the calls it receives.
type backend struct {
	*httptest.Server
	mux *http.ServeMux

	mu    sync.Mutex
	calls map[string]int
	auth  map[string]string
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{mux: http.NewServeMux(), calls: map[string]int{}, auth: map[string]string{}}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.calls[key]++
		b.auth[key] = r.Header.Get("Authorization")
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *backend) handle(pattern string, status int, body any) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *backend) authHeader(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth[key]
}

func (b *backend) client() *zanapi.Client {
	return zanapi.NewClient(b.URL)
}

func newSessions(t *testing.T) (*session.Manager, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, err := cryptox.DeriveKey([]byte("0123456789abcdef0123456789abcdef"), cryptox.PurposeTokenSealing, 32)
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer(key)
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	return session.NewManager(session.Config{
		Store:    st,
		Sealer:   sealer,
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, session.Issuer, []string{session.Issuer}),
		TTL:      time.Hour,
	}), st
}

func testSession() *session.Session {
	return &session.Session{
		ID:        "sid",
		User:      zanapi.User{ID: 1, Username: "ops", Email: "ops@example.com"},
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func cookieRequest(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}
