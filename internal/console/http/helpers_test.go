package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	consolehttp "github.com/zancompute/zanconfig/internal/console/http"
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
	form  map[string]map[string]any
}

func newBackend(t *testing.T) *backend {
	t.Helper()

	b := &backend{mux: http.NewServeMux(), calls: map[string]int{}, form: map[string]map[string]any{}}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		b.mu.Lock()
		b.calls[key]++
		b.form[key] = body
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

func (b *backend) body(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form[key]
}

// withLogin registers a backend login that accepts ops/secret only.
func (b *backend) withLogin() *backend {
	b.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if b.body("POST /auth/login")["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":    true,
			"token": "tok",
			"user":  map[string]any{"id": 1, "username": "ops", "email": "ops@example.com"},
		})
	})
	b.handle("POST /auth/logout", http.StatusOK, map[string]any{"ok": true})
	return b
}

// console is a running console wired to a fake backend.
type console struct {
	*httptest.Server
	t      *testing.T
	client *http.Client
}

func newConsole(t *testing.T, b *backend) *console {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secret := []byte("0123456789abcdef0123456789abcdef")
	sealKey, err := cryptox.DeriveKey(secret, cryptox.PurposeTokenSealing, 32)
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer(sealKey)
	require.NoError(t, err)
	csrfKey, err := cryptox.DeriveKey(secret, cryptox.PurposeCSRF, 32)
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	sessions := session.NewManager(session.Config{
		Store:    st,
		Sealer:   sealer,
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, session.Issuer, []string{session.Issuer}),
		TTL:      time.Hour,
	})

	router, err := consolehttp.NewRouter(consolehttp.Options{
		CSRFKey:          csrfKey,
		DashboardRefresh: 30 * time.Second,
		BuildVersion:     "test",
	}, st, zanapi.NewClient(b.URL), sessions, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &console{
		Server: srv,
		t:      t,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type response struct {
	*http.Response
	Body string
}

func (c *console) do(req *http.Request) response {
	c.t.Helper()

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return response{Response: resp, Body: string(body)}
}

func (c *console) get(path string) response {
	c.t.Helper()

	req, err := http.NewRequest(http.MethodGet, c.URL+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

var csrfInput = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// token loads page and returns the CSRF token embedded in its forms.
func (c *console) token(page string) string {
	c.t.Helper()

	resp := c.get(page)
	m := csrfInput.FindStringSubmatch(resp.Body)
	require.NotNil(c.t, m, "no csrf field on %s (status %d)", page, resp.StatusCode)
	return m[1]
}

// post submits form to path with a CSRF token taken from page.
func (c *console) post(page, path string, form url.Values) response {
	c.t.Helper()

	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", c.token(page))

	req, err := http.NewRequest(http.MethodPost, c.URL+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *console) login() {
	c.t.Helper()

	resp := c.post("/login", "/login", url.Values{"username": {"ops"}, "password": {"secret"}})
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode, resp.Body)
	require.Equal(c.t, "/", resp.Header.Get("Location"))
}

func sampleClients() []map[string]any {
	return []map[string]any{
		{"id": 5, "clientName": "Airport", "defaultLanguage": "English", "listOfLanguage": "English,Arabic"},
		{"id": 9, "clientName": "Mall", "defaultLanguage": "English"},
		{"id": 2, "clientName": "Zoo", "defaultLanguage": "German"},
	}
}

func (b *backend) withTables() *backend {
	b.handle("GET /clients", http.StatusOK, sampleClients())
	b.handle("GET /client-details", http.StatusOK, []map[string]any{
		{"id": 11, "clientId": 5, "clientName": "Airport", "dbName": "airport_db"},
		{"id": 12, "clientId": 9, "clientName": "Mall", "dbName": "mall \"east\""},
	})
	b.handle("GET /notification-configs", http.StatusOK, []map[string]any{
		{"id": 21, "clientId": 5, "clientName": "Airport", "alert": "Email"},
	})
	return b
}

var submitAction = regexp.MustCompile(`<button type="submit" name="action" value="([^"]+)"`)

// defaultAction is the action the first submit button of body posts, which
// is what pressing Enter in a field submits.
func defaultAction(t *testing.T, body string) string {
	t.Helper()

	m := submitAction.FindStringSubmatch(body)
	require.NotNil(t, m, "no submit button")
	return m[1]
}
