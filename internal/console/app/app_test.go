package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/pkg/jwtx"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ZANCONFIG_API_BASE", "ENV", "PORT", "ZANCONFIG_SECURE_COOKIES", "ZANCONFIG_SESSION_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:5000/api", cfg.APIBase)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.False(t, cfg.SecureCookies)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 30*time.Second, cfg.DashboardRefresh)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"ZANCONFIG_API_BASE=http://backend:5000/api\nENV=prod\nZANCONFIG_DASHBOARD_REFRESH=45\nPORT=9090\n",
	), 0o600))

	// Values already in the environment win over the file.
	t.Setenv("PORT", "7070")
	for _, key := range []string{"ZANCONFIG_API_BASE", "ENV", "ZANCONFIG_DASHBOARD_REFRESH", "ZANCONFIG_SECURE_COOKIES"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://backend:5000/api", cfg.APIBase)
	require.Equal(t, "prod", cfg.Env)
	require.True(t, cfg.SecureCookies)
	require.Equal(t, 45*time.Second, cfg.DashboardRefresh)
	require.Equal(t, 7070, cfg.Port)
}

func TestInitKeysPersist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{
		SecretFile:     filepath.Join(dir, "secret.key"),
		SigningKeyFile: filepath.Join(dir, "session.pem"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := InitKeys(cfg, logger)
	require.NoError(t, err)
	require.Len(t, first.CSRFKey, 32)

	token, err := first.Signer.Sign(jwtx.NewSessionClaims("sid", "ops", time.Hour, session.Issuer, []string{session.Issuer}, time.Now()))
	require.NoError(t, err)

	second, err := InitKeys(cfg, logger)
	require.NoError(t, err)
	require.Equal(t, first.CSRFKey, second.CSRFKey)

	claims, err := second.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "sid", claims.SID)

	sealed, err := first.Sealer.Seal([]byte("backend-token"), []byte("sid"))
	require.NoError(t, err)
	opened, err := second.Sealer.Open(sealed, []byte("sid"))
	require.NoError(t, err)
	require.Equal(t, "backend-token", string(opened))
}

func TestNewServesProbes(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(backend.Close)

	dir := t.TempDir()
	application, err := New(Config{
		APIBase:              backend.URL,
		DatabaseFile:         filepath.Join(dir, "zanconfig.db"),
		SecretFile:           filepath.Join(dir, "secret.key"),
		SigningKeyFile:       filepath.Join(dir, "session.pem"),
		SessionTTL:           time.Hour,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
