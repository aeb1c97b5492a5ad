package console_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness probe answers without a session.
func TestLivezEndpoint(t *testing.T) {
	backend := newBackend(t)
	baseURL, cleanup := setupConsoleContainer(t, backend, nil)
	defer cleanup()

	status, body := health(t, baseURL, "/livez")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

// TestReadyzEndpoint verifies readiness covers the session store and the
// records API.
func TestReadyzEndpoint(t *testing.T) {
	backend := newBackend(t)
	baseURL, cleanup := setupConsoleContainer(t, backend, nil)
	defer cleanup()

	status, body := health(t, baseURL, "/readyz")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])

	checks, ok := body["checks"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ok", checks["database"])
	require.Equal(t, "ok", checks["backend"])
}

// TestReadyzBackendDown verifies readiness degrades when the records API
// is unreachable.
func TestReadyzBackendDown(t *testing.T) {
	backend := newBackend(t)
	baseURL, cleanup := setupConsoleContainer(t, backend, nil)
	defer cleanup()

	backend.Close()

	status, body := health(t, baseURL, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, status)
	require.Equal(t, "degraded", body["status"])
}
