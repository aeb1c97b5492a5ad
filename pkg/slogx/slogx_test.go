package slogx_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zancompute/zanconfig/pkg/slogx"
)

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "zanconfig",
		Version: "test",
		Env:     "test",
		Level:   "info",
		Format:  "json",
		Output:  &buf,
	})

	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slogx.FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusNotFound)
	}))

	t.Run("propagates request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/clients", nil)
		req.Header.Set(slogx.RequestIDHeader, "req-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "req-1", rec.Header().Get(slogx.RequestIDHeader))

		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(lines[1], &entry))
		require.Equal(t, "http_request", entry["msg"])
		require.Equal(t, "req-1", entry["req_id"])
		require.Equal(t, "zanconfig", entry["service"])
		require.EqualValues(t, http.StatusNotFound, entry["status"])
	})

	t.Run("generates request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
	})

	t.Run("probes are debug", func(t *testing.T) {
		buf.Reset()
		probe := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		probe.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Empty(t, buf.String())
	})
}

func TestRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "zanconfig", Format: "json", Output: &buf})

	logger.Info("login", "username", "ops", "password", "hunter2", "api_token", "tok", "new_password", "x", "token_fp", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "ops", entry["username"])
	require.Equal(t, slogx.Redacted, entry["password"])
	require.Equal(t, slogx.Redacted, entry["api_token"])
	require.Equal(t, slogx.Redacted, entry["new_password"])
	require.Equal(t, "abc", entry["token_fp"])
}
