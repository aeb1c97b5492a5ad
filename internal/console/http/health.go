package http

import (
	"context"
	"net/http"
	"time"

	"github.com/zancompute/zanconfig/internal/console/session"
	"github.com/zancompute/zanconfig/internal/console/store"
	"github.com/zancompute/zanconfig/pkg/httpx"
	"github.com/zancompute/zanconfig/pkg/zanapi"
)

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency the console needs to serve pages.
type HealthChecks struct {
	// Database is the session store status
	Database string `json:"database"`

	// Backend is the status of the records API
	Backend string `json:"backend"`

	// ActiveSessions is the number of unexpired operator sessions
	ActiveSessions int64 `json:"active_sessions"`
}

// readyTimeout bounds each readiness probe.
const readyTimeout = 3 * time.Second

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process serves.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe that pings the session store and the records API health endpoint
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	api *zanapi.Client,
	sessions *session.Manager,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := &HealthChecks{
			Database: "ok",
			Backend:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if n, err := sessions.Active(ctx); err == nil {
			checks.ActiveSessions = n
		}

		if health, err := api.Health(ctx); err != nil {
			checks.Backend = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if !health.OK {
			checks.Backend = "error: backend reports not ok"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
