package http

import (
	"net/http"
	"time"

	"github.com/unimarket/gateway/internal/gateway/relay"
	"github.com/unimarket/gateway/internal/gateway/store"
	"github.com/unimarket/gateway/pkg/httpx"
	"github.com/unimarket/gateway/pkg/marketsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the guest cart database and marketplace backend
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	marketsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	marketsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	backend *relay.Client,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &marketsdk.HealthChecks{
			Database: "ok",
			Backend:  "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check guest cart database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check backend reachability. Any HTTP response, even a 401,
		// proves the backend is up; only a transport failure degrades.
		if _, err := backend.Forward(r.Context(), http.MethodGet, "/auth/session", relay.ForwardOptions{}); err != nil {
			checks.Backend = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := marketsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
