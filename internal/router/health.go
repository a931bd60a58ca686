package router

import (
	"context"
	"net/http"
	"time"

	"vet-clinic-api/internal/platform/httpx"
)

const readinessTimeout = 3 * time.Second

// Check verifica una dependencia; nil = sana.
type Check func(ctx context.Context) error

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// liveness godoc
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func liveness(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readiness godoc
// @Summary Readiness
// @Description Verifica Postgres y Redis (si están configurados).
// @Tags health
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /health/ready [get]
func readiness(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		deps := make(map[string]dependencyStatus, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
				healthy = false
				continue
			}
			deps[name] = dependencyStatus{Status: "ok"}
		}

		status := "ok"
		httpStatus := http.StatusOK
		if !healthy {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, httpStatus, readinessResponse{
			Status:       status,
			Dependencies: deps,
		})
	}
}
