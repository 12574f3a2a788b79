package handlers

import (
	"context"
	"net/http"
	"time"

	"oasis-blood-platform/internal/logx"
)

const readinessTimeout = 2 * time.Second

// Pinger checks a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds the service-level endpoints.
type Handlers struct {
	Logger logx.Logger
	DB     Pinger
}

// New creates a Handlers instance. db may be nil, in which case the healthcheck
// only reports that the process is up.
func New(logger logx.Logger, db Pinger) *Handlers {
	return &Handlers{Logger: logger, DB: db}
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck: 204 when the database answers, 503 otherwise.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.Warn("healthcheck failed", logx.Err(err))
			}
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotFound returns a JSON 404 error for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}
