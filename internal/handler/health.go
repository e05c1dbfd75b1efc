package handler

import (
	"net/http"
	"time"

	"github.com/grupokossodo/intake-agent/internal/store"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store   *store.Store
	started time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st, started: time.Now()}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Ready handles GET /ready. Not ready while the database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
