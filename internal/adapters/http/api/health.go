package api

import (
	"net/http"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status string `json:"status"`
	Views  int    `json:"views"`
}

// HandleHealth handles GET /healthz requests. The service is healthy once the
// record store is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	const op = "api.health"
	if _, err := h.deps.Filters(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Views: len(h.deps.Views(r.Context()))})
}
