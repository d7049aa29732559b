package api

import "net/http"

// MetaHandler serves the static page content.
type MetaHandler struct {
	deps Dependencies
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(deps Dependencies) *MetaHandler {
	return &MetaHandler{deps: deps}
}

// HandleMeta handles GET /api/meta requests.
func (h *MetaHandler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Meta(r.Context()))
}
