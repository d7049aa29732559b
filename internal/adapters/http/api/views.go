package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/podium/internal/domain/pipeline"
)

// ViewsHandler serves the view list and rendered views.
type ViewsHandler struct {
	deps Dependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps Dependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// HandleListViews handles GET /api/views requests.
func (h *ViewsHandler) HandleListViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Views(r.Context()))
}

// HandleGetView handles GET /api/views/{id} requests. Filter query
// parameters are parsed by parseSelection.
func (h *ViewsHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_view"
	ctx := r.Context()
	id := pipeline.ViewID(mux.Vars(r)["id"])

	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	fc, err := h.deps.Resolve(ctx, sel)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}

	res, err := h.deps.Render(ctx, id, fc)
	switch {
	case errors.Is(err, pipeline.ErrUnknownView):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
