// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/metrics"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Views lists the dashboard views in navigation order.
	Views(ctx context.Context) []types.ViewInfo

	// Filters returns the widget option lists and their defaults.
	Filters(ctx context.Context) (types.Filters, error)

	// Resolve overlays a partial selection on the default filter context.
	Resolve(ctx context.Context, sel filter.Selection) (filter.Context, error)

	// Render runs one view over the filtered store.
	Render(ctx context.Context, id pipeline.ViewID, fc filter.Context) (pipeline.Result, error)

	// Meta returns the static page content.
	Meta(ctx context.Context) types.Meta
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	viewsHandler  *ViewsHandler
	filterHandler *FiltersHandler
	metaHandler   *MetaHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		viewsHandler:  NewViewsHandler(deps),
		filterHandler: NewFiltersHandler(deps),
		metaHandler:   NewMetaHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/views", MetricsMiddleware(s.viewsHandler.HandleListViews, "views")).Methods(http.MethodGet)
	api.HandleFunc("/views/{id}", MetricsMiddleware(s.viewsHandler.HandleGetView, "view")).Methods(http.MethodGet)
	api.HandleFunc("/filters", MetricsMiddleware(s.filterHandler.HandleFilters, "filters")).Methods(http.MethodGet)
	api.HandleFunc("/meta", MetricsMiddleware(s.metaHandler.HandleMeta, "meta")).Methods(http.MethodGet)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
