// Package site serves the embedded single-page dashboard.
package site

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Register attaches the dashboard page and its assets to r. It claims every
// path not matched earlier, so register it after the API routes.
func Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	files := http.FileServer(FS())
	r.PathPrefix("/").Handler(files).Methods(http.MethodGet, http.MethodHead)
}
