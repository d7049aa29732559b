package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/filter"
)

// Filter query parameters accepted by GET /api/views/{id}.
const (
	paramYearMin = "year_min"
	paramYearMax = "year_max"
	paramSex     = "sex"
	paramMedal   = "medal"
	paramSport   = "sport"
	paramCountry = "country"
)

// FiltersHandler serves the filter widget options.
type FiltersHandler struct {
	deps Dependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps Dependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

// HandleFilters handles GET /api/filters requests.
func (h *FiltersHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_filters"
	f, err := h.deps.Filters(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// parseSelection reads the filter parameters from q. Repeated parameters form
// a set. An absent parameter keeps the default; a parameter present with only
// blank values selects nothing. A blank year keeps the default.
func parseSelection(q url.Values) (filter.Selection, error) {
	var sel filter.Selection
	var err error

	if sel.YearMin, err = parseYear(q, paramYearMin); err != nil {
		return sel, err
	}
	if sel.YearMax, err = parseYear(q, paramYearMax); err != nil {
		return sel, err
	}

	sel.Sexes = parseSet(q, paramSex)
	sel.Medals = parseSet(q, paramMedal)
	sel.Sports = parseSet(q, paramSport)
	sel.Countries = parseSet(q, paramCountry)
	return sel, nil
}

func parseYear(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return &y, nil
}

func parseSet(q url.Values, key string) []string {
	values, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
