// Package types contains common types used across the application
package types

import (
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/pipeline"
)

// ViewInfo describes one entry of the view selector.
type ViewInfo struct {
	ID    pipeline.ViewID    `json:"id" yaml:"id"`
	Title string             `json:"title" yaml:"title"`
	Chart pipeline.ChartKind `json:"chart" yaml:"chart"`
	// Filtered reports whether the view honours the user's filters.
	Filtered bool `json:"filtered" yaml:"filtered"`
}

// Filters holds the widget option lists and their initial selection.
type Filters struct {
	Options  filter.Options `json:"options" yaml:"options"`
	Defaults filter.Options `json:"defaults" yaml:"defaults"`
}

// NewFilters derives the initial selection from the store options: every
// value selected except medals, which start at the podium medals.
func NewFilters(o filter.Options) Filters {
	d := o
	d.Sexes = append([]string(nil), o.Sexes...)
	d.Sports = append([]string(nil), o.Sports...)
	d.Countries = append([]string(nil), o.Countries...)
	d.Medals = filter.DefaultMedals()
	return Filters{Options: o, Defaults: d}
}

// Meta is the static page content around the charts.
type Meta struct {
	Title    string   `json:"title" yaml:"title"`
	VideoURL string   `json:"video_url" yaml:"video_url"`
	FunFacts []string `json:"fun_facts" yaml:"fun_facts"`
}
