// Package filter implements the user filter context and the filtering engine.
//
// A Context is five independent constraints combined with AND. Each set
// constraint is an OR over its members, so an empty set matches nothing.
package filter

import (
	"slices"

	"github.com/okian/podium/internal/domain/model"
)

// Set is a set of accepted dimension values.
type Set map[string]struct{}

// NewSet builds a Set from values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is accepted.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members of s in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Context is the active set of user constraints over the record store.
type Context struct {
	YearMin   int
	YearMax   int
	Sexes     Set
	Medals    Set
	Sports    Set
	Countries Set
}

// Match reports whether r satisfies all five predicates.
func (c Context) Match(r model.Record) bool {
	return r.Year >= c.YearMin && r.Year <= c.YearMax &&
		c.Sexes.Has(r.Sex) &&
		c.Countries.Has(r.Country) &&
		c.Medals.Has(string(r.Medal)) &&
		c.Sports.Has(r.Sport)
}

// Apply returns the records matching c in their original order. The input is
// never modified.
func Apply(records []model.Record, c Context) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Options describes what the record store offers to the filter widgets.
type Options struct {
	YearMin   int      `json:"year_min" yaml:"year_min"`
	YearMax   int      `json:"year_max" yaml:"year_max"`
	Sexes     []string `json:"sexes" yaml:"sexes"`
	Medals    []string `json:"medals" yaml:"medals"`
	Sports    []string `json:"sports" yaml:"sports"`
	Countries []string `json:"countries" yaml:"countries"`
}

// DefaultMedals are selected when the user has not chosen medal types.
func DefaultMedals() []string {
	out := make([]string, len(model.PodiumMedals))
	for i, m := range model.PodiumMedals {
		out[i] = string(m)
	}
	return out
}

// Defaults returns the initial context: the full year range, every sex, sport
// and country, and the podium medals only.
func (o Options) Defaults() Context {
	return Context{
		YearMin:   o.YearMin,
		YearMax:   o.YearMax,
		Sexes:     NewSet(o.Sexes...),
		Medals:    NewSet(DefaultMedals()...),
		Sports:    NewSet(o.Sports...),
		Countries: NewSet(o.Countries...),
	}
}

// Selection is a partial user choice. A nil year or a nil slice keeps the
// default for that dimension; a non-nil empty slice selects nothing.
type Selection struct {
	YearMin   *int
	YearMax   *int
	Sexes     []string
	Medals    []string
	Sports    []string
	Countries []string
}

// Resolve overlays s on defaults. The result shares no sets with defaults.
func (s Selection) Resolve(defaults Context) Context {
	c := Context{
		YearMin:   defaults.YearMin,
		YearMax:   defaults.YearMax,
		Sexes:     pick(s.Sexes, defaults.Sexes),
		Medals:    pick(s.Medals, defaults.Medals),
		Sports:    pick(s.Sports, defaults.Sports),
		Countries: pick(s.Countries, defaults.Countries),
	}
	if s.YearMin != nil {
		c.YearMin = *s.YearMin
	}
	if s.YearMax != nil {
		c.YearMax = *s.YearMax
	}
	return c
}

func pick(chosen []string, def Set) Set {
	if chosen == nil {
		out := make(Set, len(def))
		for v := range def {
			out[v] = struct{}{}
		}
		return out
	}
	return NewSet(chosen...)
}
