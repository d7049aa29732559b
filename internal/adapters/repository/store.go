// Package repository loads the medal dataset and holds it as an immutable
// in-memory record store.
package repository

import (
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
)

// Store provides read access to the loaded records.
type Store interface {
	// Records returns every record in file order. Callers must not modify
	// the returned slice.
	Records() []model.Record

	// Len returns the number of records.
	Len() int

	// Options returns the distinct dimension values and the year range.
	Options() filter.Options
}

// MemoryStore is a Store built once from a record slice and never changed.
type MemoryStore struct {
	records []model.Record
	options filter.Options
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore indexes records. The slice is owned by the store afterwards.
func NewMemoryStore(records []model.Record) *MemoryStore {
	if records == nil {
		records = []model.Record{}
	}
	s := &MemoryStore{records: records}
	s.options = distinct(records)
	return s
}

// Records returns every record in file order.
func (s *MemoryStore) Records() []model.Record { return s.records }

// Len returns the number of records.
func (s *MemoryStore) Len() int { return len(s.records) }

// Options returns a copy of the store's filter options.
func (s *MemoryStore) Options() filter.Options {
	o := s.options
	o.Sexes = append([]string(nil), o.Sexes...)
	o.Medals = append([]string(nil), o.Medals...)
	o.Sports = append([]string(nil), o.Sports...)
	o.Countries = append([]string(nil), o.Countries...)
	return o
}

// distinct collects each dimension's values in first-appearance order.
func distinct(records []model.Record) filter.Options {
	var o filter.Options
	o.Sexes, o.Medals, o.Sports, o.Countries = []string{}, []string{}, []string{}, []string{}
	seen := map[string]map[string]bool{
		"sex": {}, "medal": {}, "sport": {}, "country": {},
	}
	add := func(dim, v string, dst *[]string) {
		if !seen[dim][v] {
			seen[dim][v] = true
			*dst = append(*dst, v)
		}
	}

	for i, r := range records {
		if i == 0 || r.Year < o.YearMin {
			o.YearMin = r.Year
		}
		if i == 0 || r.Year > o.YearMax {
			o.YearMax = r.Year
		}
		add("sex", r.Sex, &o.Sexes)
		add("medal", string(r.Medal), &o.Medals)
		add("sport", r.Sport, &o.Sports)
		add("country", r.Country, &o.Countries)
	}
	return o
}
