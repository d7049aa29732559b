package pipeline

import "github.com/okian/podium/internal/domain/model"

// KeyCount is a count keyed by one dimension value.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// YearCount is a count keyed by Olympic year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CountrySeries is one country's running medal total, aligned with
// CumulativeSeries.Years.
type CountrySeries struct {
	Country    string `json:"country"`
	Cumulative []int  `json:"cumulative"`
}

// CumulativeSeries holds running totals for several countries over the
// years in which any of them won a medal.
type CumulativeSeries struct {
	Years  []int           `json:"years"`
	Series []CountrySeries `json:"series"`
}

// SportSexCount is a medal count for one sport and sex.
type SportSexCount struct {
	Sport string `json:"sport"`
	Sex   string `json:"sex"`
	Count int    `json:"count"`
}

// AthleteTally is the wide form of an athlete's medals.
type AthleteTally struct {
	Name   string `json:"name"`
	Gold   int    `json:"gold"`
	Silver int    `json:"silver"`
	Bronze int    `json:"bronze"`
	Total  int    `json:"total"`
}

// Count returns the tally for one podium medal.
func (a AthleteTally) Count(m model.Medal) int {
	switch m {
	case model.Gold:
		return a.Gold
	case model.Silver:
		return a.Silver
	case model.Bronze:
		return a.Bronze
	default:
		return 0
	}
}

// AthleteMedalCount is the long form of AthleteTally, one row per medal type.
type AthleteMedalCount struct {
	Name  string      `json:"name"`
	Medal model.Medal `json:"medal"`
	Count int         `json:"count"`
}
