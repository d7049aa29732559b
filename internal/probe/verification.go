package probe

import (
	"fmt"
	"math"

	"github.com/okian/podium/internal/domain/pipeline"
)

// Check names reported in failures.
const (
	CheckFilteredFlag = "filtered_flag"
	CheckTopSize      = "top_size"
	CheckRanked       = "ranked"
	CheckYearOrder    = "year_order"
	CheckCumulative   = "cumulative"
	CheckTotals       = "totals"
	CheckEmptyView    = "empty_view"
	CheckRangeSubset  = "range_subset"
)

const (
	topListSize      = 10
	topCountriesSize = 5
)

// verifier collects failures for one probe run.
type verifier struct {
	checks   int
	failures []Failure
}

func (v *verifier) fail(id pipeline.ViewID, check, format string, args ...any) {
	v.failures = append(v.failures, Failure{View: id, Check: check, Message: fmt.Sprintf(format, args...)})
}

// verifyView runs the shape checks that apply to a single result.
func (v *verifier) verifyView(res pipeline.Result, wantFiltered bool) {
	v.checks++
	if res.Filtered != wantFiltered {
		v.fail(res.View, CheckFilteredFlag, "filtered=%t, listed as %t", res.Filtered, wantFiltered)
	}

	switch res.View {
	case pipeline.ViewMedalCountByCountry:
		v.verifyRanked(res, 1, 0)
	case pipeline.ViewTopMedalists, pipeline.ViewPopularSports:
		v.verifyRanked(res, 1, topListSize)
	case pipeline.ViewMedalTrends:
		v.verifyYearOrder(res)
	case pipeline.ViewTopCountriesOverTime:
		v.verifyCumulative(res)
	case pipeline.ViewTopAthletes:
		v.verifyAthletes(res)
	}
}

// verifyRanked checks that column col never increases down the rows and,
// when limit is positive, that there are at most limit rows.
func (v *verifier) verifyRanked(res pipeline.Result, col, limit int) {
	v.checks++
	if limit > 0 && len(res.Rows) > limit {
		v.fail(res.View, CheckTopSize, "%d rows, want at most %d", len(res.Rows), limit)
	}
	prev := math.MaxInt
	for i, row := range res.Rows {
		n, ok := intAt(row, col)
		if !ok {
			v.fail(res.View, CheckRanked, "row %d: column %d is not a count", i, col)
			return
		}
		if n > prev {
			v.fail(res.View, CheckRanked, "row %d: %d follows %d", i, n, prev)
			return
		}
		prev = n
	}
}

func (v *verifier) verifyYearOrder(res pipeline.Result) {
	v.checks++
	prev := math.MinInt
	for i, row := range res.Rows {
		year, ok := intAt(row, 0)
		if !ok || year <= prev {
			v.fail(res.View, CheckYearOrder, "row %d: year %v after %d", i, row[0], prev)
			return
		}
		prev = year
	}
}

// verifyCumulative checks the long-format Year, Country, Cumulative rows:
// at most five countries and a running total that never drops.
func (v *verifier) verifyCumulative(res pipeline.Result) {
	v.checks++
	if len(res.CategoryOrder) > topCountriesSize {
		v.fail(res.View, CheckTopSize, "%d countries, want at most %d", len(res.CategoryOrder), topCountriesSize)
	}
	last := make(map[string]int)
	for i, row := range res.Rows {
		country, _ := row[1].(string)
		n, ok := intAt(row, 2)
		if !ok {
			v.fail(res.View, CheckCumulative, "row %d: cumulative is not a count", i)
			return
		}
		if prev, seen := last[country]; seen && n < prev {
			v.fail(res.View, CheckCumulative, "%s drops from %d to %d", country, prev, n)
			return
		}
		last[country] = n
	}
}

// verifyAthletes sums the melted Name, Medal, Count rows back to totals and
// checks them against the category order.
func (v *verifier) verifyAthletes(res pipeline.Result) {
	v.checks++
	if len(res.CategoryOrder) > topListSize {
		v.fail(res.View, CheckTopSize, "%d athletes, want at most %d", len(res.CategoryOrder), topListSize)
	}
	totals := make(map[string]int)
	for _, row := range res.Rows {
		name, _ := row[0].(string)
		n, _ := intAt(row, 2)
		totals[name] += n
	}
	prev := math.MaxInt
	for _, name := range res.CategoryOrder {
		if totals[name] > prev {
			v.fail(res.View, CheckRanked, "%s has %d after %d", name, totals[name], prev)
			return
		}
		prev = totals[name]
	}
}

// verifyTotals checks that the views counting medals over the same filtered
// records agree on the number of medals.
func (v *verifier) verifyTotals(results map[pipeline.ViewID]pipeline.Result) {
	ids := []pipeline.ViewID{pipeline.ViewMedalCountByCountry, pipeline.ViewPerformanceByGender, pipeline.ViewMedalTrends}
	want := -1
	for _, id := range ids {
		res, ok := results[id]
		if !ok {
			continue
		}
		got := sumColumn(res, 1)
		if want < 0 {
			want = got
			continue
		}
		v.checks++
		if got != want {
			v.fail(id, CheckTotals, "%d medals, %s counts %d", got, ids[0], want)
		}
	}
}

// verifyEmpty checks that a filtered view rendered over an empty selection
// has no rows.
func (v *verifier) verifyEmpty(res pipeline.Result) {
	v.checks++
	if !res.Filtered {
		return
	}
	if len(res.Rows) != 0 {
		v.fail(res.View, CheckEmptyView, "%d rows for an empty selection", len(res.Rows))
	}
}

// verifyRangeSubset checks that narrowing the years of medal trends keeps
// exactly the rows of the full trend that fall inside the range.
func (v *verifier) verifyRangeSubset(full, narrow pipeline.Result, yearMin, yearMax int) {
	v.checks++
	want := make(map[int]int)
	for _, row := range full.Rows {
		year, _ := intAt(row, 0)
		if year >= yearMin && year <= yearMax {
			want[year], _ = intAt(row, 1)
		}
	}
	if len(narrow.Rows) != len(want) {
		v.fail(narrow.View, CheckRangeSubset, "%d years in [%d, %d], want %d", len(narrow.Rows), yearMin, yearMax, len(want))
		return
	}
	for _, row := range narrow.Rows {
		year, _ := intAt(row, 0)
		n, _ := intAt(row, 1)
		if want[year] != n {
			v.fail(narrow.View, CheckRangeSubset, "year %d: %d medals, want %d", year, n, want[year])
			return
		}
	}
}

func sumColumn(res pipeline.Result, col int) int {
	total := 0
	for _, row := range res.Rows {
		n, _ := intAt(row, col)
		total += n
	}
	return total
}

// intAt reads an integral cell. Decoded JSON numbers arrive as float64.
func intAt(row []any, col int) (int, bool) {
	if col >= len(row) {
		return 0, false
	}
	switch n := row[col].(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
