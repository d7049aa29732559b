// Package pipeline holds the aggregation pipelines behind each dashboard view.
//
// Every pipeline is a pure function of a record slice. Pipelines never fail:
// an empty input produces an empty, non-nil result.
package pipeline

import (
	"cmp"
	"slices"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/okian/podium/internal/domain/model"
)

const (
	topListSize      = 10
	topCountriesSize = 5
)

// MedalCountByCountry counts medals per country, most medals first.
func MedalCountByCountry(view []model.Record) []KeyCount {
	return rankDesc(countBy(model.Medalled(view), func(r model.Record) string { return r.Country }))
}

// PerformanceByGender counts medals per sex, ordered by sex.
func PerformanceByGender(view []model.Record) []KeyCount {
	out := toKeyCounts(countBy(model.Medalled(view), func(r model.Record) string { return r.Sex }))
	slices.SortFunc(out, func(a, b KeyCount) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// MedalTrends counts medals per year in ascending year order.
func MedalTrends(view []model.Record) []YearCount {
	years := treemap.NewWithIntComparator()
	for _, r := range model.Medalled(view) {
		n, _ := years.Get(r.Year)
		c, _ := n.(int)
		years.Put(r.Year, c+1)
	}

	out := make([]YearCount, 0, years.Size())
	it := years.Iterator()
	for it.Next() {
		out = append(out, YearCount{Year: it.Key().(int), Count: it.Value().(int)})
	}
	return out
}

// TopMedalists returns the ten athletes with the most medals.
func TopMedalists(view []model.Record) []KeyCount {
	ranked := rankDesc(countBy(model.Medalled(view), func(r model.Record) string { return r.Name }))
	return head(ranked, topListSize)
}

// PopularSports counts events per sport over every row of the view, medal or
// not, and returns the ten largest. Rows without an event are not counted.
func PopularSports(view []model.Record) []KeyCount {
	withEvent := make([]model.Record, 0, len(view))
	for _, r := range view {
		if r.Event != "" {
			withEvent = append(withEvent, r)
		}
	}
	ranked := rankDesc(countBy(withEvent, func(r model.Record) string { return r.Sport }))
	return head(ranked, topListSize)
}

// TopCountriesOverTime picks the five countries with the most medals in
// records and returns each one's running medal total across the years in
// which any of them won. Years where a country won nothing carry its
// previous total forward.
func TopCountriesOverTime(records []model.Record) CumulativeSeries {
	medals := model.Medalled(records)
	top := head(rankDesc(countBy(medals, func(r model.Record) string { return r.Country })), topCountriesSize)

	index := make(map[string]int, len(top))
	for i, kc := range top {
		index[kc.Key] = i
	}

	years := treemap.NewWithIntComparator()
	for _, r := range medals {
		i, ok := index[r.Country]
		if !ok {
			continue
		}
		v, found := years.Get(r.Year)
		if !found {
			v = make([]int, len(top))
			years.Put(r.Year, v)
		}
		v.([]int)[i]++
	}

	out := CumulativeSeries{
		Years:  make([]int, 0, years.Size()),
		Series: make([]CountrySeries, len(top)),
	}
	for i, kc := range top {
		out.Series[i] = CountrySeries{Country: kc.Key, Cumulative: make([]int, 0, years.Size())}
	}

	running := make([]int, len(top))
	it := years.Iterator()
	for it.Next() {
		out.Years = append(out.Years, it.Key().(int))
		for i, n := range it.Value().([]int) {
			running[i] += n
			out.Series[i].Cumulative = append(out.Series[i].Cumulative, running[i])
		}
	}
	return out
}

// MedalsByGenderAndSport counts medals per sport and sex. Sports are ordered
// by their total medal count, largest first; sexes within a sport by name.
func MedalsByGenderAndSport(records []model.Record) []SportSexCount {
	type key struct{ sport, sex string }
	counts := make(map[key]int)
	totals := make(map[string]int)
	for _, r := range model.Medalled(records) {
		counts[key{r.Sport, r.Sex}]++
		totals[r.Sport]++
	}

	out := make([]SportSexCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, SportSexCount{Sport: k.sport, Sex: k.sex, Count: n})
	}
	slices.SortFunc(out, func(a, b SportSexCount) int {
		if c := cmp.Compare(totals[b.Sport], totals[a.Sport]); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Sport, b.Sport); c != 0 {
			return c
		}
		return cmp.Compare(a.Sex, b.Sex)
	})
	return out
}

// TopAthletes tallies gold, silver and bronze per athlete and returns the
// ten with the highest total.
func TopAthletes(records []model.Record) []AthleteTally {
	byName := make(map[string]*AthleteTally)
	for _, r := range model.Medalled(records) {
		t, ok := byName[r.Name]
		if !ok {
			t = &AthleteTally{Name: r.Name}
			byName[r.Name] = t
		}
		switch r.Medal {
		case model.Gold:
			t.Gold++
		case model.Silver:
			t.Silver++
		case model.Bronze:
			t.Bronze++
		}
		t.Total = t.Gold + t.Silver + t.Bronze
	}

	out := make([]AthleteTally, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b AthleteTally) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return head(out, topListSize)
}

// MeltAthletes reshapes tallies to one row per athlete and podium medal,
// grouped by medal in podium order and keeping the athletes' order.
func MeltAthletes(tallies []AthleteTally) []AthleteMedalCount {
	out := make([]AthleteMedalCount, 0, len(tallies)*len(model.PodiumMedals))
	for _, m := range model.PodiumMedals {
		for _, t := range tallies {
			out = append(out, AthleteMedalCount{Name: t.Name, Medal: m, Count: t.Count(m)})
		}
	}
	return out
}

func countBy(records []model.Record, key func(model.Record) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

func toKeyCounts(counts map[string]int) []KeyCount {
	out := make([]KeyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, KeyCount{Key: k, Count: n})
	}
	return out
}

// rankDesc orders by count descending; ties fall back to the key.
func rankDesc(counts map[string]int) []KeyCount {
	out := toKeyCounts(counts)
	slices.SortFunc(out, func(a, b KeyCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
