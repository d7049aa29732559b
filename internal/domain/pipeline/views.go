package pipeline

import (
	"github.com/okian/podium/internal/domain/model"
)

// ViewID identifies one dashboard view.
type ViewID string

// Dashboard views in navigation order.
const (
	ViewMedalCountByCountry    ViewID = "medal-count-by-country"
	ViewPerformanceByGender    ViewID = "performance-by-gender"
	ViewMedalTrends            ViewID = "medal-trends"
	ViewTopMedalists           ViewID = "top-medalists"
	ViewPopularSports          ViewID = "popular-sports"
	ViewTopCountriesOverTime   ViewID = "top-countries-over-time"
	ViewMedalsByGenderAndSport ViewID = "medals-by-gender-and-sport"
	ViewTopAthletes            ViewID = "top-athletes"
	ViewFunFacts               ViewID = "fun-facts"
)

// ChartKind tells the presentation layer how to draw a Result.
type ChartKind string

// Supported chart kinds.
const (
	ChartBar           ChartKind = "bar"
	ChartPie           ChartKind = "pie"
	ChartLine          ChartKind = "line"
	ChartHorizontalBar ChartKind = "horizontal_bar"
	ChartMultiLine     ChartKind = "multi_line"
	ChartGroupedBar    ChartKind = "grouped_bar"
	ChartText          ChartKind = "text"
)

// Scope says which records a view aggregates.
type Scope int

const (
	// ScopeFiltered views aggregate the user's filtered view.
	ScopeFiltered Scope = iota
	// ScopeStore views aggregate the whole store unless the service is
	// configured to filter every view.
	ScopeStore
	// ScopeNone views do not read records.
	ScopeNone
)

// Encoding maps result columns to chart channels.
type Encoding struct {
	X     string `json:"x,omitempty" yaml:"x,omitempty"`
	Y     string `json:"y,omitempty" yaml:"y,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Result is a chart-ready aggregate: long-format rows under named columns.
type Result struct {
	View          ViewID            `json:"view" yaml:"view"`
	Title         string            `json:"title" yaml:"title"`
	Chart         ChartKind         `json:"chart" yaml:"chart"`
	Filtered      bool              `json:"filtered" yaml:"filtered"`
	Encoding      Encoding          `json:"encoding" yaml:"encoding"`
	Labels        map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Columns       []string          `json:"columns" yaml:"columns"`
	Rows          [][]any           `json:"rows" yaml:"rows"`
	CategoryOrder []string          `json:"category_order,omitempty" yaml:"category_order,omitempty"`
	Colors        map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Text          []string          `json:"text,omitempty" yaml:"text,omitempty"`
}

// Empty reports whether the result has nothing to draw.
func (r Result) Empty() bool { return len(r.Rows) == 0 && len(r.Text) == 0 }

// View couples a view id with its pipeline.
type View struct {
	ID    ViewID
	Title string
	Chart ChartKind
	Scope Scope
	Build func(records []model.Record) Result
}

// Registry maps view ids to views.
type Registry struct {
	order    []ViewID
	views    map[ViewID]View
	funFacts []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithFunFacts sets the lines shown by the fun facts view.
func WithFunFacts(facts []string) Option {
	return func(r *Registry) {
		if len(facts) > 0 {
			r.funFacts = append([]string(nil), facts...)
		}
	}
}

// NewRegistry builds the registry of all nine dashboard views.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		views:    make(map[ViewID]View),
		funFacts: DefaultFunFacts(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.add(View{ID: ViewMedalCountByCountry, Title: "Medal Count by Country", Chart: ChartBar, Scope: ScopeFiltered, Build: buildMedalCountByCountry})
	r.add(View{ID: ViewPerformanceByGender, Title: "Performance by Gender", Chart: ChartPie, Scope: ScopeFiltered, Build: buildPerformanceByGender})
	r.add(View{ID: ViewMedalTrends, Title: "Medal Trends Over Time", Chart: ChartLine, Scope: ScopeFiltered, Build: buildMedalTrends})
	r.add(View{ID: ViewTopMedalists, Title: "Top Medalists", Chart: ChartBar, Scope: ScopeFiltered, Build: buildTopMedalists})
	r.add(View{ID: ViewPopularSports, Title: "Most Popular Sports", Chart: ChartHorizontalBar, Scope: ScopeFiltered, Build: buildPopularSports})
	r.add(View{ID: ViewTopCountriesOverTime, Title: "Top 5 Countries Over Time", Chart: ChartMultiLine, Scope: ScopeStore, Build: buildTopCountriesOverTime})
	r.add(View{ID: ViewMedalsByGenderAndSport, Title: "Medal Distribution by Gender and Sport", Chart: ChartGroupedBar, Scope: ScopeStore, Build: buildMedalsByGenderAndSport})
	r.add(View{ID: ViewTopAthletes, Title: "Top 10 Athletes by Medals", Chart: ChartHorizontalBar, Scope: ScopeStore, Build: buildTopAthletes})
	r.add(View{ID: ViewFunFacts, Title: "Fun Facts", Chart: ChartText, Scope: ScopeNone, Build: r.buildFunFacts})
	return r
}

func (r *Registry) add(v View) {
	r.order = append(r.order, v.ID)
	r.views[v.ID] = v
}

// Lookup returns the view registered under id.
func (r *Registry) Lookup(id ViewID) (View, bool) {
	v, ok := r.views[id]
	return v, ok
}

// Views returns every view in navigation order.
func (r *Registry) Views() []View {
	out := make([]View, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.views[id])
	}
	return out
}

// FunFacts returns the fun facts lines.
func (r *Registry) FunFacts() []string {
	return append([]string(nil), r.funFacts...)
}

// DefaultFunFacts are the fun facts shipped with the dashboard.
func DefaultFunFacts() []string {
	return []string{
		"The Tug-of-War was once an Olympic event!",
		"Edgar Aabye from Denmark won a gold medal in the Tug-of-War event.",
		"Some countries like India and China have shown rapid improvement in medal counts over the years.",
		"Did you know? The longest Olympic event in history was the marathon run by Dorando Pietri in 1908, which took him nearly three hours!",
	}
}

// MedalColors are the podium colours used by the top athletes chart.
var MedalColors = map[string]string{
	string(model.Gold):   "#FFD700",
	string(model.Silver): "#C0C0C0",
	string(model.Bronze): "#CD7F32",
}

func keyCountRows(kcs []KeyCount) [][]any {
	rows := make([][]any, 0, len(kcs))
	for _, kc := range kcs {
		rows = append(rows, []any{kc.Key, kc.Count})
	}
	return rows
}

func buildMedalCountByCountry(records []model.Record) Result {
	return Result{
		Encoding: Encoding{X: "Country", Y: "Medals"},
		Labels:   map[string]string{"Country": "Country", "Medals": "Medal Count"},
		Columns:  []string{"Country", "Medals"},
		Rows:     keyCountRows(MedalCountByCountry(records)),
	}
}

func buildPerformanceByGender(records []model.Record) Result {
	return Result{
		Encoding: Encoding{X: "Sex", Y: "Medals"},
		Labels:   map[string]string{"Sex": "Gender", "Medals": "Medal Count"},
		Columns:  []string{"Sex", "Medals"},
		Rows:     keyCountRows(PerformanceByGender(records)),
	}
}

func buildMedalTrends(records []model.Record) Result {
	trend := MedalTrends(records)
	rows := make([][]any, 0, len(trend))
	for _, yc := range trend {
		rows = append(rows, []any{yc.Year, yc.Count})
	}
	return Result{
		Encoding: Encoding{X: "Year", Y: "Medals"},
		Labels:   map[string]string{"Year": "Year", "Medals": "Medal Count"},
		Columns:  []string{"Year", "Medals"},
		Rows:     rows,
	}
}

func buildTopMedalists(records []model.Record) Result {
	return Result{
		Encoding: Encoding{X: "Athlete", Y: "Medals"},
		Labels:   map[string]string{"Athlete": "Athlete", "Medals": "Medal Count"},
		Columns:  []string{"Athlete", "Medals"},
		Rows:     keyCountRows(TopMedalists(records)),
	}
}

func buildPopularSports(records []model.Record) Result {
	return Result{
		Encoding: Encoding{X: "Events", Y: "Sport"},
		Labels:   map[string]string{"Sport": "Sport", "Events": "Event Count"},
		Columns:  []string{"Sport", "Events"},
		Rows:     keyCountRows(PopularSports(records)),
	}
}

func buildTopCountriesOverTime(records []model.Record) Result {
	cs := TopCountriesOverTime(records)
	rows := make([][]any, 0, len(cs.Years)*len(cs.Series))
	order := make([]string, 0, len(cs.Series))
	for _, s := range cs.Series {
		order = append(order, s.Country)
		for i, year := range cs.Years {
			rows = append(rows, []any{year, s.Country, s.Cumulative[i]})
		}
	}
	return Result{
		Encoding:      Encoding{X: "Year", Y: "Cumulative", Color: "Country"},
		Labels:        map[string]string{"Year": "Year", "Cumulative": "Cumulative Number of Medals", "Country": "Country"},
		Columns:       []string{"Year", "Country", "Cumulative"},
		Rows:          rows,
		CategoryOrder: order,
	}
}

func buildMedalsByGenderAndSport(records []model.Record) Result {
	counts := MedalsByGenderAndSport(records)
	rows := make([][]any, 0, len(counts))
	order := make([]string, 0)
	seen := make(map[string]bool)
	for _, c := range counts {
		rows = append(rows, []any{c.Sport, c.Sex, c.Count})
		if !seen[c.Sport] {
			seen[c.Sport] = true
			order = append(order, c.Sport)
		}
	}
	return Result{
		Encoding:      Encoding{X: "Sport", Y: "Count", Color: "Sex"},
		Labels:        map[string]string{"Sport": "Sport", "Count": "Number of Medals", "Sex": "Gender"},
		Columns:       []string{"Sport", "Sex", "Count"},
		Rows:          rows,
		CategoryOrder: order,
	}
}

func buildTopAthletes(records []model.Record) Result {
	tallies := TopAthletes(records)
	melted := MeltAthletes(tallies)
	rows := make([][]any, 0, len(melted))
	for _, m := range melted {
		rows = append(rows, []any{m.Name, string(m.Medal), m.Count})
	}
	order := make([]string, 0, len(tallies))
	for _, t := range tallies {
		order = append(order, t.Name)
	}
	return Result{
		Encoding:      Encoding{X: "Count", Y: "Name", Color: "Medal"},
		Labels:        map[string]string{"Count": "Number of Medals", "Name": "Athlete", "Medal": "Medal"},
		Columns:       []string{"Name", "Medal", "Count"},
		Rows:          rows,
		CategoryOrder: order,
		Colors:        MedalColors,
	}
}

func (r *Registry) buildFunFacts(_ []model.Record) Result {
	return Result{
		Columns: []string{},
		Rows:    [][]any{},
		Text:    r.FunFacts(),
	}
}

// Run builds v over records and stamps the view metadata on the result.
func (v View) Run(records []model.Record, filtered bool) Result {
	res := v.Build(records)
	res.View = v.ID
	res.Title = v.Title
	res.Chart = v.Chart
	res.Filtered = filtered
	return res
}
