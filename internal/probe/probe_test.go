package probe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func records() []model.Record {
	return []model.Record{
		{Name: "A", Sex: "M", Country: "USA", Sport: "Swimming", Event: "100m", Year: 2000, Medal: model.Gold},
		{Name: "A", Sex: "M", Country: "USA", Sport: "Swimming", Event: "200m", Year: 2004, Medal: model.Gold},
		{Name: "B", Sex: "F", Country: "FRA", Sport: "Fencing", Event: "Foil", Year: 2000, Medal: model.Silver},
		{Name: "C", Sex: "M", Country: "USA", Sport: "Swimming", Event: "200m", Year: 2004, Medal: model.NoMedal},
		{Name: "D", Sex: "F", Country: "GER", Sport: "Canoeing", Event: "K1", Year: 2008, Medal: model.Bronze},
		{Name: "E", Sex: "M", Country: "JPN", Sport: "Judo", Event: "-60kg", Year: 2012, Medal: model.Gold},
	}
}

func newServer(opts ...service.Option) *httptest.Server {
	opts = append([]service.Option{service.WithStore(repository.NewMemoryStore(records()))}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	r := mux.NewRouter()
	api.NewServer(svc, svc).Register(context.Background(), r)
	return httptest.NewServer(r)
}

func TestRun(t *testing.T) {
	Convey("Given a running dashboard that filters every view", t, func() {
		srv := newServer()
		defer srv.Close()

		Convey("When probing it", func() {
			report, err := Run(context.Background(), Config{BaseURL: srv.URL + "/", Concurrency: 2})

			Convey("Then every check passes", func() {
				So(err, ShouldBeNil)
				So(report.OK(), ShouldBeTrue)
				So(len(report.Views), ShouldEqual, 9)
				So(report.Checks, ShouldBeGreaterThan, 9)
			})
		})
	})

	Convey("Given a dashboard where some views ignore the filters", t, func() {
		srv := newServer(service.WithFilterAllViews(false))
		defer srv.Close()

		Convey("Then the probe still passes", func() {
			report, err := Run(context.Background(), Config{BaseURL: srv.URL})
			So(err, ShouldBeNil)
			So(report.OK(), ShouldBeTrue)
		})
	})

	Convey("Given a server that does not answer health checks", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		Convey("Then the probe fails before checking views", func() {
			report, err := Run(context.Background(), Config{BaseURL: srv.URL})
			So(report, ShouldBeNil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})

	Convey("Given a server whose medal counts are out of order", t, func() {
		backend := newServer()
		defer backend.Close()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, string(pipeline.ViewMedalCountByCountry)) {
				http.Redirect(w, r, backend.URL+r.URL.RequestURI(), http.StatusTemporaryRedirect)
				return
			}
			res := pipeline.Result{
				View:     pipeline.ViewMedalCountByCountry,
				Filtered: true,
				Columns:  []string{"Country", "Medals"},
				Rows:     [][]any{{"FRA", 1}, {"USA", 4}},
			}
			_ = json.NewEncoder(w).Encode(res)
		}))
		defer srv.Close()

		Convey("Then the report names the violated checks", func() {
			report, err := Run(context.Background(), Config{BaseURL: srv.URL})
			So(errors.Is(err, ErrChecksFailed), ShouldBeTrue)
			So(report.OK(), ShouldBeFalse)

			checks := make(map[string]bool)
			for _, f := range report.Failures {
				So(f.View, ShouldEqual, pipeline.ViewMedalCountByCountry)
				checks[f.Check] = true
			}
			So(checks[CheckRanked], ShouldBeTrue)
			So(checks[CheckEmptyView], ShouldBeTrue)
		})
	})
}

func TestVerifier(t *testing.T) {
	Convey("Given a verifier", t, func() {
		v := &verifier{}

		Convey("When a cumulative series drops", func() {
			v.verifyCumulative(pipeline.Result{
				View:          pipeline.ViewTopCountriesOverTime,
				CategoryOrder: []string{"USA"},
				Rows:          [][]any{{2000.0, "USA", 3.0}, {2004.0, "USA", 2.0}},
			})

			Convey("Then it is reported", func() {
				So(v.failures, ShouldHaveLength, 1)
				So(v.failures[0].Check, ShouldEqual, CheckCumulative)
			})
		})

		Convey("When top athletes are listed out of order", func() {
			v.verifyAthletes(pipeline.Result{
				View:          pipeline.ViewTopAthletes,
				CategoryOrder: []string{"A", "B"},
				Rows:          [][]any{{"A", "Gold", 1.0}, {"B", "Gold", 1.0}, {"B", "Silver", 1.0}},
			})

			Convey("Then it is reported", func() {
				So(v.failures, ShouldHaveLength, 1)
				So(v.failures[0].Check, ShouldEqual, CheckRanked)
			})
		})

		Convey("When years repeat in the trend", func() {
			v.verifyYearOrder(pipeline.Result{View: pipeline.ViewMedalTrends, Rows: [][]any{{2000.0, 1.0}, {2000.0, 2.0}}})

			Convey("Then it is reported", func() {
				So(v.failures[0].Check, ShouldEqual, CheckYearOrder)
			})
		})

		Convey("When medal totals disagree between views", func() {
			v.verifyTotals(map[pipeline.ViewID]pipeline.Result{
				pipeline.ViewMedalCountByCountry: {Rows: [][]any{{"USA", 3.0}}},
				pipeline.ViewPerformanceByGender: {Rows: [][]any{{"M", 2.0}}},
				pipeline.ViewMedalTrends:         {Rows: [][]any{{2000.0, 3.0}}},
			})

			Convey("Then only the odd view is reported", func() {
				So(v.failures, ShouldHaveLength, 1)
				So(v.failures[0].View, ShouldEqual, pipeline.ViewPerformanceByGender)
				So(v.failures[0].Check, ShouldEqual, CheckTotals)
			})
		})

		Convey("When a fractional count is found", func() {
			_, ok := intAt([]any{"x", 1.5}, 1)
			So(ok, ShouldBeFalse)
		})
	})
}
