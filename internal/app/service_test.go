package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func sampleStore() *repository.MemoryStore {
	return repository.NewMemoryStore([]model.Record{
		{Name: "A", Sex: "M", Country: "USA", Sport: "Swimming", Event: "100m", Year: 2000, Medal: model.Gold},
		{Name: "B", Sex: "F", Country: "FRA", Sport: "Fencing", Event: "Foil", Year: 2000, Medal: model.Silver},
		{Name: "C", Sex: "M", Country: "USA", Sport: "Swimming", Event: "200m", Year: 2004, Medal: model.NoMedal},
		{Name: "D", Sex: "F", Country: "GER", Sport: "Canoeing", Event: "K1", Year: 2004, Medal: model.Gold},
	})
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it lists the nine views", func() {
			So(len(svc.Views(context.Background())), ShouldEqual, 9)
		})

		Convey("And rendering before start fails", func() {
			_, err := svc.Render(context.Background(), pipeline.ViewMedalTrends, filter.Context{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("And the meta carries the default title and fun facts", func() {
			meta := svc.Meta(context.Background())
			So(meta.Title, ShouldNotBeEmpty)
			So(meta.FunFacts, ShouldResemble, pipeline.DefaultFunFacts())
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTitle("Olympics"),
			service.WithVideoURL("https://example.org/video"),
			service.WithFunFacts([]string{"fact"}),
		)

		Convey("Then the meta reflects them", func() {
			meta := svc.Meta(context.Background())
			So(meta.Title, ShouldEqual, "Olympics")
			So(meta.VideoURL, ShouldEqual, "https://example.org/video")
			So(meta.FunFacts, ShouldResemble, []string{"fact"})
		})
	})
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over a dataset file", t, func() {
		path := filepath.Join(t.TempDir(), "medals.csv")
		data := "Name,Sex,Country,Sport,Event,Year,Medal\nA,M,USA,Swimming,100m,2000,Gold\n"
		So(os.WriteFile(path, []byte(data), 0o600), ShouldBeNil)
		svc := service.New(service.WithDatasetPath(path))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it loads the records", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["records"], ShouldEqual, 1)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a service over a missing file", t, func() {
		svc := service.New(service.WithDatasetPath(filepath.Join(t.TempDir(), "missing.csv")))

		Convey("Then start fails with a load error", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, service.ErrLoadDataset), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Render(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with every view filtered", t, func() {
		svc := service.New(service.WithStore(sampleStore()))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When rendering with the default filters", func() {
			fc, err := svc.DefaultContext(ctx)
			So(err, ShouldBeNil)
			res, err := svc.Render(ctx, pipeline.ViewMedalCountByCountry, fc)

			Convey("Then medals are counted per country", func() {
				So(err, ShouldBeNil)
				So(res.Filtered, ShouldBeTrue)
				So(res.Rows, ShouldResemble, [][]any{{"FRA", 1}, {"GER", 1}, {"USA", 1}})
			})
		})

		Convey("When restricting to 2004", func() {
			y := 2004
			fc, err := svc.Resolve(ctx, filter.Selection{YearMin: &y})
			So(err, ShouldBeNil)

			Convey("Then the top athletes view honours the filter", func() {
				res, err := svc.Render(ctx, pipeline.ViewTopAthletes, fc)
				So(err, ShouldBeNil)
				So(res.Filtered, ShouldBeTrue)
				So(res.CategoryOrder, ShouldResemble, []string{"D"})
			})
		})

		Convey("When restricting to an empty year range", func() {
			lo, hi := 2001, 2003
			fc, err := svc.Resolve(ctx, filter.Selection{YearMin: &lo, YearMax: &hi})
			So(err, ShouldBeNil)

			Convey("Then every data view is empty without error", func() {
				for _, v := range svc.Views(ctx) {
					res, err := svc.Render(ctx, v.ID, fc)
					So(err, ShouldBeNil)
					if v.ID != pipeline.ViewFunFacts {
						So(res.Empty(), ShouldBeTrue)
					}
				}
			})
		})

		Convey("When rendering an unknown view", func() {
			_, err := svc.Render(ctx, "medal-map", filter.Context{})

			Convey("Then the unknown view error is returned", func() {
				So(errors.Is(err, pipeline.ErrUnknownView), ShouldBeTrue)
			})
		})
	})

	Convey("Given a started service that keeps three views unfiltered", t, func() {
		svc := service.New(service.WithStore(sampleStore()), service.WithFilterAllViews(false))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		y := 2004
		fc, err := svc.Resolve(ctx, filter.Selection{YearMin: &y})
		So(err, ShouldBeNil)

		Convey("Then the view list reports which views are filtered", func() {
			filtered := map[pipeline.ViewID]bool{}
			for _, v := range svc.Views(ctx) {
				filtered[v.ID] = v.Filtered
			}
			So(filtered[pipeline.ViewMedalTrends], ShouldBeTrue)
			So(filtered[pipeline.ViewTopAthletes], ShouldBeFalse)
			So(filtered[pipeline.ViewTopCountriesOverTime], ShouldBeFalse)
			So(filtered[pipeline.ViewFunFacts], ShouldBeFalse)
		})

		Convey("And top athletes aggregates the whole store", func() {
			res, err := svc.Render(ctx, pipeline.ViewTopAthletes, fc)
			So(err, ShouldBeNil)
			So(res.Filtered, ShouldBeFalse)
			So(res.CategoryOrder, ShouldResemble, []string{"A", "B", "D"})
		})

		Convey("And medal trends still honours the filter", func() {
			res, err := svc.Render(ctx, pipeline.ViewMedalTrends, fc)
			So(err, ShouldBeNil)
			So(res.Rows, ShouldResemble, [][]any{{2004, 1}})
		})
	})

	Convey("Given a started service", t, func() {
		svc := service.New(service.WithStore(sampleStore()))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the filters list options and defaults", func() {
			f, err := svc.Filters(ctx)
			So(err, ShouldBeNil)
			So(f.Options.Medals, ShouldResemble, []string{"Gold", "Silver", "No medal"})
			So(f.Defaults.Medals, ShouldResemble, []string{"Gold", "Silver", "Bronze"})
			So(f.Options.YearMin, ShouldEqual, 2000)
			So(f.Options.YearMax, ShouldEqual, 2004)
		})
	})
}
