package repository

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Name: "A", Sex: "M", Country: "USA", Sport: "Swimming", Event: "100m", Year: 2000, Medal: model.Gold},
		{Name: "B", Sex: "F", Country: "FRA", Sport: "Fencing", Event: "Foil", Year: 1996, Medal: model.Silver},
		{Name: "C", Sex: "M", Country: "USA", Sport: "Swimming", Event: "200m", Year: 2004, Medal: model.NoMedal},
	}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a store built from three records", t, func() {
		store := NewMemoryStore(sampleRecords())

		Convey("Then records keep file order", func() {
			So(store.Len(), ShouldEqual, 3)
			So(store.Records()[1].Name, ShouldEqual, "B")
		})

		Convey("And options list distinct values in first-appearance order", func() {
			o := store.Options()
			So(o.YearMin, ShouldEqual, 1996)
			So(o.YearMax, ShouldEqual, 2004)
			So(o.Sexes, ShouldResemble, []string{"M", "F"})
			So(o.Medals, ShouldResemble, []string{"Gold", "Silver", "No medal"})
			So(o.Sports, ShouldResemble, []string{"Swimming", "Fencing"})
			So(o.Countries, ShouldResemble, []string{"USA", "FRA"})
		})

		Convey("And callers cannot change the options through the returned copy", func() {
			o := store.Options()
			o.Countries[0] = "GER"
			So(store.Options().Countries[0], ShouldEqual, "USA")
		})

		Convey("And the default filter context selects the podium medals", func() {
			ctx := store.Options().Defaults()
			So(ctx.Medals.Has("No medal"), ShouldBeFalse)
			So(ctx.Countries.Has("FRA"), ShouldBeTrue)
		})
	})

	Convey("Given no records", t, func() {
		store := NewMemoryStore(nil)

		Convey("Then the store is empty but usable", func() {
			So(store.Len(), ShouldEqual, 0)
			So(store.Records(), ShouldNotBeNil)
			o := store.Options()
			So(o.YearMin, ShouldEqual, 0)
			So(o.Sexes, ShouldBeEmpty)
		})
	})
}
