package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with the default refresh interval", func() {
				So(manager, ShouldNotBeNil)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("edge"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(3*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.datasetRecords.Set(42)

			Convey("Then collectors use the namespace, subsystem and prefix", func() {
				So(manager.RefreshInterval(), ShouldEqual, 3*time.Second)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_edge_dataset_records" {
						found = true
						So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 42)
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When a dataset is loaded", func() {
			RecordDatasetLoaded(1234, 80*time.Millisecond)

			Convey("Then the record gauge reflects the store size", func() {
				So(testutil.ToFloat64(globalManager.datasetRecords), ShouldEqual, 1234)
			})
		})

		Convey("When a pipeline runs", func() {
			before := testutil.ToFloat64(globalManager.pipelineRuns.WithLabelValues("medal-count-by-country"))
			RecordPipelineRun("medal-count-by-country", 500, 12, 1.5)

			Convey("Then run counter and row gauges are updated", func() {
				after := testutil.ToFloat64(globalManager.pipelineRuns.WithLabelValues("medal-count-by-country"))
				So(after-before, ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.pipelineRows.WithLabelValues("medal-count-by-country")), ShouldEqual, 12)
				So(testutil.ToFloat64(globalManager.filteredRecords.WithLabelValues("medal-count-by-country")), ShouldEqual, 500)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordHTTPRequest("views", "GET", "200")
					RecordHTTPRequestDuration("views", "GET", "200", 4.0)
					RecordErrorByComponent("repository", "open")
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("views", "GET", "not_found")
					RecordPipelineFailure("unknown", "not_found")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then only podium metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "podium_dashboard_"), ShouldBeTrue)
				}
			})
		})
	})
}
