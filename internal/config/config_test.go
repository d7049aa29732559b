package config_test

import (
	"errors"
	"testing"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DatasetPath, convey.ShouldEqual, "modified_dataset.csv")
			convey.So(cfg.FilterAllViews, convey.ShouldBeTrue)
			convey.So(cfg.VideoURL, convey.ShouldStartWith, "https://www.youtube.com/")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with missing required fields", t, func() {
		convey.Convey("Then an empty addr is invalid", func() {
			cfg := config.New()
			cfg.Addr = " "
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Then an empty dataset path is invalid", func() {
			cfg := config.New()
			cfg.DatasetPath = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("Then an unknown log format is invalid", func() {
			cfg := config.New()
			cfg.LogFormat = "logfmt"
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "logfmt")
		})

		convey.Convey("Then JSON logging is accepted in any case", func() {
			cfg := config.New()
			cfg.LogFormat = "JSON"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
