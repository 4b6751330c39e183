package config_test

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/mcstats/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.MetricsPath, convey.ShouldEqual, "/metrics")
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "mcstats")
			convey.So(cfg.SelfMetrics, convey.ShouldBeTrue)
			convey.So(cfg.ServerRoot, convey.ShouldEqual, "/minecraft")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.RconPort, convey.ShouldEqual, 25575)
			convey.So(cfg.OnlineTTL(), convey.ShouldEqual, 60*time.Second)
			convey.So(cfg.ModsTTL(), convey.ShouldEqual, 600*time.Second)
			convey.So(cfg.CollectTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.RconEnabled(), convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When RCON host and password are set", func() {
			cfg.RconHost = "mc.local"
			cfg.RconPassword = "secret"

			convey.Convey("Then RCON is enabled with a dial address", func() {
				convey.So(cfg.RconEnabled(), convey.ShouldBeTrue)
				convey.So(cfg.RconAddr(), convey.ShouldEqual, "mc.local:25575")
				convey.So(cfg.RconTimeout(), convey.ShouldEqual, 3*time.Second)
			})

			convey.Convey("And an invalid port fails validation", func() {
				cfg.RconPort = 70000
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the metrics path collides with an operational route", func() {
			for _, path := range []string{"/healthz", "/stats"} {
				cfg.MetricsPath = path
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When the metrics path is relative", func() {
			cfg.MetricsPath = "metrics"

			convey.Convey("Then validation fails", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})
	})
}
