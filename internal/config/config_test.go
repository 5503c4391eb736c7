package config_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/sundayfc/matchday/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DBPath, convey.ShouldBeEmpty)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
			convey.So(cfg.Shuffle, convey.ShouldBeFalse)
		})

		convey.Convey("Then the default tag weights match the balancer", func() {
			convey.So(cfg.TagWeights["PLAYMAKER"], convey.ShouldEqual, 100)
			convey.So(cfg.TagWeights["RUNNER"], convey.ShouldEqual, 80)
			convey.So(cfg.TagWeights["DEF"], convey.ShouldEqual, 40)
			convey.So(cfg.TagWeights["ATK"], convey.ShouldEqual, 20)
		})
	})
}
