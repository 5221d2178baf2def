package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidkeys/vidkeys/filesystem"
	"github.com/vidkeys/vidkeys/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should expose the coordinator timings as durations", func() {
			_ = Setup()
			So(Linger(), ShouldEqual, time.Second)
			So(StepDelay(), ShouldEqual, 200*time.Millisecond)
			So(WaitTimeout(), ShouldEqual, 30*time.Second)
		})

		Convey("Should keep the rate bounds used by the dispatcher", func() {
			_ = Setup()
			So(viper.GetFloat64(key.PlayerRateMin), ShouldEqual, 0)
			So(viper.GetFloat64(key.PlayerRateMax), ShouldEqual, 16)
			So(viper.GetFloat64(key.PlayerRateStep), ShouldEqual, 0.25)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("captions.step_delay")
			So(result, ShouldEqual, "captions_step_delay")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlayerRateStep]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "VIDKEYS_PLAYER_RATE_STEP")
		})

		Convey("typeName should report floats", func() {
			So(field.typeName(), ShouldEqual, "float")
		})
	})
}
