package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		cmp, err := Compare("v0.36.0", "0.33.0")
		So(err, ShouldBeNil)
		So(cmp, ShouldEqual, 1)

		cmp, err = Compare("0.33.0", "0.33.0")
		So(err, ShouldBeNil)
		So(cmp, ShouldEqual, 0)

		cmp, err = Compare("0.32.9", "0.33.0")
		So(err, ShouldBeNil)
		So(cmp, ShouldEqual, -1)

		_, err = Compare("latest", "0.33.0")
		So(err, ShouldNotBeNil)
	})
}

func TestSupportsMPV(t *testing.T) {
	Convey("Given mpv-version strings", t, func() {
		Convey("Release and development builds should parse", func() {
			release, err := ParseMPV("mpv v0.37.0-476-g7d5a2a1")
			So(err, ShouldBeNil)
			So(release, ShouldEqual, "0.37.0")

			release, err = ParseMPV("mpv 0.34")
			So(err, ShouldBeNil)
			So(release, ShouldEqual, "0.34.0")
		})

		Convey("Old releases should be refused", func() {
			ok, err := SupportsMPV("mpv 0.32.0")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			ok, err = SupportsMPV("mpv 0.38.0")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Builds without a release number should be accepted", func() {
			ok, err := SupportsMPV("mpv UNKNOWN")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = SupportsMPV("mpv git-2023-01-01-abcdef")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Garbage should fail", func() {
			_, err := SupportsMPV("player")
			So(err, ShouldNotBeNil)
		})
	})
}
