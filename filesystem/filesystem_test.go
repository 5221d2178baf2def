package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAPI(t *testing.T) {
	Convey("Given the filesystem backend", t, func() {
		Convey("SetOsFs should select the disk", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("SetMemMapFs should start empty and keep writes in memory", func() {
			SetMemMapFs()
			defer SetOsFs()

			So(API().Name(), ShouldEqual, "MemMapFS")

			exists, err := API().Exists("/vidkeys/vidkeys.toml")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)

			So(API().WriteFile("/vidkeys/vidkeys.toml", []byte("[player]\n"), 0o644), ShouldBeNil)
			data, err := API().ReadFile("/vidkeys/vidkeys.toml")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "[player]\n")
		})
	})
}
