package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		var m Model

		Convey("It shows the latest notification", func() {
			So(m.Update(NotifyMsg{Text: "first"}), ShouldNotBeNil)
			So(m.Update(NotifyMsg{Text: "second"}), ShouldNotBeNil)
			So(m.Notification(), ShouldEqual, "second")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
			So(m.View("a\nb"), ShouldContainSubstring, "second")
		})

		Convey("A stale clear does not hide a newer notification", func() {
			m.Update(NotifyMsg{Text: "first"})
			m.Update(NotifyMsg{Text: "second"})

			m.Update(ClearNotificationMsg{generation: 1})
			So(m.Notification(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{generation: 2})
			So(m.Notification(), ShouldBeEmpty)
			So(m.View("x"), ShouldEqual, "x")
		})
	})
}
