package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/controller"
	"github.com/vidkeys/vidkeys/dispatch"
	"github.com/vidkeys/vidkeys/internal/ui"
)

type fakeDriver struct {
	keymap  *dispatch.Keymap
	pressed []string
}

func (d *fakeDriver) Press(symbol string) bool {
	if _, ok := d.keymap.Lookup(symbol); !ok {
		return false
	}
	d.pressed = append(d.pressed, symbol)
	return true
}

func (d *fakeDriver) Keymap() *dispatch.Keymap { return d.keymap }
func (d *fakeDriver) Status() controller.Status { return controller.Status{Rate: 1} }
func (d *fakeDriver) OnStatus(func(controller.Status)) {}

func TestBubble(t *testing.T) {
	Convey("Given the status view", t, func() {
		driver := &fakeDriver{keymap: dispatch.NewKeymap(dispatch.DefaultOptions)}
		b := newBubble(driver, Options{Socket: "/tmp/mpv.sock"})

		Convey("Command keys should be forwarded", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'>'}})
			b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

			So(driver.pressed, ShouldResemble, []string{"left", ">"})
		})

		Convey("q should quit", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, tea.Quit())
		})

		Convey("Status updates should render", func() {
			b.Update(statusMsg(controller.Status{
				Media:    "/media/film.mkv",
				Paused:   true,
				Position: 3725,
				Rate:     1.5,
				Message:  "1.50x",
				Captions: captions.Opened,
			}))

			view := b.View()
			So(view, ShouldContainSubstring, "film.mkv")
			So(view, ShouldContainSubstring, "1:02:05")
			So(view, ShouldContainSubstring, "1.50x")
			So(view, ShouldContainSubstring, "opened")
		})

		Convey("A new command failure should notify once", func() {
			err := errors.New("seek: mpv is not running")

			_, cmd := b.Update(statusMsg(controller.Status{Err: err}))
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldResemble, ui.NotifyMsg{Text: err.Error()})

			_, cmd = b.Update(statusMsg(controller.Status{Err: err, Rate: 2}))
			So(cmd, ShouldBeNil)
		})
	})

	Convey("formatPosition", t, func() {
		So(formatPosition(0), ShouldEqual, "0:00")
		So(formatPosition(65.9), ShouldEqual, "1:05")
		So(formatPosition(3600), ShouldEqual, "1:00:00")
	})
}
