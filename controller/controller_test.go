package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/dispatch"
	"github.com/vidkeys/vidkeys/player"
)

type fakeHost struct {
	mu sync.Mutex

	media      string
	paused     bool
	position   float64
	rate       float64
	fullscreen bool

	overlay bool
	toast   string
	bound   []string
	unbound int
}

func (h *fakeHost) MediaPath() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.media == "" {
		return "", player.ErrPropertyUnavailable
	}
	return h.media, nil
}

func (h *fakeHost) load(media string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.media = media
}

func (h *fakeHost) Paused() (bool, error) { return h.paused, nil }
func (h *fakeHost) SetPaused(p bool) error { h.paused = p; return nil }
func (h *fakeHost) Position() (float64, error) { return h.position, nil }
func (h *fakeHost) SetPosition(s float64) error { h.position = s; return nil }
func (h *fakeHost) Rate() (float64, error) { return h.rate, nil }
func (h *fakeHost) SetRate(r float64) error { h.rate = r; return nil }
func (h *fakeHost) Fullscreen() (bool, error) { return h.fullscreen, nil }
func (h *fakeHost) SetFullscreen(on bool) error { h.fullscreen = on; return nil }
func (h *fakeHost) SetOverlay(active bool) error { h.overlay = active; return nil }
func (h *fakeHost) ShowToast(text string) error { h.toast = text; return nil }
func (h *fakeHost) ClearToast() error { h.toast = ""; return nil }
func (h *fakeHost) BindKeys(symbols []string) error { h.bound = symbols; return nil }
func (h *fakeHost) UnbindKeys() error { h.unbound++; return nil }

type fakeCaptions struct {
	calls []string
}

func (f *fakeCaptions) OpenSettings() error { f.calls = append(f.calls, "open"); return nil }
func (f *fakeCaptions) CommitToggle() error { f.calls = append(f.calls, "commit"); return nil }
func (f *fakeCaptions) CloseSettings() error { f.calls = append(f.calls, "close"); return nil }
func (f *fakeCaptions) ResumePlayback() error { f.calls = append(f.calls, "resume"); return nil }

func testOptions(clock clockwork.Clock) Options {
	return Options{
		Dispatch:     dispatch.DefaultOptions,
		Linger:       time.Second,
		StepDelay:    200 * time.Millisecond,
		Overlap:      captions.Queue,
		BindKeys:     true,
		WaitTimeout:  5 * time.Second,
		PollInterval: 250 * time.Millisecond,
		Clock:        clock,
	}
}

func TestAttach(t *testing.T) {
	Convey("Given a controller on a player with nothing loaded", t, func() {
		clock := clockwork.NewFakeClock()
		host := &fakeHost{rate: 1}
		opts := testOptions(clock)

		attach := func(c *Controller) <-chan error {
			done := make(chan error, 1)
			go func() { done <- c.Attach(context.Background()) }()
			return done
		}

		Convey("Attach should wait until media is observable", func() {
			c := New(host, &fakeCaptions{}, opts)
			done := attach(c)

			clock.BlockUntil(2)
			host.load("/media/film.mkv")
			clock.Advance(opts.PollInterval)

			So(<-done, ShouldBeNil)
			So(host.bound, ShouldContain, "left")
			So(host.bound, ShouldContain, "c")
			So(c.Status().Media, ShouldEqual, "/media/film.mkv")
			So(c.Status().Rate, ShouldEqual, 1)
		})

		Convey("Attach should give up after the wait timeout", func() {
			c := New(host, &fakeCaptions{}, opts)
			done := attach(c)

			clock.BlockUntil(2)
			clock.Advance(opts.WaitTimeout)

			So(errors.Is(<-done, ErrTimeout), ShouldBeTrue)
			So(host.bound, ShouldBeNil)
		})

		Convey("Attach should refuse media outside the prefix", func() {
			host.load("/other/film.mkv")
			opts.MediaPrefix = "/media/"
			c := New(host, &fakeCaptions{}, opts)

			So(errors.Is(c.Attach(context.Background()), ErrHostMismatch), ShouldBeTrue)
			So(host.bound, ShouldBeNil)
		})

		Convey("Attach should not bind keys when disabled", func() {
			host.load("/media/film.mkv")
			opts.BindKeys = false
			c := New(host, &fakeCaptions{}, opts)

			So(c.Attach(context.Background()), ShouldBeNil)
			So(host.bound, ShouldBeNil)

			So(c.Detach(), ShouldBeNil)
			So(host.unbound, ShouldEqual, 0)
		})
	})
}

func TestSession(t *testing.T) {
	Convey("Given an attached controller", t, func() {
		clock := clockwork.NewFakeClock()
		host := &fakeHost{media: "/media/film.mkv", position: 120, rate: 1}
		surface := &fakeCaptions{}
		c := New(host, surface, testOptions(clock))

		var statuses []Status
		c.OnStatus(func(s Status) { statuses = append(statuses, s) })

		So(c.Attach(context.Background()), ShouldBeNil)
		sched := c.Scheduler()

		Convey("Unbound keys should not be consumed", func() {
			So(c.Press("x"), ShouldBeFalse)
			So(sched.Pending(), ShouldEqual, 0)
		})

		Convey("Terminal keys should run on the timeline", func() {
			So(c.Press("left"), ShouldBeTrue)
			So(host.position, ShouldEqual, 120)

			sched.Flush()
			So(host.position, ShouldEqual, 115)
			So(host.overlay, ShouldBeTrue)
			So(c.Status().Overlay, ShouldBeTrue)

			sched.Advance(clock, time.Second)
			So(host.overlay, ShouldBeFalse)
			So(c.Status().Overlay, ShouldBeFalse)
		})

		Convey("Player window keys should dispatch like terminal keys", func() {
			c.HandleEvent(player.Event{Name: "client-message", Args: []string{"vidkeys", ">"}})
			sched.Flush()

			So(host.rate, ShouldEqual, 1.25)
			So(host.toast, ShouldEqual, "1.25x")
			So(c.Status().Message, ShouldEqual, "1.25x")

			sched.Advance(clock, time.Second)
			So(host.toast, ShouldBeEmpty)
			So(c.Status().Message, ShouldBeEmpty)
		})

		Convey("Messages for other clients should be ignored", func() {
			c.HandleEvent(player.Event{Name: "client-message", Args: []string{"other", "left"}})
			sched.Flush()
			So(host.position, ShouldEqual, 120)
		})

		Convey("Property changes should update the status", func() {
			c.HandleEvent(player.Event{Name: "pause", Data: true})
			c.HandleEvent(player.Event{Name: "time-pos", Data: 42.5})
			sched.Flush()

			So(c.Status().Paused, ShouldBeTrue)
			So(c.Status().Position, ShouldEqual, 42.5)
			So(statuses[len(statuses)-1].Position, ShouldEqual, 42.5)
		})

		Convey("Captions should run the playing branch and report each state", func() {
			So(c.Press("c"), ShouldBeTrue)
			sched.Flush()
			So(c.Status().Captions, ShouldEqual, captions.Preparing)
			So(host.overlay, ShouldBeTrue)

			sched.Advance(clock, 600*time.Millisecond)
			So(surface.calls, ShouldResemble, []string{"open", "resume", "commit", "close"})
			So(c.Status().Captions, ShouldEqual, captions.Idle)
			So(host.overlay, ShouldBeFalse)
		})

		Convey("Detach should drop pending work and restore the player", func() {
			c.Press("right")
			c.Press(">")
			sched.Flush()
			So(host.overlay, ShouldBeTrue)
			So(host.toast, ShouldNotBeEmpty)

			So(c.Detach(), ShouldBeNil)
			So(sched.Pending(), ShouldEqual, 0)
			So(host.overlay, ShouldBeFalse)
			So(host.toast, ShouldBeEmpty)
			So(host.unbound, ShouldEqual, 1)

			So(c.Detach(), ShouldBeNil)
			So(host.unbound, ShouldEqual, 1)
		})

		Convey("Run should end when a runner returns", func() {
			So(c.Run(context.Background(), func(ctx context.Context) error { return nil }), ShouldBeNil)

			boom := errors.New("boom")
			c2 := New(host, surface, testOptions(clock))
			err := c2.Run(context.Background(), func(ctx context.Context) error { return boom })
			So(err, ShouldEqual, boom)
		})

		Convey("Run should stop runners when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			stopped := make(chan struct{})

			go func() {
				_ = c.Run(ctx, func(ctx context.Context) error {
					<-ctx.Done()
					close(stopped)
					return nil
				})
			}()

			cancel()
			So(waitClosed(stopped), ShouldBeTrue)
		})
	})
}

func waitClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}
