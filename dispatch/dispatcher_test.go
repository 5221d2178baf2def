package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidkeys/vidkeys/indicator"
	"github.com/vidkeys/vidkeys/timeline"
)

type fakePlayback struct {
	paused     bool
	position   float64
	rate       float64
	fullscreen bool
	failReads  bool
	pauseCalls []bool
}

var errUnreachable = errors.New("player unreachable")

func (p *fakePlayback) Paused() (bool, error) {
	if p.failReads {
		return false, errUnreachable
	}
	return p.paused, nil
}

func (p *fakePlayback) SetPaused(paused bool) error {
	p.pauseCalls = append(p.pauseCalls, paused)
	p.paused = paused
	return nil
}

func (p *fakePlayback) Position() (float64, error) {
	if p.failReads {
		return 0, errUnreachable
	}
	return p.position, nil
}

func (p *fakePlayback) SetPosition(seconds float64) error {
	p.position = seconds
	return nil
}

func (p *fakePlayback) Rate() (float64, error) {
	if p.failReads {
		return 0, errUnreachable
	}
	return p.rate, nil
}

func (p *fakePlayback) SetRate(rate float64) error {
	p.rate = rate
	return nil
}

func (p *fakePlayback) Fullscreen() (bool, error) { return p.fullscreen, nil }
func (p *fakePlayback) SetFullscreen(on bool) error {
	p.fullscreen = on
	return nil
}

type fakeFeedback struct {
	seeks    int
	messages []string
}

func (f *fakeFeedback) BeginSeekFeedback()      { f.seeks++ }
func (f *fakeFeedback) ShowMessage(text string) { f.messages = append(f.messages, text) }

type fakeCaptions struct {
	snapshots []bool
}

func (c *fakeCaptions) Toggle(paused bool) { c.snapshots = append(c.snapshots, paused) }

func TestDispatcher(t *testing.T) {
	Convey("Given a dispatcher over fake collaborators", t, func() {
		playback := &fakePlayback{position: 60, rate: 1}
		feedback := &fakeFeedback{}
		captions := &fakeCaptions{}
		d := New(playback, feedback, captions, DefaultOptions)

		Convey("Arrow keys should seek by the step and show the progress overlay", func() {
			handled, err := d.Dispatch("left")
			So(handled, ShouldBeTrue)
			So(err, ShouldBeNil)
			So(playback.position, ShouldEqual, 55)

			_, _ = d.Dispatch("right")
			_, _ = d.Dispatch("right")
			So(playback.position, ShouldEqual, 65)
			So(feedback.seeks, ShouldEqual, 3)
		})

		Convey("Seeking back should not go below zero", func() {
			playback.position = 3
			_, err := d.Dispatch("left")
			So(err, ShouldBeNil)
			So(playback.position, ShouldEqual, 0)
		})

		Convey("Space should invert the paused flag", func() {
			_, _ = d.Dispatch(" ")
			So(playback.paused, ShouldBeTrue)
			_, _ = d.Dispatch("space")
			So(playback.paused, ShouldBeFalse)
			So(playback.pauseCalls, ShouldResemble, []bool{true, false})
		})

		Convey("f should toggle fullscreen", func() {
			_, _ = d.Dispatch("f")
			So(playback.fullscreen, ShouldBeTrue)
			_, _ = d.Dispatch("f")
			So(playback.fullscreen, ShouldBeFalse)
		})

		Convey("c should hand the current snapshot to the captions sequencer", func() {
			playback.paused = true
			_, _ = d.Dispatch("c")
			playback.paused = false
			_, _ = d.Dispatch("c")
			So(captions.snapshots, ShouldResemble, []bool{true, false})
		})

		Convey("Rate keys should step the rate and show it", func() {
			_, _ = d.Dispatch(">")
			_, _ = d.Dispatch(">")
			_, _ = d.Dispatch("<")
			So(playback.rate, ShouldEqual, 1.25)
			So(feedback.messages, ShouldResemble, []string{"1.25x", "1.50x", "1.25x"})
		})

		Convey("A rate step beyond the upper bound should be a silent no-op", func() {
			playback.rate = 16
			handled, err := d.Dispatch(">")
			So(handled, ShouldBeTrue)
			So(err, ShouldBeNil)
			So(playback.rate, ShouldEqual, 16)
			So(feedback.messages, ShouldBeEmpty)
		})

		Convey("A rate step below zero should be a silent no-op", func() {
			playback.rate = 0.1
			_, err := d.Dispatch("<")
			So(err, ShouldBeNil)
			So(playback.rate, ShouldEqual, 0.1)
			So(feedback.messages, ShouldBeEmpty)
		})

		Convey("The bounds themselves should be reachable", func() {
			playback.rate = 15.75
			_, _ = d.Dispatch(">")
			So(playback.rate, ShouldEqual, 16)

			playback.rate = 0.25
			_, _ = d.Dispatch("<")
			So(playback.rate, ShouldEqual, 0)
			So(feedback.messages, ShouldResemble, []string{"16.00x", "0.00x"})
		})

		Convey("Unbound symbols should be left unhandled", func() {
			handled, err := d.Dispatch("x")
			So(handled, ShouldBeFalse)
			So(err, ShouldBeNil)
		})

		Convey("Player errors should be returned wrapped", func() {
			playback.failReads = true
			_, err := d.Dispatch("c")
			So(errors.Is(err, errUnreachable), ShouldBeTrue)
			So(captions.snapshots, ShouldBeEmpty)
		})
	})
}

type recordingSurface struct {
	clock  clockwork.Clock
	start  time.Time
	shown  []time.Duration
	hidden []time.Duration
}

func (r *recordingSurface) SetOverlay(active bool) error {
	at := r.clock.Now().Sub(r.start)
	if active {
		r.shown = append(r.shown, at)
	} else {
		r.hidden = append(r.hidden, at)
	}
	return nil
}

func (r *recordingSurface) ShowToast(string) error { return nil }
func (r *recordingSurface) ClearToast() error      { return nil }

func TestSeekBurst(t *testing.T) {
	Convey("Given two seek-backs 100ms apart", t, func() {
		clock := clockwork.NewFakeClock()
		sched := timeline.New(clock)
		surface := &recordingSurface{clock: clock, start: clock.Now()}
		manager := indicator.NewManager(surface, sched, time.Second)
		playback := &fakePlayback{position: 120, rate: 1}
		d := New(playback, manager, &fakeCaptions{}, DefaultOptions)

		_, _ = d.Dispatch("left")
		sched.Advance(clock, 100*time.Millisecond)
		_, _ = d.Dispatch("left")
		sched.Advance(clock, 3*time.Second)

		Convey("The overlay should show once and hide once, a second after the last seek", func() {
			So(surface.shown, ShouldResemble, []time.Duration{0})
			So(surface.hidden, ShouldResemble, []time.Duration{1100 * time.Millisecond})
		})

		Convey("The position should have moved back ten seconds", func() {
			So(playback.position, ShouldEqual, 110)
		})
	})
}

func TestKeymap(t *testing.T) {
	Convey("Given the default keymap", t, func() {
		k := NewKeymap(DefaultOptions)

		Convey("Every command should be reachable", func() {
			for _, c := range Commands() {
				So(k.Binding(c).Keys(), ShouldNotBeEmpty)
				got, ok := k.Lookup(k.Binding(c).Keys()[0])
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, c)
			}
		})

		Convey("Help should mention the configured steps", func() {
			So(k.Binding(SeekBackward).Help().Desc, ShouldEqual, "back 5s")
			So(k.Binding(RateUp).Help().Desc, ShouldEqual, "speed +0.25")
		})

		Convey("Describe should list commands in help order", func() {
			infos := k.Describe()
			So(infos, ShouldHaveLength, len(Commands()))
			So(infos[0].Command, ShouldEqual, "seek-backward")
		})
	})
}
