// Package captions toggles captions on players whose caption control can only
// be reached through their own settings UI.
//
// A toggle is a short timed sequence: open the caption settings, commit the
// toggle, close the settings again. Opening the settings pauses a playing
// video, so when playback is active the sequence first forces the player
// controls visible and resumes playback right after opening.
package captions

import (
	"fmt"
	"time"

	"github.com/vidkeys/vidkeys/indicator"
	"github.com/vidkeys/vidkeys/log"
)

// Surface is the capability the sequencer drives. Implementations decide how
// each action is realized against a given player.
type Surface interface {
	OpenSettings() error
	CommitToggle() error
	CloseSettings() error
	ResumePlayback() error
}

// State is the position of the sequencer inside a toggle.
type State int

const (
	Idle State = iota
	Preparing
	Opened
	Committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case Opened:
		return "opened"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Overlap decides what happens to a toggle requested while another is running.
type Overlap string

const (
	// Queue runs the request after the current sequence, with a fresh playback snapshot.
	Queue Overlap = "queue"
	// Ignore drops the request.
	Ignore Overlap = "ignore"
)

// ParseOverlap validates a configured overlap policy.
func ParseOverlap(s string) (Overlap, error) {
	switch o := Overlap(s); o {
	case Queue, Ignore:
		return o, nil
	default:
		return "", fmt.Errorf("unknown caption overlap policy %q", s)
	}
}

// Options tune a Sequencer.
type Options struct {
	// StepDelay separates consecutive steps. It has to outlast the player's own render latency.
	StepDelay time.Duration

	Overlap Overlap

	// Snapshot reads whether playback is paused when a queued toggle starts.
	// Without it queued toggles are dropped.
	Snapshot func() (bool, error)

	// OnTransition, if set, observes every state change.
	OnTransition func(State)
}

type step struct {
	state  State
	delay  time.Duration
	action func() error
}

// Sequencer runs caption toggles one at a time.
//
// It is not safe for concurrent use; every method must be called from the
// timeline goroutine.
type Sequencer struct {
	sched   indicator.Scheduler
	surface Surface
	overlay indicator.Holder
	opts    Options

	state     State
	release   func()
	pending   int
	completed int
}

// New creates a sequencer. overlay is held visible while a toggle runs during playback.
func New(sched indicator.Scheduler, surface Surface, overlay indicator.Holder, opts Options) *Sequencer {
	if opts.Overlap == "" {
		opts.Overlap = Queue
	}

	return &Sequencer{
		sched:   sched,
		surface: surface,
		overlay: overlay,
		opts:    opts,
	}
}

// Toggle starts a caption toggle for the given playback snapshot.
func (s *Sequencer) Toggle(paused bool) {
	if s.state != Idle {
		if s.opts.Overlap == Queue && s.opts.Snapshot != nil {
			s.pending++
			log.Debugf("caption toggle queued behind %s sequence (%d waiting)", s.state, s.pending)
			return
		}

		log.Debugf("caption toggle ignored: sequence %s", s.state)
		return
	}

	s.start(paused)
}

// State returns the current position inside the running toggle.
func (s *Sequencer) State() State {
	return s.state
}

// Busy reports whether a toggle is running.
func (s *Sequencer) Busy() bool {
	return s.state != Idle
}

// Pending returns the number of queued toggles.
func (s *Sequencer) Pending() int {
	return s.pending
}

// Completed returns the number of toggles that ran to the end.
func (s *Sequencer) Completed() int {
	return s.completed
}

func (s *Sequencer) start(paused bool) {
	d := s.opts.StepDelay

	if paused {
		s.run([]step{
			{state: Opened, action: s.surface.OpenSettings},
			{state: Committed, delay: d, action: s.surface.CommitToggle},
			{state: Idle, delay: d, action: s.surface.CloseSettings},
		})
		return
	}

	s.run([]step{
		{state: Preparing, action: s.hold},
		{state: Opened, delay: d, action: s.openAndResume},
		{state: Committed, delay: d, action: s.surface.CommitToggle},
		{state: Idle, delay: d, action: s.closeAndRelease},
	})
}

func (s *Sequencer) run(steps []step) {
	current := steps[0]
	if err := current.action(); err != nil {
		s.abort(current.state, err)
		return
	}

	if len(steps) == 1 {
		s.finish()
		return
	}

	s.transition(current.state)
	next := steps[1:]
	s.sched.After(next[0].delay, func() { s.run(next) })
}

func (s *Sequencer) hold() error {
	s.release = s.overlay.Hold()
	return nil
}

func (s *Sequencer) openAndResume() error {
	if err := s.surface.OpenSettings(); err != nil {
		return err
	}
	return s.surface.ResumePlayback()
}

func (s *Sequencer) closeAndRelease() error {
	err := s.surface.CloseSettings()
	s.releaseOverlay()
	return err
}

func (s *Sequencer) releaseOverlay() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

func (s *Sequencer) finish() {
	s.completed++
	s.transition(Idle)
	s.next()
}

func (s *Sequencer) abort(during State, err error) {
	log.WithFields(log.Fields{"step": during.String()}).Warnf("caption toggle abandoned: %v", err)
	s.releaseOverlay()
	s.transition(Idle)
	s.next()
}

func (s *Sequencer) next() {
	if s.pending == 0 {
		return
	}
	s.pending--

	paused, err := s.opts.Snapshot()
	if err != nil {
		log.Warnf("caption toggle dropped: read playback state: %v", err)
		s.next()
		return
	}

	s.start(paused)
}

func (s *Sequencer) transition(to State) {
	s.state = to
	if s.opts.OnTransition != nil {
		s.opts.OnTransition(to)
	}
}
