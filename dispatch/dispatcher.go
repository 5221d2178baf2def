// Package dispatch maps key presses to player commands and applies the
// guards each command needs before touching the player.
package dispatch

import (
	"fmt"

	"github.com/vidkeys/vidkeys/util"
)

// Playback is the native playback primitive of the player.
type Playback interface {
	Paused() (bool, error)
	SetPaused(paused bool) error
	Position() (float64, error)
	SetPosition(seconds float64) error
	Rate() (float64, error)
	SetRate(rate float64) error
	Fullscreen() (bool, error)
	SetFullscreen(on bool) error
}

// Feedback shows transient cues for commands.
type Feedback interface {
	BeginSeekFeedback()
	ShowMessage(text string)
}

// CaptionToggler toggles captions given the playback state at the time of the key press.
type CaptionToggler interface {
	Toggle(paused bool)
}

// Options hold the step sizes and bounds of the commands.
type Options struct {
	SeekStep float64
	RateStep float64
	RateMin  float64
	RateMax  float64
}

// DefaultOptions matches the factory configuration.
var DefaultOptions = Options{
	SeekStep: 5,
	RateStep: 0.25,
	RateMin:  0,
	RateMax:  16,
}

// Dispatcher applies commands synchronously.
type Dispatcher struct {
	playback Playback
	feedback Feedback
	captions CaptionToggler
	keymap   *Keymap
	opts     Options
}

// New creates a dispatcher.
func New(playback Playback, feedback Feedback, captions CaptionToggler, opts Options) *Dispatcher {
	return &Dispatcher{
		playback: playback,
		feedback: feedback,
		captions: captions,
		keymap:   NewKeymap(opts),
		opts:     opts,
	}
}

// Keymap returns the bindings used to resolve symbols.
func (d *Dispatcher) Keymap() *Keymap {
	return d.keymap
}

// Dispatch runs the command bound to symbol. handled is false for unbound
// symbols, which callers should let through to their default behavior.
func (d *Dispatcher) Dispatch(symbol string) (handled bool, err error) {
	cmd, ok := d.keymap.Lookup(symbol)
	if !ok {
		return false, nil
	}
	return true, d.Execute(cmd)
}

// Execute runs a single command.
func (d *Dispatcher) Execute(cmd Command) error {
	switch cmd {
	case SeekBackward:
		return d.seek(-d.opts.SeekStep)
	case SeekForward:
		return d.seek(d.opts.SeekStep)
	case PlayPause:
		return d.togglePause()
	case Fullscreen:
		return d.toggleFullscreen()
	case Captions:
		return d.toggleCaptions()
	case RateDown:
		return d.stepRate(-d.opts.RateStep)
	case RateUp:
		return d.stepRate(d.opts.RateStep)
	default:
		return fmt.Errorf("unknown command %s", cmd)
	}
}

func (d *Dispatcher) seek(offset float64) error {
	d.feedback.BeginSeekFeedback()

	pos, err := d.playback.Position()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	if err := d.playback.SetPosition(util.Max(pos+offset, 0)); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

func (d *Dispatcher) togglePause() error {
	paused, err := d.playback.Paused()
	if err != nil {
		return fmt.Errorf("play/pause: %w", err)
	}
	return d.playback.SetPaused(!paused)
}

func (d *Dispatcher) toggleFullscreen() error {
	on, err := d.playback.Fullscreen()
	if err != nil {
		return fmt.Errorf("fullscreen: %w", err)
	}
	return d.playback.SetFullscreen(!on)
}

func (d *Dispatcher) toggleCaptions() error {
	paused, err := d.playback.Paused()
	if err != nil {
		return fmt.Errorf("captions: %w", err)
	}

	d.captions.Toggle(paused)
	return nil
}

// stepRate silently ignores steps that would leave the allowed range.
func (d *Dispatcher) stepRate(step float64) error {
	rate, err := d.playback.Rate()
	if err != nil {
		return fmt.Errorf("rate: %w", err)
	}

	proposed := rate + step
	if proposed < d.opts.RateMin || proposed > d.opts.RateMax {
		return nil
	}

	if err := d.playback.SetRate(proposed); err != nil {
		return fmt.Errorf("rate: %w", err)
	}

	d.feedback.ShowMessage(FormatRate(proposed))
	return nil
}

// FormatRate renders a playback rate the way the rate toast shows it.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2fx", rate)
}
