// Package controller wires the key dispatcher, the transient indicators and
// the caption sequencer to one player and runs them on a single timeline.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/vidkeys/vidkeys/captions"
	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/dispatch"
	"github.com/vidkeys/vidkeys/indicator"
	"github.com/vidkeys/vidkeys/log"
	"github.com/vidkeys/vidkeys/player"
	"github.com/vidkeys/vidkeys/timeline"
)

var (
	// ErrTimeout is returned by Attach when no media loads in time.
	ErrTimeout = errors.New("timed out waiting for media")

	// ErrHostMismatch is returned by Attach when the loaded media is outside the configured prefix.
	ErrHostMismatch = errors.New("media is outside the configured prefix")
)

// Host is what the controller needs from a player.
type Host interface {
	dispatch.Playback
	indicator.Surface

	MediaPath() (string, error)
	BindKeys(symbols []string) error
	UnbindKeys() error
}

// Runner is a long-running part of a session, such as an event listener or a
// UI. A runner returning ends the session.
type Runner func(ctx context.Context) error

// Controller owns every component of a session. Create it with New, call
// Attach once, then Run; Detach releases the player.
type Controller struct {
	host       Host
	opts       Options
	sched      *timeline.Scheduler
	indicators *indicator.Manager
	sequencer  *captions.Sequencer
	dispatcher *dispatch.Dispatcher

	mu       sync.Mutex
	status   Status
	onStatus func(Status)

	attached bool
	bound    bool
}

// New builds a controller for host. surface toggles captions.
func New(host Host, surface captions.Surface, opts Options) *Controller {
	c := &Controller{
		host:  host,
		opts:  opts,
		sched: timeline.New(opts.Clock),
	}

	c.indicators = indicator.NewManager(observedSurface{Surface: host, changed: c.refreshIndicators}, c.sched, opts.Linger)
	c.sequencer = captions.New(c.sched, surface, c.indicators.Progress(), captions.Options{
		StepDelay:    opts.StepDelay,
		Overlap:      opts.Overlap,
		Snapshot:     host.Paused,
		OnTransition: c.captionsChanged,
	})
	c.dispatcher = dispatch.New(host, c.indicators, c.sequencer, opts.Dispatch)

	return c
}

// Keymap returns the bindings the controller dispatches.
func (c *Controller) Keymap() *dispatch.Keymap {
	return c.dispatcher.Keymap()
}

// Scheduler returns the timeline every component runs on.
func (c *Controller) Scheduler() *timeline.Scheduler {
	return c.sched
}

// OnStatus registers fn to receive every status change, replacing any
// earlier one. fn runs on the goroutine that made the change.
func (c *Controller) OnStatus(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// Status returns the latest status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Attach waits until the player has media loaded, checks it against the
// configured prefix and takes over the command keys in the player window.
func (c *Controller) Attach(ctx context.Context) error {
	if c.attached {
		return nil
	}

	path, err := c.waitForMedia(ctx)
	if err != nil {
		return err
	}

	if c.opts.MediaPrefix != "" && !strings.HasPrefix(path, c.opts.MediaPrefix) {
		return fmt.Errorf("%w: %s", ErrHostMismatch, path)
	}

	if c.opts.BindKeys {
		if err := c.host.BindKeys(c.symbols()); err != nil {
			return fmt.Errorf("bind keys: %w", err)
		}
		c.bound = true
	}

	c.attached = true
	c.seed(path)

	log.WithFields(log.Fields{"media": path, "keys": c.bound}).Info("attached")
	return nil
}

func (c *Controller) waitForMedia(ctx context.Context) (string, error) {
	clock := c.opts.Clock
	deadline := clock.After(c.opts.WaitTimeout)

	for {
		path, err := c.host.MediaPath()
		if err == nil {
			return path, nil
		}

		if !errors.Is(err, player.ErrPropertyUnavailable) {
			return "", fmt.Errorf("wait for media: %w", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline:
			return "", fmt.Errorf("%w after %s", ErrTimeout, c.opts.WaitTimeout)
		case <-clock.After(c.opts.PollInterval):
		}
	}
}

// symbols lists every key symbol of the keymap.
func (c *Controller) symbols() []string {
	return keymapSymbols(c.Keymap())
}

func keymapSymbols(k *dispatch.Keymap) []string {
	return lo.FlatMap(k.Bindings(), func(b key.Binding, _ int) []string {
		return b.Keys()
	})
}

// seed reads the initial playback state. Missing properties leave zero values.
func (c *Controller) seed(path string) {
	c.update(func(s *Status) {
		s.Media = path
		s.Paused, _ = c.host.Paused()
		s.Position, _ = c.host.Position()
		s.Fullscreen, _ = c.host.Fullscreen()
		if rate, err := c.host.Rate(); err == nil {
			s.Rate = rate
		}
	})
}

// Press queues the command bound to symbol. It reports whether symbol is bound.
func (c *Controller) Press(symbol string) bool {
	if _, ok := c.Keymap().Lookup(symbol); !ok {
		return false
	}

	c.sched.Post(func() {
		if _, err := c.dispatcher.Dispatch(symbol); err != nil {
			log.WithFields(log.Fields{"key": symbol}).Warnf("command failed: %v", err)
			c.update(func(s *Status) { s.Err = err })
		}
	})
	return true
}

// HandleEvent applies a player event. Key messages are dispatched like Press.
func (c *Controller) HandleEvent(event player.Event) {
	if symbol, ok := event.ScriptMessage(constant.ScriptMessageTarget); ok {
		c.Press(symbol)
		return
	}

	c.sched.Post(func() {
		c.update(func(s *Status) { s.apply(event) })
	})
}

// Run drives the session until ctx is done or the first runner returns.
// The first runner error, if any, is returned.
func (c *Controller) Run(ctx context.Context, runners ...Runner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.sched.Run(gctx)
	})

	for _, run := range runners {
		run := run
		g.Go(func() error {
			defer cancel()
			return run(gctx)
		})
	}

	return g.Wait()
}

// Detach drops every pending action, hides what the indicators were showing
// and gives the command keys back to the player.
func (c *Controller) Detach() error {
	if !c.attached {
		return nil
	}
	c.attached = false

	c.sched.Close()

	var errs []error
	if c.indicators.OverlayActive() {
		errs = append(errs, c.host.SetOverlay(false))
	}
	if c.indicators.Message() != "" {
		errs = append(errs, c.host.ClearToast())
	}

	if c.bound {
		c.bound = false
		errs = append(errs, c.host.UnbindKeys())
	}

	err := errors.Join(errs...)
	if errors.Is(err, player.ErrNotRunning) {
		// nothing left to restore
		return nil
	}

	log.Info("detached")
	return err
}

func (c *Controller) refreshIndicators() {
	c.update(func(s *Status) {
		s.Overlay = c.indicators.OverlayActive()
		s.Message = c.indicators.Message()
	})
}

func (c *Controller) captionsChanged(state captions.State) {
	c.update(func(s *Status) { s.Captions = state })
}

func (c *Controller) update(fn func(*Status)) {
	c.mu.Lock()
	fn(&c.status)
	status, notify := c.status, c.onStatus
	c.mu.Unlock()

	if notify != nil {
		notify(status)
	}
}

// observedSurface reports every successful change to the indicator surface.
type observedSurface struct {
	indicator.Surface
	changed func()
}

func (o observedSurface) SetOverlay(active bool) error {
	return o.after(o.Surface.SetOverlay(active))
}

func (o observedSurface) ShowToast(text string) error {
	return o.after(o.Surface.ShowToast(text))
}

func (o observedSurface) ClearToast() error {
	return o.after(o.Surface.ClearToast())
}

func (o observedSurface) after(err error) error {
	if err == nil {
		o.changed()
	}
	return err
}
