// Package indicator drives transient on-screen feedback whose visibility is
// decided by how many requests are still outstanding rather than by a flag.
package indicator

import (
	"time"

	"github.com/vidkeys/vidkeys/log"
)

// Scheduler runs delayed actions on the controller's timeline.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Holder keeps a channel active until the returned release func is called.
type Holder interface {
	Hold() (release func())
}

// Counter lets many Begin calls share a single deactivate effect.
//
// Every Begin adds a live token and schedules its removal after the linger
// delay. The channel activates when the first token arrives and deactivates
// only when the last one is gone, so a burst of triggers produces one
// continuous active window ending one delay after the final trigger.
//
// A Counter is not safe for concurrent use; it must only be touched from the
// timeline goroutine.
type Counter struct {
	name       string
	sched      Scheduler
	delay      time.Duration
	activate   func() error
	deactivate func() error
	live       int
}

// NewCounter creates a counter named name. Either callback may be nil.
func NewCounter(name string, sched Scheduler, delay time.Duration, activate, deactivate func() error) *Counter {
	return &Counter{
		name:       name,
		sched:      sched,
		delay:      delay,
		activate:   activate,
		deactivate: deactivate,
	}
}

// Begin extends the active window by one linger delay measured from now.
func (c *Counter) Begin() {
	c.acquire()
	c.sched.After(c.delay, c.release)
}

// Hold adds a token with no scheduled removal. Calling release more than once has no effect.
func (c *Counter) Hold() (release func()) {
	c.acquire()

	var released bool
	return func() {
		if released {
			return
		}
		released = true
		c.release()
	}
}

// Active reports whether any token is outstanding.
func (c *Counter) Active() bool {
	return c.live > 0
}

// Live returns the number of outstanding tokens.
func (c *Counter) Live() int {
	return c.live
}

func (c *Counter) acquire() {
	c.live++
	if c.live == 1 {
		c.emit("activate", c.activate)
	}
}

func (c *Counter) release() {
	if c.live == 0 {
		return
	}

	c.live--
	if c.live == 0 {
		c.emit("deactivate", c.deactivate)
	}
}

func (c *Counter) emit(transition string, fn func() error) bool {
	if fn == nil {
		return true
	}

	if err := fn(); err != nil {
		log.WithFields(log.Fields{"channel": c.name, "transition": transition}).Warn(err)
		return false
	}

	return true
}
