// Package timeline runs every input event and delayed action of a controller on one logical timeline.
//
// A Scheduler owns a queue of tasks ordered by due time and, for equal due
// times, by the order they were scheduled. Run executes them on a single
// goroutine so that the components built on top never need their own locks.
package timeline

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler is a cooperative, single-consumer task queue.
type Scheduler struct {
	clock clockwork.Clock

	mu     sync.Mutex
	tasks  taskQueue
	seq    uint64
	closed bool

	wake chan struct{}
}

// New creates a scheduler reading time from clock.
func New(clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		wake:  make(chan struct{}, 1),
	}
}

// Clock returns the time source used for due times.
func (s *Scheduler) Clock() clockwork.Clock {
	return s.clock
}

// After schedules fn to run once d has elapsed. Tasks are never cancelled individually.
func (s *Scheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	heap.Push(&s.tasks, &task{due: s.clock.Now().Add(d), seq: s.seq, fn: fn})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Post queues fn to run on the timeline as soon as possible.
// It is safe to call from any goroutine.
func (s *Scheduler) Post(fn func()) {
	s.After(0, fn)
}

// Pending returns the number of tasks that have not run yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Next returns the due time of the earliest pending task.
func (s *Scheduler) Next() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return time.Time{}, false
	}
	return s.tasks[0].due, true
}

// Flush runs every task that is due, including tasks scheduled by those tasks
// with no delay, and returns how many ran.
func (s *Scheduler) Flush() int {
	var ran int
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].due.After(s.clock.Now()) {
			s.mu.Unlock()
			return ran
		}
		t := heap.Pop(&s.tasks).(*task)
		s.mu.Unlock()

		t.fn()
		ran++
	}
}

// Run executes tasks as they become due until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		s.Flush()

		var (
			timer   clockwork.Timer
			timeout <-chan time.Time
		)
		if next, ok := s.Next(); ok {
			timer = s.clock.NewTimer(next.Sub(s.clock.Now()))
			timeout = timer.Chan()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-s.wake:
		case <-timeout:
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// Close discards pending tasks and refuses new ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.tasks = nil
}

// Advance moves a fake clock forward by d, stopping at every due time on the
// way so each task observes the instant it was scheduled for. It is meant for
// schedulers that are not being driven by Run.
func (s *Scheduler) Advance(fc clockwork.FakeClock, d time.Duration) {
	target := fc.Now().Add(d)
	s.Flush()

	for {
		next, ok := s.Next()
		if !ok || next.After(target) {
			break
		}
		if wait := next.Sub(fc.Now()); wait > 0 {
			fc.Advance(wait)
		}
		s.Flush()
	}

	if rest := target.Sub(fc.Now()); rest > 0 {
		fc.Advance(rest)
	}
}
