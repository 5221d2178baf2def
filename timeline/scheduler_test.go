package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler on a fake clock", t, func() {
		clock := clockwork.NewFakeClock()
		s := New(clock)
		start := clock.Now()

		var fired []string
		at := map[string]time.Duration{}
		record := func(name string) func() {
			return func() {
				fired = append(fired, name)
				at[name] = clock.Now().Sub(start)
			}
		}

		Convey("Tasks should run in due order", func() {
			s.After(300*time.Millisecond, record("c"))
			s.After(100*time.Millisecond, record("a"))
			s.After(200*time.Millisecond, record("b"))

			s.Advance(clock, time.Second)
			So(fired, ShouldResemble, []string{"a", "b", "c"})
			So(at["b"], ShouldEqual, 200*time.Millisecond)
		})

		Convey("Tasks with equal due times should run in scheduling order", func() {
			s.After(time.Second, record("first"))
			s.After(time.Second, record("second"))
			s.After(time.Second, record("third"))

			s.Advance(clock, time.Second)
			So(fired, ShouldResemble, []string{"first", "second", "third"})
		})

		Convey("Nothing should run before it is due", func() {
			s.After(time.Second, record("late"))
			s.Advance(clock, 999*time.Millisecond)
			So(fired, ShouldBeEmpty)
			So(s.Pending(), ShouldEqual, 1)

			s.Advance(clock, time.Millisecond)
			So(fired, ShouldResemble, []string{"late"})
			So(s.Pending(), ShouldEqual, 0)
		})

		Convey("Tasks scheduled by tasks should be measured from when they ran", func() {
			s.After(200*time.Millisecond, func() {
				record("outer")()
				s.After(200*time.Millisecond, record("inner"))
			})

			s.Advance(clock, time.Second)
			So(at["outer"], ShouldEqual, 200*time.Millisecond)
			So(at["inner"], ShouldEqual, 400*time.Millisecond)
		})

		Convey("Post should run on the next flush", func() {
			s.Post(record("posted"))
			So(s.Flush(), ShouldEqual, 1)
			So(fired, ShouldResemble, []string{"posted"})
		})

		Convey("Close should drop pending and future tasks", func() {
			s.After(time.Millisecond, record("dropped"))
			s.Close()
			s.After(time.Millisecond, record("refused"))

			s.Advance(clock, time.Second)
			So(fired, ShouldBeEmpty)
			So(s.Pending(), ShouldEqual, 0)
		})
	})

	Convey("Given a running scheduler on the real clock", t, func() {
		s := New(clockwork.NewRealClock())
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		ran := make(chan struct{})
		s.After(10*time.Millisecond, func() { close(ran) })

		Convey("The task should fire and Run should stop on cancel", func() {
			select {
			case <-ran:
			case <-time.After(2 * time.Second):
				t.Fatal("task did not run")
			}

			cancel()
			So(<-done, ShouldBeNil)
		})
	})
}
