package p4wq

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

type Option func(q *Queue)

// WithDoneHandler replaces per-item completion tokens with a callback run on
// the completing goroutine with the queue lock released.
func WithDoneHandler(fn func(w *Work)) Option {
	return func(q *Queue) {
		q.doneHandler = fn
	}
}

// WithActiveTarget sets how many items may run in parallel before a new
// submission stops waking idle workers. Defaults to GOMAXPROCS.
func WithActiveTarget(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.target = n
		}
	}
}

func WithFlags(flags Flags) Option {
	return func(q *Queue) {
		q.flags |= flags
	}
}

// WithClock replaces the monotonic tick source used to make deadlines absolute.
func WithClock(clock func() int64) Option {
	return func(q *Queue) {
		if clock != nil {
			q.clock = clock
		}
	}
}

// WithReschedule replaces the yield performed after waking a worker.
func WithReschedule(fn func()) Option {
	return func(q *Queue) {
		if fn != nil {
			q.reschedule = fn
		}
	}
}

func WithObserver(fn func(Event)) Option {
	return func(q *Queue) {
		if fn != nil {
			q.observers = append(q.observers, fn)
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.log = l.Sugar()
		}
	}
}

var epoch = time.Now()

func monotonicTicks() int64 {
	return int64(time.Since(epoch))
}

func defaultTarget() int {
	return runtime.GOMAXPROCS(0)
}
