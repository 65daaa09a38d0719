package p4wq

import (
	"context"
	"fmt"
	"runtime"
)

// Worker is one execution context of a Queue. Its dispatch priority and
// deadline mirror the item it runs and are only touched under the queue lock.
type Worker struct {
	id    int
	queue *Queue
	wake  chan struct{}

	priority    int
	deadline    int64
	resubmitted bool
	woken       bool
	started     bool
}

type workerKey struct{}

func withWorker(ctx context.Context, wk *Worker) context.Context {
	return context.WithValue(ctx, workerKey{}, wk)
}

func workerFrom(ctx context.Context) *Worker {
	if ctx == nil {
		return nil
	}
	wk, _ := ctx.Value(workerKey{}).(*Worker)
	return wk
}

func (wk *Worker) ID() int {
	return wk.id
}

// Dispatch returns the priority and deadline the worker currently runs at.
func (wk *Worker) Dispatch() (priority int, deadline int64) {
	wk.queue.mu.Lock()
	defer wk.queue.mu.Unlock()
	return wk.priority, wk.deadline
}

// AddWorker provisions one worker at HighestPriority. The worker starts
// right away unless the queue was created with DelayedStart or UserCPUMask.
func (q *Queue) AddWorker() *Worker {
	q.mu.Lock()
	wk := &Worker{
		id:       len(q.workers),
		queue:    q,
		wake:     make(chan struct{}, 1),
		priority: HighestPriority,
	}
	q.workers = append(q.workers, wk)
	delayed := q.flags.delayed()
	q.mu.Unlock()

	if !delayed {
		_ = wk.Start(nil)
	}
	return wk
}

// Start launches a worker that was provisioned with DelayedStart, pinning its
// OS thread to cpus when cpus is not empty. Starting twice is a no-op.
func (wk *Worker) Start(cpus []int) error {
	q := wk.queue
	q.mu.Lock()
	if wk.started || q.closed {
		q.mu.Unlock()
		return nil
	}
	wk.started = true
	q.wg.Add(1)
	q.mu.Unlock()

	errc := make(chan error, 1)
	go wk.loop(cpus, errc)
	if err := <-errc; err != nil {
		q.mu.Lock()
		wk.started = false
		q.mu.Unlock()
		return fmt.Errorf("starting worker %d of %s: %w", wk.id, q.name, err)
	}
	return nil
}

func (wk *Worker) ready() {
	select {
	case wk.wake <- struct{}{}:
	default:
	}
}

// park must be called with the queue lock held and returns with it held.
func (wk *Worker) park() {
	q := wk.queue
	q.idle = append(q.idle, wk)
	q.mu.Unlock()
	<-wk.wake
	q.mu.Lock()
	if wk.woken {
		wk.woken = false
		q.waking--
	}
}

func (wk *Worker) loop(cpus []int, errc chan<- error) {
	q := wk.queue
	defer q.wg.Done()

	if len(cpus) > 0 {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := setAffinity(cpus); err != nil {
			errc <- err
			return
		}
	}
	errc <- nil

	ctx := withWorker(context.Background(), wk)

	q.mu.Lock()
	for !q.closed {
		w, ok := q.pending.DeleteMax()
		if !ok {
			wk.park()
			continue
		}

		w.state = stateActive
		w.owner = wk
		w.elem = q.active.PushBack(w)
		wk.priority, wk.deadline = w.Priority, w.Deadline
		wk.resubmitted = false
		dispatched := q.event(EventDispatch, w, wk)
		chained := q.chainWake()
		q.mu.Unlock()

		q.emit(dispatched)
		q.emit(chained...)
		wk.run(ctx, w, dispatched.Item)

		q.mu.Lock()
		if wk.resubmitted {
			continue
		}
		q.active.Remove(w.elem)
		w.elem = nil
		w.owner = nil
		w.state = stateUnqueued
		w.queue = nil
		completed := q.event(EventComplete, w, wk)
		if q.doneHandler == nil {
			w.give()
		}
		q.mu.Unlock()

		if q.doneHandler != nil {
			q.doneHandler(w)
		}
		q.emit(completed)
		q.mu.Lock()
	}
	q.mu.Unlock()
}

func (wk *Worker) run(ctx context.Context, w *Work, name string) {
	defer func() {
		if rec := recover(); rec != nil {
			wk.queue.logger().Errorw("work handler panicked", "work", name, "worker", wk.id, "panic", rec)
		}
	}()
	if w.Handler != nil {
		w.Handler(ctx, w)
	}
}
