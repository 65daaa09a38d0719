package p4wq

import (
	"container/list"
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/btree"
	"go.uber.org/zap"
)

const treeDegree = 8

var nextSeq atomic.Uint64

// Queue is a pool of workers sharing one priority ordered backlog.
type Queue struct {
	name    string
	mu      sync.Mutex
	pending *btree.BTreeG[*Work]
	active  *list.List
	idle    []*Worker
	workers []*Worker

	doneHandler func(w *Work)
	target      int
	flags       Flags
	clock       func() int64
	reschedule  func()
	observers   []func(Event)
	log         *zap.SugaredLogger

	// waking counts workers woken for an item that have not dispatched yet.
	waking   int
	eventSeq uint64
	closed   bool
	wg       sync.WaitGroup
	once     sync.Once
}

// Stats is a point in time view of a queue.
type Stats struct {
	Name         string
	Workers      int
	Idle         int
	Pending      int
	Active       int
	ActiveTarget int
	Closed       bool
}

func New(name string, opts ...Option) *Queue {
	q := &Queue{
		name:       name,
		pending:    btree.NewG[*Work](treeDegree, treeLess),
		active:     list.New(),
		target:     defaultTarget(),
		clock:      monotonicTicks,
		reschedule: runtime.Gosched,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *Queue) Name() string {
	return q.name
}

func (q *Queue) logger() *zap.SugaredLogger {
	if q.log != nil {
		return q.log.Named("p4wq").With("queue", q.name)
	}
	return zap.S().Named("p4wq").With("queue", q.name)
}

func (q *Queue) activeTarget() int {
	if q.flags&PerWorkerQueue != 0 {
		return 1
	}
	return q.target
}

// Submit queues w and wakes an idle worker when w is now the most urgent
// pending item and fewer than ActiveTarget running items are at least as urgent.
//
// Called from w's own handler with the handler's ctx, Submit re-queues w
// and the running invocation does not signal completion. Submitting an item
// that is pending, or running on another worker or queue, panics.
func (q *Queue) Submit(ctx context.Context, w *Work) {
	q.mu.Lock()
	kind := EventSubmit
	if wk := workerFrom(ctx); wk != nil && w.state == stateActive && w.owner == wk && w.queue == q {
		q.active.Remove(w.elem)
		w.elem = nil
		w.owner = nil
		wk.resubmitted = true
		kind = EventResubmit
	} else {
		if w.state != stateUnqueued {
			st, owner := w.state, w.queue
			q.mu.Unlock()
			if owner != nil && owner != q {
				panic(fmt.Sprintf("p4wq: submit of %s work %q owned by queue %q", st, w.label(), owner.name))
			}
			panic(fmt.Sprintf("p4wq: submit of %s work %q", st, w.label()))
		}
		w.reset()
	}
	w.Deadline += q.clock()
	if w.seq == 0 {
		w.seq = nextSeq.Add(1)
	}

	if q.closed {
		w.state = stateUnqueued
		w.queue = nil
		events := []Event{q.event(kind, w, nil), q.event(EventComplete, w, nil)}
		if q.doneHandler == nil {
			w.give()
		}
		name := w.label()
		q.mu.Unlock()

		q.logger().Warnw("submit on closed queue, completing without dispatch", "work", name)
		if q.doneHandler != nil {
			q.doneHandler(w)
		}
		q.emit(events...)
		return
	}

	w.queue = q
	w.state = statePending
	q.pending.ReplaceOrInsert(w)
	events := []Event{q.event(kind, w, nil)}

	// Something already queued outranks w, so the active set needs no revisit.
	if top, _ := q.pending.Max(); top != w {
		q.mu.Unlock()
		q.emit(events...)
		return
	}

	if q.servedBy(w) >= q.activeTarget() {
		q.mu.Unlock()
		q.emit(events...)
		return
	}

	wk := q.wakeIdle(w)
	if wk == nil {
		events = append(events, q.event(EventExhausted, w, nil))
		name, prio := w.label(), w.Priority
		q.mu.Unlock()

		q.logger().Warnw("out of worker threads, priority guarantee violated", "work", name, "priority", prio)
		q.emit(events...)
		return
	}
	events = append(events, q.event(EventPreempt, w, wk))
	q.mu.Unlock()

	q.emit(events...)
	q.reschedule()
}

// servedBy counts the running items that beat or tie w. Must be called with
// q.mu held.
func (q *Queue) servedBy(w *Work) int {
	n := 0
	for e := q.active.Front(); e != nil; e = e.Next() {
		if beatsOrTies(e.Value.(*Work), w) {
			n++
		}
	}
	return n
}

// wakeIdle hands the first idle worker the dispatch context of w and wakes
// it. It returns nil when every worker is busy. Must be called with q.mu held.
func (q *Queue) wakeIdle(w *Work) *Worker {
	if len(q.idle) == 0 {
		return nil
	}
	wk := q.idle[0]
	q.idle = q.idle[1:]
	wk.priority, wk.deadline = w.Priority, w.Deadline
	wk.woken = true
	q.waking++
	wk.ready()
	return wk
}

// chainWake runs the wake decision again for the new tree maximum once a
// worker has taken an item, so items submitted back to back do not wait on a
// worker that was woken but had not dispatched yet. Workers still on their way
// will check again themselves. Must be called with q.mu held.
func (q *Queue) chainWake() []Event {
	if q.waking > 0 {
		return nil
	}
	top, ok := q.pending.Max()
	if !ok || q.servedBy(top) >= q.activeTarget() {
		return nil
	}
	wk := q.wakeIdle(top)
	if wk == nil {
		return nil
	}
	return []Event{q.event(EventPreempt, top, wk)}
}

// Cancel removes w if it is still pending on q and delivers its completion.
// It returns false, changing nothing, once a worker has picked w up.
func (q *Queue) Cancel(w *Work) bool {
	q.mu.Lock()
	if w.state != statePending || w.queue != q {
		q.mu.Unlock()
		return false
	}
	q.pending.Delete(w)
	w.state = stateUnqueued
	w.queue = nil
	cancelled := q.event(EventCancel, w, nil)
	if q.doneHandler == nil {
		w.give()
	}
	q.mu.Unlock()

	if q.doneHandler != nil {
		q.doneHandler(w)
	}
	q.emit(cancelled)
	return true
}

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Name:         q.name,
		Workers:      len(q.workers),
		Idle:         len(q.idle),
		Pending:      q.pending.Len(),
		Active:       q.active.Len(),
		ActiveTarget: q.activeTarget(),
		Closed:       q.closed,
	}
}

// Close stops the workers once their current items reconcile and completes
// every pending item without running it. It must not be called from a handler.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		idle := q.idle
		q.idle = nil

		var drained []*Work
		var events []Event
		for {
			w, ok := q.pending.DeleteMax()
			if !ok {
				break
			}
			w.state = stateUnqueued
			w.queue = nil
			events = append(events, q.event(EventCancel, w, nil))
			if q.doneHandler == nil {
				w.give()
			}
			drained = append(drained, w)
		}
		q.mu.Unlock()

		for _, wk := range idle {
			wk.ready()
		}
		if q.doneHandler != nil {
			for _, w := range drained {
				q.doneHandler(w)
			}
		}
		q.emit(events...)
		q.wg.Wait()

		q.logger().Debugw("queue closed", "drained", len(drained))
	})
}
