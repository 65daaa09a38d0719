package p4wq

import (
	"container/list"
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

// HighestPriority is the dispatch priority a worker carries before its first item.
const HighestPriority = math.MaxInt

const (
	// Forever blocks Wait until the item completes.
	Forever time.Duration = -1
	// NoWait makes Wait a non-blocking poll.
	NoWait time.Duration = 0
)

var (
	ErrTimeout             = errors.New("p4wq: wait timed out")
	ErrBusy                = errors.New("p4wq: work not completed")
	ErrAffinityUnsupported = errors.New("p4wq: cpu affinity not supported on this platform")
)

// Flags tune how a queue provisions and accounts for its workers.
type Flags uint8

const (
	// DelayedStart leaves new workers parked until Worker.Start is called.
	DelayedStart Flags = 1 << iota
	// UserCPUMask implies DelayedStart; the caller pins workers via Worker.Start.
	UserCPUMask
	// PerWorkerQueue marks a queue served by exactly one worker. Its active target is 1.
	PerWorkerQueue
)

func (f Flags) delayed() bool {
	return f&(DelayedStart|UserCPUMask) != 0
}

type Handler func(ctx context.Context, w *Work)

type state uint8

const (
	stateUnqueued state = iota
	statePending
	stateActive
)

func (s state) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateActive:
		return "active"
	default:
		return "unqueued"
	}
}

// Work is a caller-owned unit of work. The caller sets Priority, Deadline
// (relative, in clock ticks), Handler and Sync before Submit and must not touch
// the item again until it completes or is cancelled.
type Work struct {
	Name     string
	Priority int
	Deadline int64
	Handler  Handler
	Sync     bool

	seq   uint64
	state state
	queue *Queue
	owner *Worker
	elem  *list.Element

	doneOnce sync.Once
	done     chan struct{}
}

func (w *Work) sem() chan struct{} {
	w.doneOnce.Do(func() {
		w.done = make(chan struct{}, 1)
	})
	return w.done
}

func (w *Work) reset() {
	select {
	case <-w.sem():
	default:
	}
}

func (w *Work) give() {
	select {
	case w.sem() <- struct{}{}:
	default:
	}
}

func (w *Work) label() string {
	if w.Name != "" {
		return w.Name
	}
	return "anonymous"
}
