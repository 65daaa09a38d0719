package models

import (
	"time"

	"github.com/kubev2v/p4wq/pkg/p4wq"
)

// TraceEvent is a queue event recorded during a bench run.
type TraceEvent struct {
	RunID    string
	Queue    string
	Seq      uint64
	Kind     string
	Item     string
	ItemSeq  uint64
	Worker   int
	Priority int
	Deadline int64
	At       int64
}

func NewTraceEvent(runID string, e p4wq.Event) TraceEvent {
	return TraceEvent{
		RunID:    runID,
		Queue:    e.Queue,
		Seq:      e.Seq,
		Kind:     string(e.Kind),
		Item:     e.Item,
		ItemSeq:  e.ItemSeq,
		Worker:   e.Worker,
		Priority: e.Priority,
		Deadline: e.Deadline,
		At:       e.At,
	}
}

type KindCount struct {
	Kind  string
	Count int
}

type BenchResult struct {
	RunID       string
	Pool        string
	Workers     int
	Items       int
	Submitted   int
	Resubmitted int
	Dispatched  int
	Completed   int
	Cancelled   int
	Preempted   int
	Exhausted   int
	// Inversions counts dispatches made while a strictly higher priority
	// item of the same queue was pending.
	Inversions int
	// Latency is measured from submit to first dispatch, per priority.
	Latency  []PriorityLatency
	Duration time.Duration
}

type PriorityLatency struct {
	Priority   int
	Dispatched int
	Mean       time.Duration
	Max        time.Duration
}

func (r BenchResult) Throughput() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Completed) / r.Duration.Seconds()
}

// BenchRun is the outcome of one bench run with its recorded events
// ordered by Seq.
type BenchRun struct {
	Result BenchResult
	Events []TraceEvent
}
