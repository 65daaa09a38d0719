package p4wq

type EventKind string

const (
	EventSubmit    EventKind = "submit"
	EventResubmit  EventKind = "resubmit"
	EventDispatch  EventKind = "dispatch"
	EventComplete  EventKind = "complete"
	EventCancel    EventKind = "cancel"
	EventPreempt   EventKind = "preempt"
	EventExhausted EventKind = "exhausted"
)

// Event is a snapshot taken under the queue lock. Seq is strictly increasing
// per queue, so ordering events by Seq replays the queue history.
type Event struct {
	Kind     EventKind
	Queue    string
	Seq      uint64
	Item     string
	ItemSeq  uint64
	Worker   int
	Priority int
	Deadline int64
	At       int64
}

// event must be called with q.mu held.
func (q *Queue) event(kind EventKind, w *Work, wk *Worker) Event {
	q.eventSeq++
	e := Event{
		Kind:     kind,
		Queue:    q.name,
		Seq:      q.eventSeq,
		Item:     w.label(),
		ItemSeq:  w.seq,
		Worker:   -1,
		Priority: w.Priority,
		Deadline: w.Deadline,
		At:       q.clock(),
	}
	if wk != nil {
		e.Worker = wk.id
	}
	return e
}

func (q *Queue) emit(events ...Event) {
	for _, fn := range q.observers {
		for _, e := range events {
			fn(e)
		}
	}
}
