// Package p4wq implements a parallel priority/deadline work queue.
//
// A Queue owns a fixed pool of workers that run short callbacks ("work
// items"). Workers always take the highest-priority, earliest-deadline pending
// item. When a more urgent item arrives and the running items do not already
// fill the pool's parallelism, an idle worker is woken for it immediately.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              Queue                                  │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 0   │      │   Worker 1   │      │   Worker N   │       │
//	│  │ prio/deadline│      │ prio/deadline│      │ prio/deadline│       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲ DeleteMax           ▲                     ▲ wake          │
//	│         │                     │                     │               │
//	│  ┌──────┴─────────────────────┴──────┐     ┌────────┴────────┐      │
//	│  │     Pending tree (btree, max =    │     │  Idle wait set  │      │
//	│  │     most urgent item)             │     │  [w2] [w5] ...  │      │
//	│  └───────────────────────────────────┘     └─────────────────┘      │
//	│         ▲                                           ▲               │
//	│         │ insert                                    │ pop one       │
//	│  ┌──────┴───────────────────────────────────────────┴──────┐        │
//	│  │                    Submit(ctx, w)                       │        │
//	│  │   insert, then preemption decision against Active set   │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                                                                     │
//	│  Active set: [running items, each owned by exactly one worker]      │
//	└─────────────────────────────────────────────────────────────────────┘
//
// One mutex per queue guards the pending tree, the active set, the idle wait
// set and every worker's dispatch priority/deadline. Handlers, done
// handlers and observers always run with the lock released, so they may call
// Submit and Cancel.
//
// # Ordering
//
// Two relations are used and they are not interchangeable:
//
//	┌──────────────┬──────────────────────────────────────────────────────┐
//	│ Relation     │ Definition                                           │
//	├──────────────┼──────────────────────────────────────────────────────┤
//	│ tree order   │ priority desc, deadline asc, submission identity asc │
//	│ (total)      │ No two distinct items ever compare equal.            │
//	├──────────────┼──────────────────────────────────────────────────────┤
//	│ beats or ties│ higher priority, or same priority and deadline not   │
//	│ (partial)    │ later. Ties count as "already served".               │
//	└──────────────┴──────────────────────────────────────────────────────┘
//
// # Work Item Lifecycle
//
//	              Submit                    worker DeleteMax
//	┌──────────┐ ─────────► ┌──────────┐ ──────────────────► ┌──────────┐
//	│ Unqueued │            │ Pending  │                     │  Active  │
//	└──────────┘ ◄───────── └──────────┘ ◄────────────────── └────┬─────┘
//	      ▲        Cancel                 Submit from own handler  │
//	      │                                                        │
//	      └────────────────────── handler returns ─────────────────┘
//	                               (completion delivered)
//
// Completion is delivered exactly once per submission that is not superseded
// by a resubmission from the item's own handler. It goes to the queue done
// handler when one is configured (WithDoneHandler), otherwise to a one-shot
// token on the item observed with Work.Wait.
//
// # Worker Loop
//
//	Idle ──wake──► Dispatching ──unlock──► Running ──lock──► Reconciling
//	 ▲              (pop max, set            (handler)        (resubmitted?
//	 │               prio/deadline)                            keep : complete)
//	 │                   ▲                                          │
//	 └── tree empty ─────┴───────────── tree not empty ─────────────┘
//
// # Preemption Decision
//
// Submit only revisits the active set when the new item became the tree
// maximum. It then counts running items that beat or tie it:
//
//  1. count >= active target (GOMAXPROCS by default, 1 for PerWorkerQueue):
//     nothing to do, the item runs when a worker frees up.
//  2. otherwise take one idle worker, give it the item's priority/deadline,
//     wake it and yield (WithReschedule, runtime.Gosched by default).
//  3. no idle worker: a warning is logged ("out of worker threads, priority
//     guarantee violated") and the item simply stays queued.
//
// A woken worker repeats the decision for the next tree maximum right after
// it takes its item, unless another woken worker has not dispatched yet. Items
// submitted back to back therefore fan out over idle workers even though only
// the first of them was the tree maximum when submitted.
//
// The active set scan is O(active workers). Pools are expected to be sized
// to the core count; very large pools make every Submit proportionally slower.
//
// # Usage Example
//
//	q := p4wq.New("audio", p4wq.WithActiveTarget(2))
//	defer q.Close()
//	for range 2 {
//	    q.AddWorker()
//	}
//
//	w := &p4wq.Work{
//	    Name:     "mix",
//	    Priority: 10,
//	    Deadline: int64(2 * time.Millisecond),
//	    Sync:     true,
//	    Handler: func(ctx context.Context, w *p4wq.Work) {
//	        // do the work; to run again: q.Submit(ctx, w)
//	    },
//	}
//	q.Submit(context.Background(), w)
//	if err := w.Wait(time.Second); err != nil {
//	    // p4wq.ErrTimeout
//	}
//
// # Static Pools
//
// Pools can be declared at package initialisation and provisioned later:
//
//	var mixers = p4wq.Define("mixers", 4, 0)
//	var lanes = p4wq.DefineArray("lane", 2, p4wq.DelayedStart)
//
//	func main() {
//	    p4wq.Boot()
//	    for i, q := range lanes {
//	        _ = p4wq.EnableStaticWorker(q.Workers()[0], []int{i})
//	    }
//	}
package p4wq
