// Package services implements the business logic layer of the p4wq service.
//
// Services sit between the HTTP handlers / CLI and the work queues in
// pkg/p4wq and the trace store.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints), CLI
//	    │
//	    ▼
//	Services Layer
//	    ├── PoolService ──► p4wq.Registry ──► p4wq.Queue (one per pool or lane)
//	    └── BenchService ─► PoolService, Store
//
// # PoolService
//
// PoolService declares one queue per configured pool, or one queue per lane
// for array pools, in its own p4wq.Registry. Declared queues accept
// submissions immediately; their workers exist only after Boot.
//
//	NewPoolService(cfg.Pools, opts...)
//	    └── Registry.Define / DefineArray      (queues, no workers)
//	Boot()
//	    ├── Registry.Boot                      (workers provisioned)
//	    └── EnableStaticWorker(wk, cpus)       (pools with a cpu list)
//	Start(name)                                (DelayedStart pools)
//
// Pinning rules:
//
//	┌──────────────────────────┬───────────────────────────────────────────┐
//	│ Pool                     │ Workers pinned to                         │
//	├──────────────────────────┼───────────────────────────────────────────┤
//	│ plain, cpus "0-3"        │ every worker on cpus 0..3                 │
//	│ array of N, cpus "0-3"   │ lane i on cpu i mod 4                     │
//	│ no cpus, DelayedStart    │ nothing, parked until Start(name)         │
//	└──────────────────────────┴───────────────────────────────────────────┘
//
// Where cpu affinity is not supported the worker is started unpinned and a
// warning is logged.
//
// Every queue is created with an observer that fans events out to the
// functions registered with Subscribe. Metrics and the bench recorder are
// the two subscribers.
//
// Usage:
//
//	pools, err := services.NewPoolService(cfg.Pools, p4wq.WithLogger(zap.L()))
//	err = pools.Boot()
//	unsubscribe := pools.Subscribe(m.Observe)
//	w, err := pools.Submit(ctx, "audio", models.WorkRequest{Priority: 5, DurationMS: 2})
//	pools.Close()
//
// # BenchService
//
// BenchService runs a synthetic load through one pool:
//
//  1. A run id is drawn (uuid) and a recorder subscribes to the pool.
//  2. Items get random priorities in [0, MaxPriority] and relative deadlines
//     in [0, MaxDeadline]. A share of them resubmits once from its handler,
//     a share is cancelled right after submission, a share is async.
//  3. Producers submit concurrently (errgroup).
//  4. Sync items are waited on, async items are polled with exponential
//     backoff until their completion is recorded.
//  5. The recorded events, ordered by Seq, are replayed by Analyze.
//  6. With a store, the trace and the run summary are persisted.
//
// Analyze keeps the pending items of the replay in a B-tree keyed by
// priority. A dispatch while a strictly higher priority item is pending is
// an inversion. The queue dispatches the tree maximum, so a correct run
// reports zero.
//
// Start runs the bench in the background and returns a models.Future:
//
//	f := bench.Start(ctx)
//	defer f.Stop()
//	res := <-f.C()
package services
