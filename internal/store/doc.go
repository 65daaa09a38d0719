// Package store persists bench runs and their dispatch traces in DuckDB.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├────────────────────────────────┬────────────────────────────────┤
//	│          TraceStore            │           RunStore             │
//	│              ▼                 │              ▼                 │
//	│       dispatch_events          │          bench_runs            │
//	└────────────────────────────────┴────────────────────────────────┘
//
// # Tables
//
// Created by the embedded migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  bench_runs        │  One summary row per bench run              │
//	│  dispatch_events   │  Queue events keyed by (run, queue, seq)    │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # TraceStore
//
// Append writes a run's events in one transaction, batching rows into
// multi-value INSERTs built with squirrel. List, Count and CountByKind take
// functional ListOptions that modify the select builder:
//
//	events, err := st.Trace().List(ctx,
//	    store.ByRun(runID),
//	    store.ByKinds("dispatch", "preempt"),
//	    store.WithDefaultSort(),
//	    store.WithLimit(100),
//	)
//
// WithDefaultSort orders by (queue, seq), which replays each queue's history.
//
// # RunStore
//
// Save upserts the summary of a run, Get returns a ResourceNotFoundError for
// an unknown id.
//
// # Initialization
//
//	db, err := store.NewDB(path)     // ":memory:" for tests
//	err = migrations.Run(ctx, db)
//	st := store.NewStore(db)
package store
