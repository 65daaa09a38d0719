package store

// Bench run queries
const (
	queryUpsertRun = `
		INSERT INTO bench_runs (id, pool, workers, items, submitted, completed, cancelled,
			preempted, exhausted, inversions, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			completed = EXCLUDED.completed,
			cancelled = EXCLUDED.cancelled,
			preempted = EXCLUDED.preempted,
			exhausted = EXCLUDED.exhausted,
			inversions = EXCLUDED.inversions,
			duration_us = EXCLUDED.duration_us`
)
