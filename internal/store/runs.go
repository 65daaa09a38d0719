package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/p4wq/internal/models"
	srvErrors "github.com/kubev2v/p4wq/pkg/errors"
)

// RunStore keeps one summary row per bench run.
type RunStore struct {
	db *sql.DB
}

func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Save(ctx context.Context, r models.BenchResult) error {
	_, err := s.db.ExecContext(ctx, queryUpsertRun,
		r.RunID, r.Pool, r.Workers, r.Items, r.Submitted, r.Completed, r.Cancelled,
		r.Preempted, r.Exhausted, r.Inversions, r.Duration.Microseconds(),
	)
	return err
}

func (s *RunStore) Get(ctx context.Context, id string) (*models.BenchResult, error) {
	runs, err := s.list(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, srvErrors.NewRunNotFoundError(id)
	}
	return &runs[0], nil
}

func (s *RunStore) List(ctx context.Context) ([]models.BenchResult, error) {
	return s.list(ctx, nil)
}

func (s *RunStore) list(ctx context.Context, where sq.Sqlizer) ([]models.BenchResult, error) {
	builder := sq.Select(
		"id", "pool", "workers", "items", "submitted", "completed", "cancelled",
		"preempted", "exhausted", "inversions", "duration_us",
	).From("bench_runs").OrderBy("created_at")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.BenchResult
	for rows.Next() {
		var r models.BenchResult
		var durationUS int64
		err := rows.Scan(
			&r.RunID, &r.Pool, &r.Workers, &r.Items, &r.Submitted, &r.Completed, &r.Cancelled,
			&r.Preempted, &r.Exhausted, &r.Inversions, &durationUS,
		)
		if err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
