package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/p4wq/internal/models"
)

const insertBatchSize = 500

var traceColumns = []string{
	"run_id", "queue", "seq", "kind", "item", "item_seq", "worker", "priority", "deadline", "at",
}

type TraceStore struct {
	db *sql.DB
}

func NewTraceStore(db *sql.DB) *TraceStore {
	return &TraceStore{db: db}
}

// Append inserts events in one transaction.
func (s *TraceStore) Append(ctx context.Context, events []models.TraceEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(events); start += insertBatchSize {
		end := min(start+insertBatchSize, len(events))

		builder := sq.Insert("dispatch_events").Columns(traceColumns...)
		for _, e := range events[start:end] {
			builder = builder.Values(e.RunID, e.Queue, e.Seq, e.Kind, e.Item, e.ItemSeq, e.Worker, e.Priority, e.Deadline, e.At)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert dispatch events: %w", err)
		}
	}

	return tx.Commit()
}

func (s *TraceStore) List(ctx context.Context, opts ...ListOption) ([]models.TraceEvent, error) {
	builder := sq.Select(traceColumns...).From("dispatch_events")

	for _, opt := range opts {
		builder = opt(builder)
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

	var events []models.TraceEvent
	for rows.Next() {
		var e models.TraceEvent
		err := rows.Scan(
			&e.RunID,
			&e.Queue,
			&e.Seq,
			&e.Kind,
			&e.Item,
			&e.ItemSeq,
			&e.Worker,
			&e.Priority,
			&e.Deadline,
			&e.At,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *TraceStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("dispatch_events")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// CountByKind returns the number of events of each kind, ordered by kind.
func (s *TraceStore) CountByKind(ctx context.Context, opts ...ListOption) ([]models.KindCount, error) {
	builder := sq.Select("kind", "COUNT(*)").From("dispatch_events").GroupBy("kind").OrderBy("kind")

	for _, opt := range opts {
		builder = opt(builder)
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

	var counts []models.KindCount
	for rows.Next() {
		var c models.KindCount
		if err := rows.Scan(&c.Kind, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByRun(runID string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"run_id": runID})
	}
}

func ByQueues(queues ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(queues) == 0 {
			return b
		}
		return b.Where(sq.Eq{"queue": queues})
	}
}

func ByKinds(kinds ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(kinds) == 0 {
			return b
		}
		return b.Where(sq.Eq{"kind": kinds})
	}
}

func ByPriorityRange(min, max int) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.And{
			sq.GtOrEq{"priority": min},
			sq.Lt{"priority": max},
		})
	}
}

// WithDefaultSort orders events the way they happened on each queue.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("queue", "seq")
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}
