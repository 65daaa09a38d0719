package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/btree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kubev2v/p4wq/internal/config"
	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/store"
	"github.com/kubev2v/p4wq/pkg/p4wq"
)

// BenchService drives synthetic load through one pool, records the pool's
// events and checks them for priority inversions.
type BenchService struct {
	pools *PoolService
	store *store.Store
	cfg   config.Bench
}

// NewBenchService creates a bench service. st may be nil, in which case runs
// are not persisted.
func NewBenchService(pools *PoolService, st *store.Store, cfg config.Bench) *BenchService {
	return &BenchService{pools: pools, store: st, cfg: cfg}
}

// Start runs the bench in the background. Stop on the future cancels it.
func (b *BenchService) Start(ctx context.Context) *models.Future[models.Result[models.BenchRun]] {
	c := make(chan models.Result[models.BenchRun], 1)
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		defer cancel()
		run, err := b.Run(ctx)
		c <- models.Result[models.BenchRun]{Data: run, Err: err}
	}()

	return models.NewFuture(c, cancel)
}

// Run submits cfg.Items items to the bench pool from cfg.Producers
// goroutines, waits for all of them and analyses the recorded events.
func (b *BenchService) Run(ctx context.Context) (models.BenchRun, error) {
	log := zap.S().Named("bench_service")

	q, err := b.pools.Get(b.cfg.Pool)
	if err != nil {
		return models.BenchRun{}, err
	}

	runID := uuid.NewString()
	rec := newRecorder(runID, q.Name())
	unsubscribe := b.pools.Subscribe(rec.observe)
	defer unsubscribe()

	items := b.generate(q)
	log.Infow("bench started", "run", runID, "pool", q.Name(), "items", len(items), "producers", b.cfg.Producers)

	start := time.Now()
	if err := b.submit(ctx, q, items); err != nil {
		return models.BenchRun{}, fmt.Errorf("bench %s: %w", runID, err)
	}
	if err := b.await(ctx, items); err != nil {
		return models.BenchRun{}, fmt.Errorf("bench %s: %w", runID, err)
	}
	// Observers run after completion is delivered, so the last events may
	// trail the waits above.
	if err := rec.awaitSettled(ctx, len(items)); err != nil {
		return models.BenchRun{}, fmt.Errorf("bench %s: %w", runID, err)
	}
	elapsed := time.Since(start)

	events := rec.events()
	result := Analyze(events)
	result.RunID = runID
	result.Pool = q.Name()
	result.Workers = q.Stats().Workers
	result.Items = len(items)
	result.Duration = elapsed

	log.Infow("bench finished",
		"run", runID,
		"completed", result.Completed,
		"cancelled", result.Cancelled,
		"preempted", result.Preempted,
		"inversions", result.Inversions,
		"duration", elapsed,
	)
	if result.Inversions > 0 {
		log.Errorw("priority inversions detected", "run", runID, "inversions", result.Inversions)
	}

	if b.store != nil {
		if err := b.store.Trace().Append(ctx, events); err != nil {
			return models.BenchRun{}, fmt.Errorf("failed to store trace of %s: %w", runID, err)
		}
		if err := b.store.Runs().Save(ctx, result); err != nil {
			return models.BenchRun{}, fmt.Errorf("failed to store run %s: %w", runID, err)
		}
	}

	return models.BenchRun{Result: result, Events: events}, nil
}

type benchItem struct {
	work   *p4wq.Work
	cancel bool
}

func (b *BenchService) generate(q *p4wq.Queue) []benchItem {
	items := make([]benchItem, b.cfg.Items)
	for i := range items {
		resubmit := rand.Float64() < b.cfg.ResubmitRatio
		handlerTime := b.cfg.HandlerTime

		w := &p4wq.Work{
			Name:     fmt.Sprintf("bench-%d", i),
			Priority: rand.IntN(b.cfg.MaxPriority + 1),
			Deadline: rand.Int64N(int64(b.cfg.MaxDeadline) + 1),
			Sync:     rand.Float64() >= b.cfg.AsyncRatio,
		}
		w.Handler = func(ctx context.Context, w *p4wq.Work) {
			spin(handlerTime)
			if resubmit {
				resubmit = false
				w.Deadline = int64(b.cfg.MaxDeadline)
				q.Submit(ctx, w)
			}
		}
		items[i] = benchItem{work: w, cancel: rand.Float64() < b.cfg.CancelRatio}
	}
	return items
}

// submit spreads items over the producers. With a Rate the producers share
// one limiter.
func (b *BenchService) submit(ctx context.Context, q *p4wq.Queue, items []benchItem) error {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if b.cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.cfg.Rate), 1)
	}

	g, ctx := errgroup.WithContext(ctx)
	for p := range b.cfg.Producers {
		g.Go(func() error {
			for i := p; i < len(items); i += b.cfg.Producers {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
				q.Submit(ctx, items[i].work)
				if items[i].cancel {
					q.Cancel(items[i].work)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// await blocks on sync items and polls async ones with exponential backoff.
func (b *BenchService) await(ctx context.Context, items []benchItem) error {
	for _, it := range items {
		w := it.work
		if w.Sync {
			if err := w.WaitContext(ctx); err != nil {
				return err
			}
			continue
		}
		_, err := backoff.Retry(ctx, func() (struct{}, error) {
			return struct{}{}, w.Wait(p4wq.NoWait)
		}, backoff.WithBackOff(pollBackOff()))
		if err != nil {
			return fmt.Errorf("waiting for %s: %w", w.Name, err)
		}
	}
	return nil
}

func pollBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Microsecond
	bo.MaxInterval = 50 * time.Millisecond
	return bo
}

// spin keeps the goroutine busy for d, like a CPU bound handler would.
func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// recorder collects the events of one queue. Observers are called outside
// the queue lock, so events may arrive out of Seq order.
type recorder struct {
	runID string
	queue string

	mu       sync.Mutex
	buf      []models.TraceEvent
	terminal int
}

func newRecorder(runID, queue string) *recorder {
	return &recorder{runID: runID, queue: queue}
}

func (r *recorder) observe(e p4wq.Event) {
	if e.Queue != r.queue {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, models.NewTraceEvent(r.runID, e))
	if e.Kind == p4wq.EventComplete || e.Kind == p4wq.EventCancel {
		r.terminal++
	}
}

func (r *recorder) settled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminal
}

func (r *recorder) awaitSettled(ctx context.Context, n int) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if done := r.settled(); done < n {
			return struct{}{}, fmt.Errorf("%d of %d items settled", done, n)
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(pollBackOff()), backoff.WithMaxElapsedTime(10*time.Second))
	return err
}

// events returns the recorded events ordered by Seq.
func (r *recorder) events() []models.TraceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := append([]models.TraceEvent(nil), r.buf...)
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	return events
}

type pendingKey struct {
	priority int
	seq      uint64
}

func pendingLess(a, b pendingKey) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

// Analyze replays the events of one queue, ordered by Seq, and counts them by
// kind. A dispatch is an inversion when an item of strictly higher priority
// was pending at that point. Latency runs from submit to dispatch.
func Analyze(events []models.TraceEvent) models.BenchResult {
	var result models.BenchResult

	pending := btree.NewG[pendingKey](8, pendingLess)
	pendingByItem := make(map[uint64]pendingKey)
	submittedAt := make(map[uint64]int64)

	type latencyAcc struct {
		n     int
		total time.Duration
		max   time.Duration
	}
	latency := make(map[int]*latencyAcc)

	unqueue := func(item uint64) {
		if k, ok := pendingByItem[item]; ok {
			pending.Delete(k)
			delete(pendingByItem, item)
		}
	}

	for _, e := range events {
		switch p4wq.EventKind(e.Kind) {
		case p4wq.EventSubmit:
			result.Submitted++
		case p4wq.EventResubmit:
			result.Resubmitted++
		case p4wq.EventDispatch:
			result.Dispatched++
		case p4wq.EventComplete:
			result.Completed++
		case p4wq.EventCancel:
			result.Cancelled++
		case p4wq.EventPreempt:
			result.Preempted++
		case p4wq.EventExhausted:
			result.Exhausted++
		}

		switch p4wq.EventKind(e.Kind) {
		case p4wq.EventSubmit, p4wq.EventResubmit:
			k := pendingKey{priority: e.Priority, seq: e.ItemSeq}
			pending.ReplaceOrInsert(k)
			pendingByItem[e.ItemSeq] = k
			submittedAt[e.ItemSeq] = e.At
		case p4wq.EventDispatch:
			unqueue(e.ItemSeq)
			if top, ok := pending.Max(); ok && top.priority > e.Priority {
				result.Inversions++
			}
			at, ok := submittedAt[e.ItemSeq]
			if !ok {
				continue
			}
			delete(submittedAt, e.ItemSeq)
			acc := latency[e.Priority]
			if acc == nil {
				acc = &latencyAcc{}
				latency[e.Priority] = acc
			}
			d := time.Duration(e.At - at)
			acc.n++
			acc.total += d
			acc.max = max(acc.max, d)
		case p4wq.EventCancel, p4wq.EventComplete:
			unqueue(e.ItemSeq)
			delete(submittedAt, e.ItemSeq)
		}
	}

	for prio, acc := range latency {
		result.Latency = append(result.Latency, models.PriorityLatency{
			Priority:   prio,
			Dispatched: acc.n,
			Mean:       acc.total / time.Duration(acc.n),
			Max:        acc.max,
		})
	}
	sort.Slice(result.Latency, func(i, j int) bool { return result.Latency[i].Priority > result.Latency[j].Priority })

	return result
}
