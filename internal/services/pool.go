package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/p4wq/internal/config"
	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/util"
	srvErrors "github.com/kubev2v/p4wq/pkg/errors"
	"github.com/kubev2v/p4wq/pkg/p4wq"
)

type poolDecl struct {
	cfg    config.Pool
	cpus   []int
	queues []*p4wq.Queue
}

// PoolService owns the queues declared in the configuration and fans their
// events out to subscribers.
type PoolService struct {
	registry *p4wq.Registry
	decls    []*poolDecl

	subMu       sync.RWMutex
	subscribers map[int]func(p4wq.Event)
	nextSub     int
}

// NewPoolService declares every pool of cfgs. Queues accept submissions right
// away but no worker runs before Boot. opts are applied to every queue.
func NewPoolService(cfgs []config.Pool, opts ...p4wq.Option) (*PoolService, error) {
	s := &PoolService{
		registry:    p4wq.NewRegistry(),
		subscribers: make(map[int]func(p4wq.Event)),
	}
	opts = append(opts, p4wq.WithObserver(s.publish))

	for _, c := range cfgs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		cpus, _ := util.ParseCPUList(c.CPUs)

		var flags p4wq.Flags
		if c.DelayedStart {
			flags |= p4wq.DelayedStart
		}
		if len(cpus) > 0 {
			flags |= p4wq.UserCPUMask
		}
		if c.PerWorkerQueue {
			flags |= p4wq.PerWorkerQueue
		}

		qopts := opts
		if c.ActiveTarget > 0 {
			qopts = append(append([]p4wq.Option(nil), opts...), p4wq.WithActiveTarget(c.ActiveTarget))
		}

		d := &poolDecl{cfg: c, cpus: cpus}
		if c.Array > 0 {
			for i := range c.Array {
				if _, ok := s.registry.Lookup(p4wq.ArrayName(c.Name, i)); ok {
					return nil, srvErrors.NewPoolExistsError(p4wq.ArrayName(c.Name, i))
				}
			}
			d.queues = s.registry.DefineArray(c.Name, c.Array, flags, qopts...)
		} else {
			if _, ok := s.registry.Lookup(c.Name); ok {
				return nil, srvErrors.NewPoolExistsError(c.Name)
			}
			d.queues = []*p4wq.Queue{s.registry.Define(c.Name, c.Workers, flags, qopts...)}
		}
		s.decls = append(s.decls, d)
	}

	return s, nil
}

// Boot provisions the workers of every pool and pins the ones with a cpu
// list. Array pools spread their lanes over the list, one cpu per lane.
// Pools declared with DelayedStart and no cpu list stay parked until Start.
func (s *PoolService) Boot() error {
	s.registry.Boot()

	var errs []error
	for _, d := range s.decls {
		if len(d.cpus) == 0 {
			continue
		}
		for i, q := range d.queues {
			cpus := d.cpus
			if d.cfg.Array > 0 {
				cpus = []int{d.cpus[i%len(d.cpus)]}
			}
			for _, wk := range q.Workers() {
				errs = append(errs, s.startPinned(q, wk, cpus))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *PoolService) startPinned(q *p4wq.Queue, wk *p4wq.Worker, cpus []int) error {
	err := p4wq.EnableStaticWorker(wk, cpus)
	if errors.Is(err, p4wq.ErrAffinityUnsupported) {
		zap.S().Named("pool_service").Warnw("cpu affinity unsupported, starting worker unpinned", "pool", q.Name(), "worker", wk.ID())
		return wk.Start(nil)
	}
	return err
}

// Start starts the parked workers of a DelayedStart pool.
func (s *PoolService) Start(name string) error {
	q, err := s.Get(name)
	if err != nil {
		return err
	}
	var errs []error
	for _, wk := range q.Workers() {
		errs = append(errs, wk.Start(nil))
	}
	return errors.Join(errs...)
}

func (s *PoolService) Get(name string) (*p4wq.Queue, error) {
	q, ok := s.registry.Lookup(name)
	if !ok {
		return nil, srvErrors.NewPoolNotFoundError(name)
	}
	return q, nil
}

func (s *PoolService) Names() []string {
	return s.registry.Names()
}

// Stats returns the stats of every queue ordered by name.
func (s *PoolService) Stats() []p4wq.Stats {
	names := s.registry.Names()
	stats := make([]p4wq.Stats, 0, len(names))
	for _, name := range names {
		if q, ok := s.registry.Lookup(name); ok {
			stats = append(stats, q.Stats())
		}
	}
	return stats
}

func (s *PoolService) PoolStats(name string) (p4wq.Stats, error) {
	q, err := s.Get(name)
	if err != nil {
		return p4wq.Stats{}, err
	}
	return q.Stats(), nil
}

// Submit queues a synthetic item that sleeps for req.DurationMS.
func (s *PoolService) Submit(ctx context.Context, name string, req models.WorkRequest) (*p4wq.Work, error) {
	q, err := s.Get(name)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(req.DurationMS) * time.Millisecond
	w := &p4wq.Work{
		Name:     req.Name,
		Priority: req.Priority,
		Deadline: int64(time.Duration(req.DeadlineMS) * time.Millisecond),
		Handler: func(ctx context.Context, w *p4wq.Work) {
			time.Sleep(duration)
		},
	}
	q.Submit(ctx, w)
	return w, nil
}

// Subscribe registers fn for the events of every pool. The returned func
// removes it.
func (s *PoolService) Subscribe(fn func(p4wq.Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *PoolService) publish(e p4wq.Event) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subscribers {
		fn(e)
	}
}

func (s *PoolService) Close() {
	s.registry.Close()
}
