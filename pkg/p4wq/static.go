package p4wq

import (
	"fmt"
	"sort"
	"sync"
)

type declaration struct {
	queue   *Queue
	workers int
}

// Registry collects pool declarations made before Boot and provisions their
// workers once. Queues exist, and accept submissions, from the moment they
// are declared; nothing runs until Boot.
type Registry struct {
	mu     sync.Mutex
	decls  []declaration
	byName map[string]*Queue
	booted bool
}

var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Queue)}
}

// Define declares a queue served by workers workers.
func (r *Registry) Define(name string, workers int, flags Flags, opts ...Option) *Queue {
	opts = append(opts, WithFlags(flags))
	q := New(name, opts...)
	r.register(q, workers)
	return q
}

// DefineArray declares n independent queues of one worker each, named
// name-0 .. name-(n-1).
func (r *Registry) DefineArray(name string, n int, flags Flags, opts ...Option) []*Queue {
	queues := make([]*Queue, n)
	for i := range n {
		queues[i] = r.Define(ArrayName(name, i), 1, flags|PerWorkerQueue, opts...)
	}
	return queues
}

// ArrayName is the name of queue i of the array declared as name.
func ArrayName(name string, i int) string {
	return fmt.Sprintf("%s-%d", name, i)
}

func (r *Registry) register(q *Queue, workers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[q.name]; ok {
		panic(fmt.Sprintf("p4wq: queue %q declared twice", q.name))
	}
	r.byName[q.name] = q
	r.decls = append(r.decls, declaration{queue: q, workers: workers})
	if r.booted {
		provision(q, workers)
	}
}

// Boot provisions the workers of every declaration. Later declarations are
// provisioned as they are made. Boot is idempotent.
func (r *Registry) Boot() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.booted {
		return
	}
	r.booted = true
	for _, d := range r.decls {
		provision(d.queue, d.workers)
	}
}

func provision(q *Queue, workers int) {
	for range workers {
		q.AddWorker()
	}
	q.logger().Debugw("pool provisioned", "workers", workers, "delayed", q.flags.delayed())
}

func (r *Registry) Lookup(name string) (*Queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byName[name]
	return q, ok
}

func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close closes every declared queue.
func (r *Registry) Close() {
	r.mu.Lock()
	decls := append([]declaration(nil), r.decls...)
	r.mu.Unlock()
	for _, d := range decls {
		d.queue.Close()
	}
}

func Define(name string, workers int, flags Flags, opts ...Option) *Queue {
	return DefaultRegistry.Define(name, workers, flags, opts...)
}

func DefineArray(name string, n int, flags Flags, opts ...Option) []*Queue {
	return DefaultRegistry.DefineArray(name, n, flags, opts...)
}

func Boot() {
	DefaultRegistry.Boot()
}

func Lookup(name string) (*Queue, bool) {
	return DefaultRegistry.Lookup(name)
}

// Workers returns the provisioned workers, e.g. to Start delayed ones.
func (q *Queue) Workers() []*Worker {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Worker(nil), q.workers...)
}

// EnableStaticWorker starts a delayed worker pinned to cpus.
func EnableStaticWorker(wk *Worker, cpus []int) error {
	return wk.Start(cpus)
}
