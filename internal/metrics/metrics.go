package metrics

import (
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kubev2v/p4wq/pkg/p4wq"
)

const namespace = "p4wq"

type queuedKey struct {
	queue string
	seq   uint64
}

type mark struct {
	seq      uint64
	at       int64
	dispatch bool
}

// backlog holds the unmatched events of one item. Per item, events alternate
// between a start (submit, resubmit) and an end (dispatch, cancel, or a
// completion without a worker) in Seq order, so a start pairs with the
// closest later end and an end with the closest earlier start.
type backlog struct {
	starts []mark
	ends   []mark
}

// Metrics holds the Prometheus collectors fed by queue events. Observe is
// meant to be installed with p4wq.WithObserver on every queue.
type Metrics struct {
	Events    *prometheus.CounterVec
	QueueTime *prometheus.HistogramVec

	registry *prometheus.Registry

	mu     sync.Mutex
	queued map[queuedKey]*backlog
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Queue events by queue and kind",
		}, []string{"queue", "kind"}),
		QueueTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_time_seconds",
			Help:      "Time from submit to dispatch, assuming nanosecond clock ticks",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"queue"}),
		registry: prometheus.NewRegistry(),
		queued:   make(map[queuedKey]*backlog),
	}
	m.registry.MustRegister(
		m.Events,
		m.QueueTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe counts e and pairs submit and dispatch events of one item into a
// queue time sample. Observers may see events out of Seq order, so either
// side of a pair can arrive first.
func (m *Metrics) Observe(e p4wq.Event) {
	m.Events.WithLabelValues(e.Queue, string(e.Kind)).Inc()

	var start bool
	switch {
	case e.Kind == p4wq.EventSubmit, e.Kind == p4wq.EventResubmit:
		start = true
	case e.Kind == p4wq.EventDispatch, e.Kind == p4wq.EventCancel:
	case e.Kind == p4wq.EventComplete && e.Worker < 0:
	default:
		return
	}

	key := queuedKey{queue: e.Queue, seq: e.ItemSeq}
	cur := mark{seq: e.Seq, at: e.At, dispatch: e.Kind == p4wq.EventDispatch}

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.queued[key]
	if b == nil {
		b = &backlog{}
		m.queued[key] = b
	}
	if start {
		if i := closest(b.ends, func(end mark) bool { return end.seq > cur.seq }, false); i >= 0 {
			m.observeQueueTime(e.Queue, cur, b.ends[i])
			b.ends = slices.Delete(b.ends, i, i+1)
		} else {
			b.starts = append(b.starts, cur)
		}
	} else {
		if i := closest(b.starts, func(st mark) bool { return st.seq < cur.seq }, true); i >= 0 {
			m.observeQueueTime(e.Queue, b.starts[i], cur)
			b.starts = slices.Delete(b.starts, i, i+1)
		} else {
			b.ends = append(b.ends, cur)
		}
	}
	if len(b.starts) == 0 && len(b.ends) == 0 {
		delete(m.queued, key)
	}
}

// closest returns the index of the mark accepted by ok with the highest seq
// (latest) or the lowest seq, or -1.
func closest(marks []mark, ok func(mark) bool, latest bool) int {
	best := -1
	for i, mk := range marks {
		if !ok(mk) {
			continue
		}
		if best < 0 || (latest && mk.seq > marks[best].seq) || (!latest && mk.seq < marks[best].seq) {
			best = i
		}
	}
	return best
}

func (m *Metrics) observeQueueTime(queue string, start, end mark) {
	if !end.dispatch {
		return
	}
	m.QueueTime.WithLabelValues(queue).Observe(time.Duration(end.at - start.at).Seconds())
}

// tracked is the number of items with unmatched events.
func (m *Metrics) tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queued)
}

// StatsSource lists the current stats of every pool.
type StatsSource interface {
	Stats() []p4wq.Stats
}

// RegisterPools exports the point in time state of the pools of src.
func (m *Metrics) RegisterPools(src StatsSource) error {
	return m.registry.Register(newPoolCollector(src))
}

type poolCollector struct {
	src          StatsSource
	workers      *prometheus.Desc
	idle         *prometheus.Desc
	pending      *prometheus.Desc
	active       *prometheus.Desc
	activeTarget *prometheus.Desc
}

func newPoolCollector(src StatsSource) *poolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, []string{"queue"}, nil)
	}
	return &poolCollector{
		src:          src,
		workers:      desc("workers", "Workers provisioned"),
		idle:         desc("idle_workers", "Workers parked in the wait set"),
		pending:      desc("pending_items", "Items waiting in the pending tree"),
		active:       desc("active_items", "Items currently running"),
		activeTarget: desc("active_target", "Parallelism target"),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workers
	ch <- c.idle
	ch <- c.pending
	ch <- c.active
	ch <- c.activeTarget
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.src.Stats() {
		ch <- prometheus.MustNewConstMetric(c.workers, prometheus.GaugeValue, float64(s.Workers), s.Name)
		ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.Idle), s.Name)
		ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(s.Pending), s.Name)
		ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(s.Active), s.Name)
		ch <- prometheus.MustNewConstMetric(c.activeTarget, prometheus.GaugeValue, float64(s.ActiveTarget), s.Name)
	}
}
