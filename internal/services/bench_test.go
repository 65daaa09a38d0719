package services_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/p4wq/internal/config"
	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/services"
	"github.com/kubev2v/p4wq/internal/store"
	"github.com/kubev2v/p4wq/internal/store/migrations"
	"github.com/kubev2v/p4wq/pkg/p4wq"
)

func ev(seq uint64, kind p4wq.EventKind, item uint64, priority int, at int64) models.TraceEvent {
	return models.TraceEvent{Queue: "q", Seq: seq, Kind: string(kind), ItemSeq: item, Priority: priority, At: at}
}

var _ = Describe("Analyze", func() {
	It("should count kinds and latency of an ordered history", func() {
		result := services.Analyze([]models.TraceEvent{
			ev(1, p4wq.EventSubmit, 1, 1, 0),
			ev(2, p4wq.EventSubmit, 2, 5, 10),
			ev(3, p4wq.EventPreempt, 2, 5, 10),
			ev(4, p4wq.EventDispatch, 2, 5, 30),
			ev(5, p4wq.EventDispatch, 1, 1, 100),
			ev(6, p4wq.EventComplete, 2, 5, 130),
			ev(7, p4wq.EventComplete, 1, 1, 140),
		})

		Expect(result.Submitted).To(Equal(2))
		Expect(result.Dispatched).To(Equal(2))
		Expect(result.Completed).To(Equal(2))
		Expect(result.Preempted).To(Equal(1))
		Expect(result.Inversions).To(Equal(0))
		Expect(result.Latency).To(Equal([]models.PriorityLatency{
			{Priority: 5, Dispatched: 1, Mean: 20, Max: 20},
			{Priority: 1, Dispatched: 1, Mean: 100, Max: 100},
		}))
	})

	// Given a low priority item dispatched while a higher one is pending
	// When the history is analysed
	// Then one inversion is reported
	It("should detect a priority inversion", func() {
		result := services.Analyze([]models.TraceEvent{
			ev(1, p4wq.EventSubmit, 1, 1, 0),
			ev(2, p4wq.EventSubmit, 2, 9, 0),
			ev(3, p4wq.EventDispatch, 1, 1, 0),
		})

		Expect(result.Inversions).To(Equal(1))
	})

	It("should not count cancelled items as pending", func() {
		result := services.Analyze([]models.TraceEvent{
			ev(1, p4wq.EventSubmit, 1, 1, 0),
			ev(2, p4wq.EventSubmit, 2, 9, 0),
			ev(3, p4wq.EventCancel, 2, 9, 0),
			ev(4, p4wq.EventDispatch, 1, 1, 0),
		})

		Expect(result.Inversions).To(Equal(0))
		Expect(result.Cancelled).To(Equal(1))
	})
})

var _ = Describe("BenchService", func() {
	var (
		ctx   context.Context
		pools *services.PoolService
		db    *sql.DB
		st    *store.Store
		cfg   config.Bench
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		pools, err = services.NewPoolService([]config.Pool{{Name: "bench", Workers: 3, ActiveTarget: 2}})
		Expect(err).NotTo(HaveOccurred())
		Expect(pools.Boot()).To(Succeed())

		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())
		st = store.NewStore(db)

		cfg = *config.NewBenchWithOptionsAndDefaults(
			config.WithItems(300),
			config.WithHandlerTime(20*time.Microsecond),
		)
	})

	AfterEach(func() {
		pools.Close()
		db.Close()
	})

	// Given a booted pool and a mixed load with resubmits, cancels and async items
	// When the bench runs
	// Then every item settles, no inversion is seen and the trace is stored
	It("should run without priority inversions and persist the trace", func() {
		// Arrange
		bench := services.NewBenchService(pools, st, cfg)

		// Act
		run, err := bench.Run(ctx)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		result := run.Result
		Expect(result.Submitted).To(Equal(300))
		Expect(result.Completed + result.Cancelled).To(Equal(300))
		Expect(result.Inversions).To(Equal(0))
		Expect(result.Workers).To(Equal(3))

		count, err := st.Trace().Count(ctx, store.ByRun(result.RunID))
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(len(run.Events)))

		saved, err := st.Runs().Get(ctx, result.RunID)
		Expect(err).NotTo(HaveOccurred())
		Expect(saved.Completed).To(Equal(result.Completed))
	})

	It("should deliver the result through a future", func() {
		bench := services.NewBenchService(pools, nil, cfg)

		f := bench.Start(ctx)

		var res models.Result[models.BenchRun]
		Eventually(f.C(), "10s").Should(Receive(&res))
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Data.Result.Items).To(Equal(300))
	})

	It("should pace submissions with a rate", func() {
		cfg.Items = 20
		cfg.Rate = 200
		bench := services.NewBenchService(pools, nil, cfg)

		run, err := bench.Run(ctx)

		Expect(err).NotTo(HaveOccurred())
		// 19 intervals of 5ms after the first token
		Expect(run.Result.Duration).To(BeNumerically(">=", 80*time.Millisecond))
	})

	It("should fail for an unknown pool", func() {
		cfg.Pool = "missing"
		bench := services.NewBenchService(pools, nil, cfg)

		_, err := bench.Run(ctx)

		Expect(err).To(HaveOccurred())
	})
})
