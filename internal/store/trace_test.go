package store_test

import (
	"context"
	"database/sql"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/store"
	"github.com/kubev2v/p4wq/internal/store/migrations"
)

func traceEvent(run, queue string, seq uint64, kind string, priority int) models.TraceEvent {
	return models.TraceEvent{
		RunID:    run,
		Queue:    queue,
		Seq:      seq,
		Kind:     kind,
		Item:     fmt.Sprintf("item-%d", seq),
		ItemSeq:  seq,
		Worker:   -1,
		Priority: priority,
		Deadline: int64(seq) * 1000,
		At:       int64(seq),
	}
}

var _ = Describe("TraceStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Append", func() {
		It("should accept an empty batch", func() {
			Expect(s.Trace().Append(ctx, nil)).To(Succeed())
		})

		// Given more events than fit in one insert batch
		// When we append them
		// Then every event is stored
		It("should store events across insert batches", func() {
			// Arrange
			events := make([]models.TraceEvent, 0, 1200)
			for i := range 1200 {
				events = append(events, traceEvent("run-1", "bench", uint64(i+1), "submit", i%5))
			}

			// Act
			err := s.Trace().Append(ctx, events)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			count, err := s.Trace().Count(ctx, store.ByRun("run-1"))
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1200))
		})

		It("should reject a duplicate sequence number", func() {
			e := traceEvent("run-1", "bench", 1, "submit", 0)
			Expect(s.Trace().Append(ctx, []models.TraceEvent{e})).To(Succeed())

			err := s.Trace().Append(ctx, []models.TraceEvent{e})

			Expect(err).To(HaveOccurred())
		})
	})

	Context("List", func() {
		BeforeEach(func() {
			err := s.Trace().Append(ctx, []models.TraceEvent{
				traceEvent("run-1", "b", 2, "dispatch", 3),
				traceEvent("run-1", "a", 1, "submit", 1),
				traceEvent("run-1", "b", 1, "submit", 3),
				traceEvent("run-1", "a", 2, "dispatch", 1),
				traceEvent("run-2", "a", 1, "submit", 9),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return events of one run in queue order", func() {
			events, err := s.Trace().List(ctx, store.ByRun("run-1"), store.WithDefaultSort())

			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(4))
			Expect(events[0].Queue).To(Equal("a"))
			Expect(events[0].Seq).To(Equal(uint64(1)))
			Expect(events[3].Queue).To(Equal("b"))
			Expect(events[3].Seq).To(Equal(uint64(2)))
			Expect(events[0].Worker).To(Equal(-1))
			Expect(events[0].Deadline).To(Equal(int64(1000)))
		})

		It("should filter by kind and queue", func() {
			events, err := s.Trace().List(ctx,
				store.ByRun("run-1"),
				store.ByQueues("b"),
				store.ByKinds("dispatch"),
			)

			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].Item).To(Equal("item-2"))
		})

		It("should filter by priority range", func() {
			count, err := s.Trace().Count(ctx, store.ByPriorityRange(2, 10), store.ByRun("run-1"))

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("should paginate", func() {
			events, err := s.Trace().List(ctx, store.WithDefaultSort(), store.WithLimit(2), store.WithOffset(1))

			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))
		})

		It("should count events by kind", func() {
			counts, err := s.Trace().CountByKind(ctx, store.ByRun("run-1"))

			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal([]models.KindCount{
				{Kind: "dispatch", Count: 2},
				{Kind: "submit", Count: 2},
			}))
		})
	})
})
