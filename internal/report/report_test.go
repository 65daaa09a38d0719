package report_test

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/report"
)

var _ = Describe("Write", func() {
	// Given a finished run with two events
	// When the report is written
	// Then the workbook has the three sheets with the run's figures
	It("should write summary, latency and events sheets", func() {
		// Arrange
		path := filepath.Join(GinkgoT().TempDir(), "bench.xlsx")
		run := models.BenchRun{
			Result: models.BenchResult{
				RunID:     "run-1",
				Pool:      "bench",
				Completed: 2,
				Duration:  time.Second,
				Latency: []models.PriorityLatency{
					{Priority: 5, Dispatched: 1, Mean: 20 * time.Microsecond, Max: 20 * time.Microsecond},
				},
			},
			Events: []models.TraceEvent{
				{Seq: 1, Kind: "submit", Item: "a", ItemSeq: 1, Worker: -1, Priority: 5},
				{Seq: 2, Kind: "dispatch", Item: "a", ItemSeq: 1, Worker: 0, Priority: 5},
			},
		}

		// Act
		err := report.Write(path, run)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		f, err := excelize.OpenFile(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(f.GetSheetList()).To(Equal([]string{"Summary", "Latency", "Events"}))

		pool, err := f.GetCellValue("Summary", "B2")
		Expect(err).NotTo(HaveOccurred())
		Expect(pool).To(Equal("bench"))

		throughput, err := f.GetCellValue("Summary", "B14")
		Expect(err).NotTo(HaveOccurred())
		Expect(throughput).To(Equal("2"))

		mean, err := f.GetCellValue("Latency", "C2")
		Expect(err).NotTo(HaveOccurred())
		Expect(mean).To(Equal("20"))

		rows, err := f.GetRows("Events")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[2][1]).To(Equal("dispatch"))
	})
})
