package main

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/p4wq/internal/store"
)

var _ = Describe("newLogger", func() {
	It("should honour the level", func() {
		logger, err := newLogger("json", "warn")
		Expect(err).NotTo(HaveOccurred())
		Expect(logger.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
		Expect(logger.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
	})

	It("should reject an unknown level", func() {
		_, err := newLogger("console", "loud")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("bench command", func() {
	// Given a configuration declaring the bench pool
	// When the bench command runs with a report and a trace
	// Then both files are written and the run is stored
	It("should run the bench and write the report and trace", func() {
		// Arrange
		dir := GinkgoT().TempDir()
		cfgPath := filepath.Join(dir, "config.yaml")
		reportPath := filepath.Join(dir, "bench.xlsx")
		tracePath := filepath.Join(dir, "trace.duckdb")
		Expect(os.WriteFile(cfgPath, []byte(`
log_level: error
pools:
  - name: bench
    workers: 2
bench:
  handler_time: 10us
`), 0o600)).To(Succeed())

		cmd := newRootCmd()
		cmd.SetArgs([]string{
			"bench",
			"--config", cfgPath,
			"--items", "100",
			"--report", reportPath,
			"--trace", tracePath,
		})

		// Act
		err := cmd.ExecuteContext(context.Background())

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(reportPath).To(BeAnExistingFile())

		db, err := store.NewDB(tracePath)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()
		runs, err := store.NewStore(db).Runs().List(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))
		Expect(runs[0].Items).To(Equal(100))
	})

	It("should fail on an invalid configuration", func() {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"bench", "--log-format", "xml"})

		Expect(cmd.ExecuteContext(context.Background())).To(HaveOccurred())
	})
})
