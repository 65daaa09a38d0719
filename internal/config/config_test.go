package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/p4wq/internal/config"
	srvErrors "github.com/kubev2v/p4wq/pkg/errors"
)

var _ = Describe("Configuration", func() {
	writeConfig := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	Context("Load", func() {
		It("should return defaults when no file is given", func() {
			cfg, err := config.Load("")
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.LogFormat).To(Equal("console"))
			Expect(cfg.Server.HTTPPort).To(Equal(8000))
			Expect(cfg.Bench.MaxDeadline).To(Equal(10 * time.Millisecond))
			Expect(cfg.Pools).To(HaveLen(1))
			Expect(cfg.Pools[0].Name).To(Equal("bench"))
			Expect(cfg.Pools[0].Workers).To(Equal(2))
			Expect(cfg.Validate()).To(Succeed())
		})

		// Given a file declaring two pools, one without a worker count
		// When we load it
		// Then the missing worker count takes the pool default
		It("should read pools and apply per-pool defaults", func() {
			// Arrange
			path := writeConfig(`
log_level: debug
server:
  http_port: 9100
pools:
  - name: audio
    workers: 4
    active_target: 2
    cpus: "0-1"
  - name: lanes
    array: 3
    delayed_start: true
bench:
  handler_time: 1ms
`)

			// Act
			cfg, err := config.Load(path)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.LogLevel).To(Equal("debug"))
			Expect(cfg.Server.HTTPPort).To(Equal(9100))
			Expect(cfg.Server.ServerMode).To(Equal("dev"))
			Expect(cfg.Pools).To(HaveLen(2))
			Expect(cfg.Pools[0]).To(Equal(config.Pool{Name: "audio", Workers: 4, ActiveTarget: 2, CPUs: "0-1"}))
			Expect(cfg.Pools[1].Array).To(Equal(3))
			Expect(cfg.Pools[1].Workers).To(Equal(2))
			Expect(cfg.Pools[1].DelayedStart).To(BeTrue())
			Expect(cfg.Bench.HandlerTime).To(Equal(time.Millisecond))
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should let the environment override scalar keys", func() {
			GinkgoT().Setenv("P4WQ_SERVER_HTTP_PORT", "9300")

			cfg, err := config.Load("")

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.HTTPPort).To(Equal(9300))
		})

		It("should apply options after the file", func() {
			cfg, err := config.Load("", config.WithLogLevel("warn"))

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.LogLevel).To(Equal("warn"))
		})

		It("should fail on a missing file", func() {
			_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Validate", func() {
		var cfg *config.Configuration

		BeforeEach(func() {
			var err error
			cfg, err = config.Load("")
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("should reject invalid settings",
			func(mutate func(c *config.Configuration)) {
				mutate(cfg)
				err := cfg.Validate()
				Expect(err).To(HaveOccurred())
				Expect(srvErrors.IsInvalidConfigurationError(err)).To(BeTrue())
			},
			Entry("unknown log format", func(c *config.Configuration) { c.LogFormat = "xml" }),
			Entry("unknown log level", func(c *config.Configuration) { c.LogLevel = "loud" }),
			Entry("unknown server mode", func(c *config.Configuration) { c.Server.ServerMode = "staging" }),
			Entry("port out of range", func(c *config.Configuration) { c.Server.HTTPPort = 70000 }),
			Entry("unnamed pool", func(c *config.Configuration) { c.Pools[0].Name = "" }),
			Entry("pool without workers", func(c *config.Configuration) { c.Pools[0].Workers = 0 }),
			Entry("duplicate pool", func(c *config.Configuration) { c.Pools = append(c.Pools, c.Pools[0]) }),
			Entry("bad cpu list", func(c *config.Configuration) { c.Pools[0].CPUs = "3-1" }),
			Entry("ratio above one", func(c *config.Configuration) { c.Bench.CancelRatio = 1.5 }),
			Entry("no items", func(c *config.Configuration) { c.Bench.Items = 0 }),
		)

		It("should accept an array pool without workers", func() {
			cfg.Pools[0].Workers = 0
			cfg.Pools[0].Array = 2
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("DebugMap", func() {
		It("should expose every section", func() {
			cfg := config.NewConfigurationWithOptionsAndDefaults(config.WithLogLevel("debug"))

			m := cfg.DebugMap()

			Expect(m).To(HaveKey("LogLevel"))
			Expect(m).To(HaveKey("Server"))
			Expect(m).To(HaveKey("Pools"))
			Expect(m).To(HaveKey("Bench"))
		})
	})
})
