package server_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/p4wq/internal/config"
	"github.com/kubev2v/p4wq/internal/metrics"
	"github.com/kubev2v/p4wq/internal/server"
	"github.com/kubev2v/p4wq/pkg/p4wq"
)

var _ = Describe("Server", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults(
			config.WithServer(*config.NewServerWithOptionsAndDefaults(config.WithServerMode("prod"))),
		)
	})

	get := func(h http.Handler, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("should serve health and the registered api group", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv.Handler(), "/health").Code).To(Equal(http.StatusOK))
		w := get(srv.Handler(), "/api/v1/ping")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("pong"))
	})

	It("should recover from a panicking handler", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/boom", func(c *gin.Context) { panic("boom") })
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv.Handler(), "/api/v1/boom").Code).To(Equal(http.StatusInternalServerError))
	})

	It("should expose metrics when configured", func() {
		m := metrics.New()
		m.Observe(p4wq.Event{Kind: p4wq.EventSubmit, Queue: "audio"})
		srv, err := server.NewServer(cfg, func(*gin.RouterGroup) {}, server.WithMetrics(m.Registry()))
		Expect(err).NotTo(HaveOccurred())

		w := get(srv.Handler(), "/metrics")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`p4wq_events_total{kind="submit",queue="audio"} 1`))
	})

	It("should reject an unknown mode", func() {
		cfg.Server.ServerMode = "staging"

		_, err := server.NewServer(cfg, func(*gin.RouterGroup) {})

		Expect(err).To(HaveOccurred())
	})
})
