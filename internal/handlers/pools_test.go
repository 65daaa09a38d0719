package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/p4wq/internal/config"
	"github.com/kubev2v/p4wq/internal/handlers"
	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/services"
)

var _ = Describe("Pool handlers", func() {
	var (
		router  *gin.Engine
		poolSrv *services.PoolService
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		poolSrv, err = services.NewPoolService([]config.Pool{
			{Name: "audio", Workers: 2},
			{Name: "late", Workers: 1, DelayedStart: true},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(poolSrv.Boot()).To(Succeed())

		router = gin.New()
		handlers.New(poolSrv).RegisterRoutes(router.Group("/api/v1"))
	})

	AfterEach(func() {
		poolSrv.Close()
	})

	Context("ListPools", func() {
		It("should return every pool", func() {
			w := do(http.MethodGet, "/api/v1/pools", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var body struct {
				Pools []models.PoolStats `json:"pools"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Pools).To(HaveLen(2))
			Expect(body.Pools[0].Name).To(Equal("audio"))
			Expect(body.Pools[0].Workers).To(Equal(2))
		})
	})

	Context("GetPool", func() {
		It("should return one pool", func() {
			w := do(http.MethodGet, "/api/v1/pools/late", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var pool models.PoolStats
			Expect(json.Unmarshal(w.Body.Bytes(), &pool)).To(Succeed())
			Expect(pool.Name).To(Equal("late"))
		})

		It("should return 404 for an unknown pool", func() {
			w := do(http.MethodGet, "/api/v1/pools/video", "")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("video"))
		})
	})

	Context("SubmitWork", func() {
		// Given a pool with delayed workers
		// When work is submitted and the pool is started
		// Then the item is pending first and runs after the start
		It("should accept work and run it once the pool starts", func() {
			// Act
			w := do(http.MethodPost, "/api/v1/pools/late/work", `{"name":"mix","priority":3,"deadline_ms":1,"duration_ms":1}`)

			// Assert
			Expect(w.Code).To(Equal(http.StatusAccepted))
			stats, err := poolSrv.PoolStats("late")
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Pending).To(Equal(1))

			w = do(http.MethodPost, "/api/v1/pools/late/start", "")
			Expect(w.Code).To(Equal(http.StatusNoContent))
			Eventually(func() int {
				stats, _ := poolSrv.PoolStats("late")
				return stats.Pending + stats.Active
			}).Should(Equal(0))
		})

		It("should reject a malformed body", func() {
			w := do(http.MethodPost, "/api/v1/pools/audio/work", `{"priority":"high"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a negative duration", func() {
			w := do(http.MethodPost, "/api/v1/pools/audio/work", `{"duration_ms":-5}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 for an unknown pool", func() {
			w := do(http.MethodPost, "/api/v1/pools/video/work", `{"name":"x"}`)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
