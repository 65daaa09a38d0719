package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/p4wq/internal/models"
	srvErrors "github.com/kubev2v/p4wq/pkg/errors"
)

// ListPools returns the stats of every pool
// (GET /pools)
func (h *Handler) ListPools(c *gin.Context) {
	stats := h.poolSrv.Stats()

	pools := make([]models.PoolStats, 0, len(stats))
	for _, s := range stats {
		pools = append(pools, models.NewPoolStats(s))
	}

	c.JSON(http.StatusOK, gin.H{"pools": pools})
}

// GetPool returns the stats of one pool
// (GET /pools/{name})
func (h *Handler) GetPool(c *gin.Context) {
	stats, err := h.poolSrv.PoolStats(c.Param("name"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewPoolStats(stats))
}

// SubmitWork queues a synthetic work item
// (POST /pools/{name}/work)
func (h *Handler) SubmitWork(c *gin.Context) {
	var req models.WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := h.poolSrv.Submit(ctx, name, req); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"pool": name, "work": req.Name})
}

// StartPool starts the parked workers of a pool declared with delayed start
// (POST /pools/{name}/start)
func (h *Handler) StartPool(c *gin.Context) {
	if err := h.poolSrv.Start(c.Param("name")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsInvalidConfigurationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zap.S().Named("pool_handler").Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
