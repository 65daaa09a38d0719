package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kubev2v/p4wq/internal/services"
)

type Handler struct {
	poolSrv *services.PoolService
}

func New(poolSrv *services.PoolService) *Handler {
	return &Handler{
		poolSrv: poolSrv,
	}
}

// RegisterRoutes mounts the handlers on router, expected to be the /api/v1 group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/pools", h.ListPools)
	router.GET("/pools/:name", h.GetPool)
	router.POST("/pools/:name/work", h.SubmitWork)
	router.POST("/pools/:name/start", h.StartPool)
}
