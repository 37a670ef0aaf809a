package controller

import (
	"net/http"
	"os"

	"quizdeck_backend/internal/config"
	"quizdeck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// HealthCheck godoc
// @Summary Service health check
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if _, err := os.Stat(c.cfg.Data.Dir); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Data directory unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"data_store": "up",
		},
	})
}
