package controller

import (
	"errors"

	"quizdeck_backend/internal/service"
	"quizdeck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	attemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// ListAttempts godoc
// @Summary List recorded attempts, newest first
// @Tags attempts
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	attempts, err := c.attemptService.ListAttempts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"attempts": attempts})
}

// GetAttempt godoc
// @Summary Fetch one attempt by id
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt id"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attempt, err := c.attemptService.GetAttempt(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// DeleteAttempt godoc
// @Summary Delete one attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt id"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id} [delete]
func (c *AttemptController) DeleteAttempt(ctx *gin.Context) {
	removed, err := c.attemptService.DeleteAttempt(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": removed})
}

// ClearAttempts godoc
// @Summary Delete all attempts
// @Tags attempts
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/attempts [delete]
func (c *AttemptController) ClearAttempts(ctx *gin.Context) {
	count, err := c.attemptService.ClearAttempts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"cleared": count})
}
