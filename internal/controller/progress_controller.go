package controller

import (
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Stats godoc
// @Summary Overall learning statistics for the caller
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response{data=service.ProgressStats}
// @Router /api/progress/stats [get]
func (c *ProgressController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.ProgressService.ComputeStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
