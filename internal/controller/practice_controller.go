package controller

import (
	"errors"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

// Submit godoc
// @Summary Record a practice submission for one word
// @Tags practice
// @Accept json
// @Produce json
// @Param body body service.SubmitPracticeInput true "graded answers"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "vocabulary not found"
// @Router /api/practice/submit [post]
func (c *PracticeController) Submit(ctx *gin.Context) {
	var req service.SubmitPracticeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.PracticeService.RecordPracticeSubmission(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrVocabularyNotFound) {
			util.NotFoundMessage(ctx, "Vocabulary not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// swagger:model BookmarkRequest
type BookmarkRequest struct {
	VocabID      uint  `json:"vocabId" binding:"required"`
	IsBookmarked *bool `json:"isBookmarked" binding:"required"`
}

// Bookmark godoc
// @Summary Toggle a word's bookmark
// @Tags practice
// @Accept json
// @Produce json
// @Param body body BookmarkRequest true "bookmark state"
// @Success 200 {object} util.Response
// @Router /api/practice/bookmark [post]
func (c *PracticeController) Bookmark(ctx *gin.Context) {
	var req BookmarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.PracticeService.ToggleBookmark(claims.UserID, req.VocabID, *req.IsBookmarked)
	if err != nil {
		if errors.Is(err, util.ErrVocabularyNotFound) {
			util.NotFoundMessage(ctx, "Vocabulary not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

func (c *PracticeController) Learned(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	list, err := c.PracticeService.GetLearnedVocabularies(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

func (c *PracticeController) Bookmarked(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	list, err := c.PracticeService.GetBookmarkedVocabularies(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Stats godoc
// @Summary Per-word practice stats for the caller
// @Tags practice
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/practice/stats/{vocabId} [get]
func (c *PracticeController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.PracticeService.GetProgressStats(claims.UserID, util.MustParseUint(ctx.Param("vocabId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
