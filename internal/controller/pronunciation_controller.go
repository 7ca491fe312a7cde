package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PronunciationController struct {
	PronunciationService *service.PronunciationService
}

func NewPronunciationController(pronunciationService *service.PronunciationService) *PronunciationController {
	return &PronunciationController{PronunciationService: pronunciationService}
}

// swagger:model PracticePronunciationRequest
type PracticePronunciationRequest struct {
	VocabID       uint   `json:"vocabId" binding:"required"`
	AudioBase64   string `json:"audioBase64" binding:"required"`
	SaveRecording bool   `json:"saveRecording"`
}

// Practice godoc
// @Summary Practice pronouncing a word from base64 audio
// @Tags pronunciation
// @Accept json
// @Produce json
// @Param body body PracticePronunciationRequest true "recording"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response "speech service unavailable"
// @Router /api/pronunciation/practice [post]
func (c *PronunciationController) Practice(ctx *gin.Context) {
	var req PracticePronunciationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.PronunciationService.PracticePronunciation(claims.UserID, req.VocabID, req.AudioBase64, req.SaveRecording)
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// PracticeUpload accepts a multipart recording instead of base64.
func (c *PronunciationController) PracticeUpload(ctx *gin.Context) {
	file, err := ctx.FormFile("audio")
	if err != nil {
		util.BadRequest(ctx, "audio file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAudioExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported audio format")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+ext)
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	claims := util.GetUserFromContext(ctx)
	vocabID := util.MustParseUint(ctx.PostForm("vocabId"))
	saveRecording := ctx.PostForm("saveRecording") == "true"

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	result, err := c.PronunciationService.PracticeWithRecording(claims.UserID, vocabID, tmpPath, contentType, saveRecording)
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *PronunciationController) Attempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	vocabID := util.MustParseUint(ctx.Query("vocabId"))

	attempts, err := c.PronunciationService.GetUserAttempts(claims.UserID, vocabID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

func (c *PronunciationController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	vocabID := util.MustParseUint(ctx.Query("vocabId"))

	stats, err := c.PronunciationService.GetAttemptStats(claims.UserID, vocabID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func (c *PronunciationController) renderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrVocabularyNotFound):
		util.NotFoundMessage(ctx, "Vocabulary not found")
	case errors.Is(err, util.ErrSpeechServiceFailure):
		util.Error(ctx, 502, "Speech service unavailable")
	default:
		util.LogInternalError(ctx, err)
	}
}
