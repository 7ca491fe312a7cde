package controller

import (
	"errors"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SpeechController struct {
	Speech       *service.SpeechClientService
	VocabService *service.VocabularyService
	AudioService *service.AudioService
}

func NewSpeechController(
	speech *service.SpeechClientService,
	vocabService *service.VocabularyService,
	audioService *service.AudioService,
) *SpeechController {
	return &SpeechController{Speech: speech, VocabService: vocabService, AudioService: audioService}
}

// swagger:model RecognizeSpeechRequest
type RecognizeSpeechRequest struct {
	AudioBase64   string `json:"audioBase64" binding:"required"`
	TargetWord    string `json:"targetWord" binding:"required"`
	VocabID       uint   `json:"vocabId" binding:"required"`
	SaveRecording bool   `json:"saveRecording"`
}

// Recognize godoc
// @Summary Recognize speech against a target word
// @Tags speech
// @Accept json
// @Produce json
// @Param body body RecognizeSpeechRequest true "audio payload"
// @Success 200 {object} util.Response
// @Router /api/speech/recognize [post]
func (c *SpeechController) Recognize(ctx *gin.Context) {
	var req RecognizeSpeechRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.Speech.RecognizeSpeech(service.STTRecognizeRequest{
		AudioBase64:   req.AudioBase64,
		TargetWord:    req.TargetWord,
		UserID:        claims.UserID,
		VocabID:       req.VocabID,
		SaveRecording: req.SaveRecording,
	})
	if err != nil {
		util.Error(ctx, 502, "Speech service unavailable")
		return
	}
	util.Success(ctx, result)
}

// swagger:model GenerateTTSRequest
type GenerateTTSRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"omitempty,oneof=en vi"`
	VocabID  uint   `json:"vocabId" binding:"required"`
}

// GenerateTTS queues audio generation for a word. The synthesis runs
// in the pipeline; poll tts-status or listen on the asset socket for
// completion.
func (c *SpeechController) GenerateTTS(ctx *gin.Context) {
	var req GenerateTTSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	language := req.Language
	if language == "" {
		language = util.LanguageEnglish
	}

	c.AudioService.GenerateAsync(req.VocabID, req.Text, language)
	util.Success(ctx, gin.H{"queued": true})
}

// TTSStatus godoc
// @Summary Whether a vocabulary's audio is ready
// @Tags speech
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/speech/tts-status/{vocabId} [get]
func (c *SpeechController) TTSStatus(ctx *gin.Context) {
	vocab, err := c.VocabService.GetVocabularyByID(util.MustParseUint(ctx.Param("vocabId")))
	if err != nil {
		if errors.Is(err, util.ErrVocabularyNotFound) {
			util.NotFoundMessage(ctx, "Vocabulary not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ready := vocab.AudioURL != nil
	var audioPath *string
	if ready {
		audioPath = vocab.AudioURL
	}
	util.Success(ctx, gin.H{"ready": ready, "audioPath": audioPath})
}

func (c *SpeechController) Voices(ctx *gin.Context) {
	voices, err := c.Speech.Voices(ctx.Query("language"))
	if err != nil {
		util.Error(ctx, 502, "Speech service unavailable")
		return
	}
	util.Success(ctx, gin.H{"voices": voices})
}

func (c *SpeechController) Health(ctx *gin.Context) {
	healthy := c.Speech.HealthCheck()
	status := "unhealthy"
	if healthy {
		status = "healthy"
	}
	util.Success(ctx, gin.H{"status": status, "service": "speech"})
}
