package controller

import (
	"errors"
	"strconv"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VocabularyController struct {
	VocabService *service.VocabularyService
	AudioService *service.AudioService
}

func NewVocabularyController(vocabService *service.VocabularyService, audioService *service.AudioService) *VocabularyController {
	return &VocabularyController{VocabService: vocabService, AudioService: audioService}
}

// GetAll godoc
// @Summary List the vocabulary catalog
// @Tags vocabularies
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/vocabularies [get]
func (c *VocabularyController) GetAll(ctx *gin.Context) {
	vocabs, err := c.VocabService.GetAllVocabularies()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, vocabs)
}

func (c *VocabularyController) GetByID(ctx *gin.Context) {
	vocab, err := c.VocabService.GetVocabularyByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrVocabularyNotFound) {
			util.NotFoundMessage(ctx, "Vocabulary not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, vocab)
}

func (c *VocabularyController) GetByTopic(ctx *gin.Context) {
	vocabs, err := c.VocabService.GetVocabulariesByTopic(util.MustParseUint(ctx.Param("topicId")))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFoundMessage(ctx, "Topic not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, vocabs)
}

func (c *VocabularyController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "query parameter q is required")
		return
	}
	vocabs, err := c.VocabService.SearchVocabularies(query)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, vocabs)
}

func (c *VocabularyController) GetRandom(ctx *gin.Context) {
	count, _ := strconv.Atoi(ctx.DefaultQuery("count", "10"))
	vocabs, err := c.VocabService.GetRandomVocabularies(count, ctx.Query("difficulty"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, vocabs)
}

// GetWithProgress godoc
// @Summary Catalog overlaid with the caller's practice history
// @Tags vocabularies
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/vocabularies/with-progress [get]
func (c *VocabularyController) GetWithProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	topicID := util.MustParseUint(ctx.Query("topicId"))

	vocabs, err := c.VocabService.GetVocabulariesWithProgress(claims.UserID, topicID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, vocabs)
}

// Create godoc
// @Summary Create a vocabulary entry (audio generates in background)
// @Tags vocabularies
// @Accept json
// @Produce json
// @Param body body service.CreateVocabularyInput true "vocabulary"
// @Success 201 {object} util.Response
// @Router /api/admin/vocabularies [post]
func (c *VocabularyController) Create(ctx *gin.Context) {
	var req service.CreateVocabularyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vocab, err := c.VocabService.CreateVocabulary(req)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.BadRequest(ctx, "topic does not exist")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, vocab)
}

func (c *VocabularyController) Update(ctx *gin.Context) {
	var req service.UpdateVocabularyInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vocab, err := c.VocabService.UpdateVocabulary(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrVocabularyNotFound):
			util.NotFoundMessage(ctx, "Vocabulary not found")
		case errors.Is(err, util.ErrTopicNotFound):
			util.BadRequest(ctx, "topic does not exist")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, vocab)
}

func (c *VocabularyController) Delete(ctx *gin.Context) {
	err := c.VocabService.DeleteVocabulary(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrVocabularyNotFound) {
			util.NotFoundMessage(ctx, "Vocabulary not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// RegenerateAudio godoc
// @Summary Re-drive audio generation for words without audio
// @Tags vocabularies
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/vocabularies/regenerate-audio [post]
func (c *VocabularyController) RegenerateAudio(ctx *gin.Context) {
	queued, err := c.AudioService.RegenerateMissing()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"queued": queued})
}
