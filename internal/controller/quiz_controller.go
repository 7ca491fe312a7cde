package controller

import (
	"errors"
	"strconv"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Create godoc
// @Summary Build a quiz from random questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Param body body service.CreateQuizInput true "quiz configuration"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "not enough vocabulary"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req service.CreateQuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.CreateQuiz(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnoughVocabulary):
			util.BadRequest(ctx, "need at least 4 vocabularies for this configuration")
		case errors.Is(err, util.ErrNoQuizQuestions):
			util.BadRequest(ctx, "no quiz questions available")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}

func (c *QuizController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	claims := util.GetUserFromContext(ctx)
	quizzes, err := c.QuizService.GetUserQuizzes(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

func (c *QuizController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.GetQuizByID(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// Submit godoc
// @Summary Grade a quiz submission
// @Tags quizzes
// @Accept json
// @Produce json
// @Param body body service.SubmitQuizInput true "answers"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req service.SubmitQuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.QuizService.SubmitQuiz(util.MustParseUint(ctx.Param("id")), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

func (c *QuizController) Statistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.QuizService.GetQuizStatistics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.QuizService.DeleteQuiz(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
