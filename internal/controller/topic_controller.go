package controller

import (
	"errors"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TopicController is read-only; topic content is seeded out of band.
type TopicController struct {
	TopicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

func (c *TopicController) GetAll(ctx *gin.Context) {
	if term := ctx.Query("q"); term != "" {
		topics, err := c.TopicService.SearchTopics(term)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, topics)
		return
	}

	topics, err := c.TopicService.GetAllTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

func (c *TopicController) GetByID(ctx *gin.Context) {
	topic, err := c.TopicService.GetTopicByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFoundMessage(ctx, "Topic not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, topic)
}
