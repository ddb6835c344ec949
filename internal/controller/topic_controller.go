package controller

import (
	"tutorbot_backend/internal/service"
	"tutorbot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	topicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{topicService: topicService}
}

func (c *TopicController) List(ctx *gin.Context) {
	topics, err := c.topicService.GetAll(ctx.Request.Context())
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

type CreateTopicRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (c *TopicController) Create(ctx *gin.Context) {
	var req CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.topicService.Create(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Created(ctx, topic)
}
