package controller

import (
	"tutorbot_backend/internal/service"
	"tutorbot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QAController struct {
	qaService *service.QAService
}

func NewQAController(qaService *service.QAService) *QAController {
	return &QAController{qaService: qaService}
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask answers a question over the indexed corpus and streams the result as
// server-sent events: a "source" event naming the cited passages, then the
// "message" body, then "end".
func (c *QAController) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	answer, err := c.qaService.Ask(ctx.Request.Context(), 0, req.Question)
	if err != nil {
		ctx.SSEvent("error", util.UserMessage(err))
		ctx.Writer.Flush()
		return
	}

	ctx.SSEvent("source", answer.Source)
	ctx.Writer.Flush()
	ctx.SSEvent("message", answer.Answer)
	ctx.Writer.Flush()
	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}
