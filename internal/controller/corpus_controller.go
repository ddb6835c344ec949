package controller

import (
	"tutorbot_backend/internal/service"
	"tutorbot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CorpusController struct {
	corpusService *service.CorpusService
}

func NewCorpusController(corpusService *service.CorpusService) *CorpusController {
	return &CorpusController{corpusService: corpusService}
}

// Upload receives a PDF and registers it for ingestion.
func (c *CorpusController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "a PDF file is required in the 'file' form field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	doc, err := c.corpusService.Upload(ctx.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Created(ctx, doc)
}

// Ingest chunks and embeds every pending document.
func (c *CorpusController) Ingest(ctx *gin.Context) {
	result, err := c.corpusService.IngestPending(ctx.Request.Context())
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *CorpusController) List(ctx *gin.Context) {
	docs, err := c.corpusService.Documents()
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Success(ctx, docs)
}
