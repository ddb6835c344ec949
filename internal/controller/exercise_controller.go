package controller

import (
	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/service"
	"tutorbot_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	exerciseService *service.ExerciseService
	hintService     *service.HintService
}

func NewExerciseController(exerciseService *service.ExerciseService, hintService *service.HintService) *ExerciseController {
	return &ExerciseController{
		exerciseService: exerciseService,
		hintService:     hintService,
	}
}

// List returns a topic's exercises; the topic comes as a query parameter.
func (c *ExerciseController) List(ctx *gin.Context) {
	topicName := ctx.Query("topic")
	if topicName == "" {
		util.BadRequest(ctx, "the 'topic' query parameter is required")
		return
	}

	exercises, err := c.exerciseService.ExercisesByTopic(topicName)
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

type CreateExerciseRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"required"`
	Solution    string `json:"solution"`
}

func (c *ExerciseController) Create(ctx *gin.Context) {
	var req CreateExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	difficulty := model.Difficulty(req.Difficulty)
	if model.DifficultyIndex(difficulty) < 0 {
		util.BadRequest(ctx, "difficulty must be one of: Basic, Intermediate, Advanced")
		return
	}

	exercise, err := c.exerciseService.CreateExercise(req.Topic, req.Title, req.Description, difficulty, req.Solution)
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Created(ctx, exercise)
}

type CreateHintRequest struct {
	ExerciseID uint   `json:"exerciseId" binding:"required"`
	Order      int    `json:"order" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (c *ExerciseController) CreateHint(ctx *gin.Context) {
	var req CreateHintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hint, err := c.hintService.CreateHint(req.ExerciseID, req.Order, req.Text)
	if err != nil {
		util.ServiceErrorResponse(ctx, err)
		return
	}
	util.Created(ctx, hint)
}
