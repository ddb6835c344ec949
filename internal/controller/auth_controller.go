package controller

import (
	"tutorbot_backend/internal/config"
	"tutorbot_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the single operations account and issues a JWT.
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Username != c.cfg.Admin.Username {
		util.Unauthorized(ctx)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		util.Unauthorized(ctx)
		return
	}

	token, err := util.GenerateJWT(req.Username, c.cfg.JWT.Secret, c.cfg.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}
