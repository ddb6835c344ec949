package app

import (
	"tutorbot_backend/internal/config"
	"tutorbot_backend/internal/middleware"
	"tutorbot_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
		public.GET("/topics", c.topic.List)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(cfg.JWT.Secret))
	{
		admin.POST("/topics", c.topic.Create)
		admin.GET("/exercises", c.exercise.List)
		admin.POST("/exercises", c.exercise.Create)
		admin.POST("/hints", c.exercise.CreateHint)

		admin.POST("/corpus/upload", c.corpus.Upload)
		admin.POST("/corpus/ingest", c.corpus.Ingest)
		admin.GET("/corpus/documents", c.corpus.List)
	}

	qa := router.Group("/api/qa")
	qa.Use(middleware.AdminAuth(cfg.JWT.Secret))
	{
		qa.POST("/ask", c.qa.Ask)
	}
}
