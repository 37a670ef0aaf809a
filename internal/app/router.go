package app

import (
	"quizdeck_backend/docs"
	"quizdeck_backend/internal/config"
	"quizdeck_backend/internal/middleware"
	"quizdeck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/login", c.auth.Login)

		// Reads are open; a personal quiz tool has nothing secret to list.
		api.GET("/tests", c.quiz.ListTests)
		api.GET("/tests/:id", c.quiz.GetTest)
		api.POST("/tests/:id/submit", c.quiz.SubmitTest)
		api.GET("/attempts", c.attempt.ListAttempts)
		api.GET("/attempts/:id", c.attempt.GetAttempt)
		api.GET("/backup/export", c.backup.Export)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.POST("/tests", c.quiz.CreateTest)
		authorized.PUT("/tests/:id", c.quiz.UpdateTest)
		authorized.DELETE("/tests/:id", c.quiz.DeleteTest)

		authorized.POST("/extract", c.extraction.ExtractQuestion)

		authorized.POST("/backup/import", c.backup.Import)

		authorized.DELETE("/attempts/:id", c.attempt.DeleteAttempt)
		authorized.DELETE("/attempts", c.attempt.ClearAttempts)
	}
}
