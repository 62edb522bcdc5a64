package routes

import (
	"github.com/ARQAP/museum-insights/src/controllers"
	"github.com/ARQAP/museum-insights/src/middleware"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

func SetupIngestRoutes(router *gin.Engine, service *services.IngestService, secret string) {
	controller := controllers.NewIngestController(service)

	// Public routes
	router.GET("/classifications", controller.GetClassifications)

	// Protected routes
	ingestGroup := router.Group("/ingest")
	ingestGroup.Use(middleware.AuthMiddleware(secret))
	{
		ingestGroup.POST("", controller.Ingest)
	}
}
