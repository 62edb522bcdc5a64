package routes

import (
	"github.com/ARQAP/museum-insights/src/controllers"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(router *gin.Engine, service *services.ReportService) {
	controller := controllers.NewReportController(service)

	router.GET("/tables/:table", controller.BrowseTable)

	reportGroup := router.Group("/reports")
	{
		reportGroup.GET("", controller.GetReports)
		reportGroup.GET("/:id", controller.RunReport)
		reportGroup.GET("/:id/export", controller.ExportReport)
	}
}
