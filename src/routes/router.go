package routes

import (
	"net/http"

	"github.com/ARQAP/museum-insights/src/metrics"
	"github.com/ARQAP/museum-insights/src/middleware"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the HTTP API is built on.
type Dependencies struct {
	Ingest         *services.IngestService
	Reports        *services.ReportService
	Users          *services.UserService
	Metrics        *metrics.Metrics
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.SetupCORS(deps.AllowedOrigins))

	SetupUserRoutes(router, deps.Users)
	SetupIngestRoutes(router, deps.Ingest, deps.JWTSecret)
	SetupReportRoutes(router, deps.Reports)
	if deps.Metrics != nil {
		SetupMetricsRoutes(router, deps.Metrics)
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Museum insights API")
	})
	return router
}
