package routes

import (
	"github.com/ARQAP/museum-insights/src/metrics"
	"github.com/gin-gonic/gin"
)

func SetupMetricsRoutes(router *gin.Engine, m *metrics.Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
