package controllers

import (
	"net/http"

	"github.com/ARQAP/museum-insights/src/dtos"
	"github.com/ARQAP/museum-insights/src/harvard"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

type IngestController struct {
	service *services.IngestService
}

func NewIngestController(service *services.IngestService) *IngestController {
	return &IngestController{service: service}
}

// GetClassifications handles GET requests listing the classifications that can be fetched
func (c *IngestController) GetClassifications(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, harvard.Classifications())
}

// Ingest handles POST requests that fetch a classification and insert its records
func (c *IngestController) Ingest(ctx *gin.Context) {
	var req dtos.IngestRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Pages == 0 {
		req.Pages = dtos.DefaultIngestPages
	}

	result, err := c.service.Ingest(ctx.Request.Context(), req.Classification, req.Pages)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
