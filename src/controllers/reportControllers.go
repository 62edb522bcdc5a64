package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ARQAP/museum-insights/src/dtos"
	"github.com/ARQAP/museum-insights/src/reports"
	"github.com/ARQAP/museum-insights/src/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	service *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{service: service}
}

// GetReports handles GET requests listing the report catalog
func (c *ReportController) GetReports(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.GetCatalog())
}

// RunReport handles GET requests executing one report
func (c *ReportController) RunReport(ctx *gin.Context) {
	result, _, ok := c.run(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ExportReport handles GET requests returning a report as an XLSX workbook
func (c *ReportController) ExportReport(ctx *gin.Context) {
	result, id, ok := c.run(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteXLSX(&buf, result); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%d.xlsx"`, id))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// BrowseTable handles GET requests listing a table filtered by classification
func (c *ReportController) BrowseTable(ctx *gin.Context) {
	var query dtos.TableQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.service.BrowseTable(ctx.Request.Context(), ctx.Param("table"), query.Classification)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *ReportController) run(ctx *gin.Context) (*reports.Result, int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return nil, 0, false
	}

	var query dtos.ReportQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, 0, false
	}

	result, err := c.service.RunReport(ctx.Request.Context(), id, reports.Args{
		ArtifactID: query.ArtifactID,
		Department: query.Department,
	})
	if err != nil {
		respondError(ctx, err)
		return nil, 0, false
	}
	return result, id, true
}
