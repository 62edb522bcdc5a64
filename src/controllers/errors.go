package controllers

import (
	"net/http"

	"github.com/ARQAP/museum-insights/src/apperr"
	"github.com/gin-gonic/gin"
)

// respondError maps error kinds onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		status = http.StatusBadRequest
	case apperr.ErrTransport:
		status = http.StatusBadGateway
	case apperr.ErrConstraint:
		status = http.StatusConflict
	case apperr.ErrConnection:
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
