package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/apperr"
)

// respondError maps the application error taxonomy onto HTTP status codes.
// Unclassified errors stay 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindValidation, apperr.KindInvalidInput:
		status = http.StatusBadRequest
	case apperr.KindRender:
		status = http.StatusUnprocessableEntity
	case apperr.KindExternal:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
