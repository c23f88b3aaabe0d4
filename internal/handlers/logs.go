package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/services"
)

type LogsHandler struct {
	activityLog *services.ActivityLogService
}

func NewLogsHandler(activityLog *services.ActivityLogService) *LogsHandler {
	return &LogsHandler{activityLog: activityLog}
}

type logsResponse struct {
	Logs       any   `json:"logs"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// List returns activity logs with pagination and optional method/path filters.
func (h *LogsHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}

	logs, total, err := h.activityLog.List(c.Query("method"), c.Query("path"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	c.JSON(http.StatusOK, logsResponse{
		Logs:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}
