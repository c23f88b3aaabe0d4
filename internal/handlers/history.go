package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/docstore"
)

type HistoryHandler struct {
	history *docstore.HistoryStore
}

func NewHistoryHandler(history *docstore.HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.history.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	removed, err := h.history.Delete(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
