package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/ai"
)

type AIHandler struct {
	assistant *ai.Assistant
}

func NewAIHandler(assistant *ai.Assistant) *AIHandler {
	return &AIHandler{assistant: assistant}
}

type draftCommentaryRequest struct {
	Section string `json:"section" binding:"required"`
	Facts   string `json:"facts" binding:"required"`
}

func (h *AIHandler) DraftCommentary(c *gin.Context) {
	var req draftCommentaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	text, err := h.assistant.DraftCommentary(c.Request.Context(), req.Section, req.Facts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

type rewriteRequest struct {
	Instruction string `json:"instruction" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

func (h *AIHandler) Rewrite(c *gin.Context) {
	var req rewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	text, err := h.assistant.RewriteText(c.Request.Context(), req.Instruction, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
