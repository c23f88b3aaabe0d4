package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/docstore"
	"VP-RPT/internal/models"
)

type DraftsHandler struct {
	drafts *docstore.DraftStore
}

func NewDraftsHandler(drafts *docstore.DraftStore) *DraftsHandler {
	return &DraftsHandler{drafts: drafts}
}

func (h *DraftsHandler) List(c *gin.Context) {
	summaries, err := h.drafts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": summaries})
}

func (h *DraftsHandler) Get(c *gin.Context) {
	draft, err := h.drafts.Get(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

type saveDraftRequest struct {
	PropertyAddress string         `json:"propertyAddress" binding:"required"`
	FormData        map[string]any `json:"formData"`
}

// Save upserts a draft. The placeId dedupe key is resolved server-side from
// the address, so two saves of the same property update one record.
func (h *DraftsHandler) Save(c *gin.Context) {
	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), models.Draft{
		PropertyAddress: req.PropertyAddress,
		FormData:        req.FormData,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Delete removes a draft; a missing id still answers 200 so the UI can treat
// deletion as idempotent.
func (h *DraftsHandler) Delete(c *gin.Context) {
	removed, err := h.drafts.Delete(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
