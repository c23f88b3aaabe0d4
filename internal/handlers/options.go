package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/docstore"
	"VP-RPT/internal/models"
)

// OptionCardsHandler serves one card collection; three instances are mounted,
// one per backing document.
type OptionCardsHandler struct {
	store *docstore.OptionCardStore
}

func NewOptionCardsHandler(store *docstore.OptionCardStore) *OptionCardsHandler {
	return &OptionCardsHandler{store: store}
}

func (h *OptionCardsHandler) List(c *gin.Context) {
	cards, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func (h *OptionCardsHandler) Add(c *gin.Context) {
	var card models.OptionCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	added, err := h.store.Add(c.Request.Context(), card)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

func (h *OptionCardsHandler) Update(c *gin.Context) {
	var card models.OptionCard
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	card.ID = c.Param("id")

	updated, err := h.store.Update(c.Request.Context(), card)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *OptionCardsHandler) Delete(c *gin.Context) {
	removed, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type ImageOptionsHandler struct {
	store *docstore.ImageOptionStore
}

func NewImageOptionsHandler(store *docstore.ImageOptionStore) *ImageOptionsHandler {
	return &ImageOptionsHandler{store: store}
}

func (h *ImageOptionsHandler) List(c *gin.Context) {
	opts, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageOptions": opts})
}

func (h *ImageOptionsHandler) Add(c *gin.Context) {
	var opt models.ImageOption
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	added, err := h.store.Add(c.Request.Context(), opt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

func (h *ImageOptionsHandler) Update(c *gin.Context) {
	var opt models.ImageOption
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	opt.ID = c.Param("id")

	updated, err := h.store.Update(c.Request.Context(), opt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ImageOptionsHandler) Delete(c *gin.Context) {
	removed, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type AIConfigHandler struct {
	store *docstore.AIConfigStore
}

func NewAIConfigHandler(store *docstore.AIConfigStore) *AIConfigHandler {
	return &AIConfigHandler{store: store}
}

func (h *AIConfigHandler) Get(c *gin.Context) {
	cfg, err := h.store.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *AIConfigHandler) Put(c *gin.Context) {
	var cfg models.AIConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if err := h.store.Put(c.Request.Context(), cfg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
