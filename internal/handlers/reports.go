package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"VP-RPT/internal/docstore"
	"VP-RPT/internal/services"
)

type ReportsHandler struct {
	drafts  *docstore.DraftStore
	reports *services.ReportService
	pdf     *services.PDFService
}

func NewReportsHandler(drafts *docstore.DraftStore, reports *services.ReportService, pdf *services.PDFService) *ReportsHandler {
	return &ReportsHandler{drafts: drafts, reports: reports, pdf: pdf}
}

type generateRequest struct {
	DraftID      string `json:"draftId" binding:"required"`
	TemplateName string `json:"templateName" binding:"required"`
}

func (h *ReportsHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), req.DraftID)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.reports.Generate(c.Request.Context(), *draft, req.TemplateName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReportsHandler) Download(c *gin.Context) {
	name := c.Param("name")
	data, err := h.reports.FetchReport(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}

// DownloadPDF converts the stored report through Gotenberg before serving it.
func (h *ReportsHandler) DownloadPDF(c *gin.Context) {
	name := c.Param("name")
	data, err := h.reports.FetchReport(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := h.pdf.ConvertReport(c.Request.Context(), data, name)
	if err != nil {
		respondError(c, err)
		return
	}

	pdfName := strings.TrimSuffix(name, ".docx") + ".pdf"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", pdfName))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
