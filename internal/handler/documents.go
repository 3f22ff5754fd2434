package handler

import (
	"net/http"
	"path/filepath"

	"fatoora/internal/apierror"
	"fatoora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DocumentsHandler struct {
	svc service.DocumentService
	// pdfRoot is PDF_STORAGE_PATH; stored paths are relative to it
	pdfRoot string
}

func NewDocumentsHandler(svc service.DocumentService, pdfRoot string) *DocumentsHandler {
	return &DocumentsHandler{svc: svc, pdfRoot: pdfRoot}
}

// Status godoc
// @Summary      Document rendering status
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.DocumentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/document [get]
func (h *DocumentsHandler) Status(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Download godoc
// @Summary      Download the rendered PDF
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/document/pdf [get]
func (h *DocumentsHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	rel, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	// Reject any stored path that escapes the storage root
	full := filepath.Join(h.pdfRoot, filepath.Clean("/"+rel))
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(full))
	c.File(full)
}

// Requeue godoc
// @Summary      Re-render an invoice document
// @Description  Enqueues a fresh render job, e.g. after correcting the trader profile.
// @Tags         documents
// @Security     BearerAuth
// @Param        id path string true "Invoice UUID"
// @Success      202
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/document/requeue [post]
func (h *DocumentsHandler) Requeue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Requeue(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
