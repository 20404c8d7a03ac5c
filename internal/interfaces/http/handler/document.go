package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/travvip/backend/internal/application/document"
)

// DocumentHandler serves itinerary PDF downloads
type DocumentHandler struct {
	BaseHandler
	documentService *document.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *document.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers the document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/queries/:id/pdf", h.GeneratePDF)
}

// GeneratePDF renders the itinerary document for a query. By default the
// latest saved quote version is used; pass ?itineraryId= to pick one.
func (h *DocumentHandler) GeneratePDF(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	input := document.GeneratePDFInput{QueryID: queryID}
	if raw := c.Query("itineraryId"); raw != "" {
		itineraryID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid itineraryId")
			return
		}
		input.ItineraryID = &itineraryID
	}

	result, err := h.documentService.GeneratePDF(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/pdf", result.Data)
}
