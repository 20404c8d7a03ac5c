package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/travvip/backend/internal/application/quote"
	"github.com/travvip/backend/internal/domain/identity"
)

// ItineraryHandler handles quote version requests
type ItineraryHandler struct {
	BaseHandler
	itineraryService *quote.ItineraryService
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(itineraryService *quote.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

// RegisterRoutes registers the itinerary routes
func (h *ItineraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	itineraries := rg.Group("/itineraries")
	{
		itineraries.GET("/query/:queryId", h.ListVersions)
		itineraries.GET("/query/:queryId/latest", h.GetLatest)
		itineraries.POST("/query/:queryId", h.Save)
		itineraries.GET("/:id", h.Get)
		itineraries.DELETE("/:id", h.Delete)
		itineraries.POST("/query/:queryId/confirm/:id", h.Confirm)
	}
}

func quoteActorFrom(p identity.Principal) quote.Actor {
	id := p.UserID
	return quote.Actor{ID: &id, Name: p.Name}
}

// Save stores a quote version for a query. Costs are recomputed from the
// catalog on the server, client-sent totals are ignored.
func (h *ItineraryHandler) Save(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "queryId")
	if !ok {
		return
	}
	var input quote.SaveItineraryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.itineraryService.SaveQuote(c.Request.Context(), orgID, queryID, quoteActorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListVersions returns every saved version for a query, newest first
func (h *ItineraryHandler) ListVersions(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "queryId")
	if !ok {
		return
	}

	versions, err := h.itineraryService.ListVersions(c.Request.Context(), orgID, queryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, versions)
}

// GetLatest returns the most recent version for a query
func (h *ItineraryHandler) GetLatest(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "queryId")
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.GetLatest(c.Request.Context(), orgID, queryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, itinerary)
}

// Get returns one version by id
func (h *ItineraryHandler) Get(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	itineraryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.GetItinerary(c.Request.Context(), orgID, itineraryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, itinerary)
}

// Confirm marks one version as the accepted quote
func (h *ItineraryHandler) Confirm(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "queryId")
	if !ok {
		return
	}
	itineraryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.ConfirmQuote(c.Request.Context(), orgID, queryID, itineraryID, quoteActorFrom(p))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, itinerary)
}

// Delete removes one version
func (h *ItineraryHandler) Delete(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	itineraryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.itineraryService.DeleteItinerary(c.Request.Context(), orgID, itineraryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
