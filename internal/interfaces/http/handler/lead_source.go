package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/travvip/backend/internal/application/crm"
)

// LeadSourceHandler handles lead source management and the public
// lead capture webhook
type LeadSourceHandler struct {
	BaseHandler
	leadSourceService *crm.LeadSourceService
}

// NewLeadSourceHandler creates a new lead source handler
func NewLeadSourceHandler(leadSourceService *crm.LeadSourceService) *LeadSourceHandler {
	return &LeadSourceHandler{leadSourceService: leadSourceService}
}

// RegisterPublicRoutes registers the token-authenticated webhook endpoint
func (h *LeadSourceHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/leads", h.CaptureLead)
}

// RegisterRoutes registers the lead source management routes
func (h *LeadSourceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sources := rg.Group("/lead-sources")
	{
		sources.POST("", h.Create)
		sources.GET("", h.List)
		sources.GET("/:id", h.Get)
		sources.PUT("/:id", h.Update)
		sources.DELETE("/:id", h.Delete)
		sources.POST("/:id/regenerate-token", h.RegenerateToken)
	}
}

// Create registers a new lead source with a fresh webhook token
func (h *LeadSourceHandler) Create(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input crm.CreateLeadSourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	source, err := h.leadSourceService.CreateLeadSource(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, source)
}

// List returns the organization's lead sources
func (h *LeadSourceHandler) List(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}

	sources, err := h.leadSourceService.ListLeadSources(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sources)
}

// Get returns one lead source
func (h *LeadSourceHandler) Get(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	sourceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	source, err := h.leadSourceService.GetLeadSource(c.Request.Context(), orgID, sourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, source)
}

// Update edits a lead source
func (h *LeadSourceHandler) Update(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	sourceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input crm.UpdateLeadSourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	source, err := h.leadSourceService.UpdateLeadSource(c.Request.Context(), orgID, sourceID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, source)
}

// Delete removes a lead source. Its previously captured queries stay.
func (h *LeadSourceHandler) Delete(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	sourceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.leadSourceService.DeleteLeadSource(c.Request.Context(), orgID, sourceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegenerateToken rotates the webhook token, invalidating the old one
func (h *LeadSourceHandler) RegenerateToken(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	sourceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	source, err := h.leadSourceService.RegenerateToken(c.Request.Context(), orgID, sourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, source)
}

// CaptureLead accepts a lead pushed by an external platform. The caller
// authenticates with the source token passed as a query parameter.
func (h *LeadSourceHandler) CaptureLead(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.Unauthorized(c, "Missing source token")
		return
	}
	var input crm.WebhookLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.leadSourceService.CaptureLead(c.Request.Context(), token, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
