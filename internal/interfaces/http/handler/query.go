package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/travvip/backend/internal/application/crm"
	"github.com/travvip/backend/internal/domain/identity"
)

// QueryHandler handles travel query requests
type QueryHandler struct {
	BaseHandler
	queryService   *crm.QueryService
	bookingService *crm.BookingService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *crm.QueryService, bookingService *crm.BookingService) *QueryHandler {
	return &QueryHandler{
		queryService:   queryService,
		bookingService: bookingService,
	}
}

// RegisterRoutes registers the query routes
func (h *QueryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	queries := rg.Group("/queries")
	{
		queries.POST("", h.Create)
		queries.GET("", h.List)
		queries.GET("/finance", h.ListFinance)
		queries.GET("/:id", h.Get)
		queries.PUT("/:id", h.Update)
		queries.DELETE("/:id", h.Delete)
		queries.PUT("/:id/status", h.ChangeStatus)
		queries.PUT("/:id/assign", h.Assign)
		queries.POST("/:id/followups", h.AddFollowUp)
		queries.GET("/:id/activities", h.ListActivities)
		queries.GET("/:id/booking", h.GetBooking)
		queries.PUT("/:id/booking", h.SetBookingItem)
	}
}

func actorFrom(p identity.Principal) crm.Actor {
	id := p.UserID
	return crm.Actor{ID: &id, Name: p.Name, IsOrgAdmin: p.IsOrgAdmin || p.IsSuperAdmin}
}

// Create registers a new travel query
func (h *QueryHandler) Create(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input crm.CreateQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	query, err := h.queryService.CreateQuery(c.Request.Context(), orgID, actorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, query)
}

// List returns the organization's queries with pagination
func (h *QueryHandler) List(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}

	queries, total, err := h.queryService.ListQueries(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, queries, total, req.Page, req.PageSize)
}

// ListFinance returns confirmed and cancelled queries for the finance view
func (h *QueryHandler) ListFinance(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}

	queries, err := h.queryService.ListFinanceQueries(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, queries)
}

// Get returns one query
func (h *QueryHandler) Get(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	query, err := h.queryService.GetQuery(c.Request.Context(), orgID, queryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, query)
}

// Update edits a query's details
func (h *QueryHandler) Update(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input crm.UpdateQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	query, err := h.queryService.UpdateQuery(c.Request.Context(), orgID, queryID, actorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, query)
}

// Delete removes a query
func (h *QueryHandler) Delete(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.queryService.DeleteQuery(c.Request.Context(), orgID, queryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangeStatus moves a query through its lifecycle
func (h *QueryHandler) ChangeStatus(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input crm.ChangeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	query, err := h.queryService.ChangeStatus(c.Request.Context(), orgID, queryID, actorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, query)
}

// Assign sets or clears the responsible team member
func (h *QueryHandler) Assign(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input crm.AssignQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	query, err := h.queryService.AssignQuery(c.Request.Context(), orgID, queryID, actorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, query)
}

// AddFollowUp appends a follow-up note
func (h *QueryHandler) AddFollowUp(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input crm.AddFollowUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	query, err := h.queryService.AddFollowUp(c.Request.Context(), orgID, queryID, actorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, query)
}

// ListActivities returns the query's timeline
func (h *QueryHandler) ListActivities(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}

	activities, err := h.queryService.ListActivities(c.Request.Context(), orgID, queryID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activities)
}

// GetBooking returns the query's fulfilment checklist
func (h *QueryHandler) GetBooking(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	checklist, err := h.bookingService.GetChecklist(c.Request.Context(), orgID, queryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checklist)
}

// SetBookingItem marks a hotel or transport line booked or unbooked
func (h *QueryHandler) SetBookingItem(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	queryID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input crm.SetBookingItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	checklist, err := h.bookingService.SetItem(c.Request.Context(), orgID, queryID, actorFrom(p), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checklist)
}
