package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/travvip/backend/internal/application/identity"
)

// OrganizationHandler handles agency registration, profile management and
// the super admin approval workflow
type OrganizationHandler struct {
	BaseHandler
	orgService *identity.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgService *identity.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// RegisterPublicRoutes registers the unauthenticated registration endpoint
func (h *OrganizationHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/organizations/register", h.Register)
}

// RegisterRoutes registers the tenant-facing organization routes
func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/organization", h.GetOwn)
	rg.PUT("/organization", h.UpdateOwn)
}

// RegisterAdminRoutes registers the super admin routes. The router wires
// these behind the super-admin middleware.
func (h *OrganizationHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orgs := rg.Group("/tenant-organizations")
	{
		orgs.GET("", h.List)
		orgs.GET("/:id", h.Get)
		orgs.PUT("/:id/approve", h.Approve)
		orgs.PUT("/:id/reject", h.Reject)
		orgs.PUT("/:id/suspend", h.Suspend)
		orgs.DELETE("/:id", h.Delete)
	}
}

// Register creates a new pending organization with its admin account
func (h *OrganizationHandler) Register(c *gin.Context) {
	var input identity.RegisterOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orgService.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetOwn returns the caller's organization profile
func (h *OrganizationHandler) GetOwn(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}

// UpdateOwn edits the caller's organization profile and branding
func (h *OrganizationHandler) UpdateOwn(c *gin.Context) {
	p, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	if !p.CanManageUsers() {
		h.Forbidden(c, "Only an organization admin can edit the profile")
		return
	}
	var input identity.UpdateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}

	org, err := h.orgService.UpdateOrganization(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}

// List returns all organizations across tenants
func (h *OrganizationHandler) List(c *gin.Context) {
	req, ok := h.listRequest(c)
	if !ok {
		return
	}

	orgs, err := h.orgService.ListOrganizations(c.Request.Context(), req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orgs)
}

// Get returns one organization
func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}

// Approve activates a pending organization
func (h *OrganizationHandler) Approve(c *gin.Context) {
	h.transition(c, h.orgService.Approve)
}

// Reject declines a pending organization
func (h *OrganizationHandler) Reject(c *gin.Context) {
	h.transition(c, h.orgService.Reject)
}

// Suspend deactivates an active organization
func (h *OrganizationHandler) Suspend(c *gin.Context) {
	h.transition(c, h.orgService.Suspend)
}

// Delete removes an organization and all its data
func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.orgService.DeleteOrganization(c.Request.Context(), orgID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *OrganizationHandler) transition(c *gin.Context, fn func(ctx context.Context, orgID uuid.UUID) (*identity.OrganizationInfo, error)) {
	orgID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	org, err := fn(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}
