package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/travvip/backend/internal/application/catalog"
)

// CatalogHandler handles the inventory of quotable building blocks
type CatalogHandler struct {
	BaseHandler
	catalogService *catalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.POST("", h.CreateHotel)
		hotels.GET("", h.ListHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.PUT("/:id", h.UpdateHotel)
		hotels.DELETE("/:id", h.DeleteHotel)
	}

	packages := rg.Group("/packages")
	{
		packages.POST("", h.CreateTourPackage)
		packages.GET("", h.ListTourPackages)
		packages.GET("/:id", h.GetTourPackage)
		packages.PUT("/:id", h.UpdateTourPackage)
		packages.DELETE("/:id", h.DeleteTourPackage)
	}

	activities := rg.Group("/activities")
	{
		activities.POST("", h.CreateActivity)
		activities.GET("", h.ListActivities)
		activities.GET("/:id", h.GetActivity)
		activities.PUT("/:id", h.UpdateActivity)
		activities.DELETE("/:id", h.DeleteActivity)
	}

	routes := rg.Group("/routes")
	{
		routes.POST("", h.CreateRoute)
		routes.GET("", h.ListRoutes)
		routes.GET("/:id", h.GetRoute)
		routes.GET("/:id/activities", h.RouteActivities)
		routes.PUT("/:id", h.UpdateRoute)
		routes.DELETE("/:id", h.DeleteRoute)
	}

	transports := rg.Group("/transports")
	{
		transports.POST("", h.CreateTransport)
		transports.GET("", h.ListTransports)
		transports.GET("/:id", h.GetTransport)
		transports.PUT("/:id", h.UpdateTransport)
		transports.DELETE("/:id", h.DeleteTransport)
	}
}

// Hotels

func (h *CatalogHandler) CreateHotel(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input catalog.HotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	hotel, err := h.catalogService.CreateHotel(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, hotel)
}

func (h *CatalogHandler) ListHotels(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}
	hotels, err := h.catalogService.ListHotels(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hotels)
}

func (h *CatalogHandler) GetHotel(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.catalogService.GetHotel(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hotel)
}

func (h *CatalogHandler) UpdateHotel(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input catalog.HotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	hotel, err := h.catalogService.UpdateHotel(c.Request.Context(), orgID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, hotel)
}

func (h *CatalogHandler) DeleteHotel(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteHotel(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Tour packages

func (h *CatalogHandler) CreateTourPackage(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input catalog.TourPackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	pkg, err := h.catalogService.CreateTourPackage(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pkg)
}

func (h *CatalogHandler) ListTourPackages(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}
	packages, err := h.catalogService.ListTourPackages(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, packages)
}

func (h *CatalogHandler) GetTourPackage(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	pkg, err := h.catalogService.GetTourPackage(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

func (h *CatalogHandler) UpdateTourPackage(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input catalog.TourPackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	pkg, err := h.catalogService.UpdateTourPackage(c.Request.Context(), orgID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

func (h *CatalogHandler) DeleteTourPackage(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteTourPackage(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activities

func (h *CatalogHandler) CreateActivity(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input catalog.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	activity, err := h.catalogService.CreateActivity(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, activity)
}

func (h *CatalogHandler) ListActivities(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}
	activities, err := h.catalogService.ListActivities(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activities)
}

func (h *CatalogHandler) GetActivity(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	activity, err := h.catalogService.GetActivity(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activity)
}

func (h *CatalogHandler) UpdateActivity(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input catalog.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	activity, err := h.catalogService.UpdateActivity(c.Request.Context(), orgID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activity)
}

func (h *CatalogHandler) DeleteActivity(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteActivity(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Routes

func (h *CatalogHandler) CreateRoute(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input catalog.RouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	route, err := h.catalogService.CreateRoute(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, route)
}

func (h *CatalogHandler) ListRoutes(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}
	routes, err := h.catalogService.ListRoutes(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, routes)
}

func (h *CatalogHandler) GetRoute(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	route, err := h.catalogService.GetRoute(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// RouteActivities returns the activity snapshots a route references
func (h *CatalogHandler) RouteActivities(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	activities, err := h.catalogService.RouteActivities(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activities)
}

func (h *CatalogHandler) UpdateRoute(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input catalog.RouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	route, err := h.catalogService.UpdateRoute(c.Request.Context(), orgID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

func (h *CatalogHandler) DeleteRoute(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteRoute(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Transports

func (h *CatalogHandler) CreateTransport(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	var input catalog.TransportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	transport, err := h.catalogService.CreateTransport(c.Request.Context(), orgID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, transport)
}

func (h *CatalogHandler) ListTransports(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	req, ok := h.listRequest(c)
	if !ok {
		return
	}
	transports, err := h.catalogService.ListTransports(c.Request.Context(), orgID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transports)
}

func (h *CatalogHandler) GetTransport(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	transport, err := h.catalogService.GetTransport(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transport)
}

func (h *CatalogHandler) UpdateTransport(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var input catalog.TransportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindingError(c, err)
		return
	}
	transport, err := h.catalogService.UpdateTransport(c.Request.Context(), orgID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transport)
}

func (h *CatalogHandler) DeleteTransport(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteTransport(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
