package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/travvip/backend/internal/domain/catalog"
)

// HotelInput carries the fields for creating or updating a hotel
type HotelInput struct {
	Name          string          `json:"name" binding:"required"`
	Location      string          `json:"location"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Image         string          `json:"image"`
	IsActive      *bool           `json:"isActive"`
}

// HotelInfo is the read model for a hotel
type HotelInfo struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Location      string          `json:"location,omitempty"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Image         string          `json:"image,omitempty"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// NewHotelInfo maps a hotel onto its read model
func NewHotelInfo(h *catalog.Hotel) HotelInfo {
	return HotelInfo{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		Description:   h.Description,
		Category:      h.Category,
		PricePerNight: h.PricePerNight,
		Image:         h.Image,
		IsActive:      h.IsActive,
		CreatedAt:     h.CreatedAt,
	}
}

// TourPackageInput carries the fields for creating or updating a tour package
type TourPackageInput struct {
	Name        string          `json:"name" binding:"required"`
	Destination string          `json:"destination"`
	Description string          `json:"description"`
	Nights      int             `json:"nights"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	IsActive    *bool           `json:"isActive"`
}

// TourPackageInfo is the read model for a tour package
type TourPackageInfo struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Destination string          `json:"destination,omitempty"`
	Description string          `json:"description,omitempty"`
	Nights      int             `json:"nights"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewTourPackageInfo maps a tour package onto its read model
func NewTourPackageInfo(p *catalog.TourPackage) TourPackageInfo {
	return TourPackageInfo{
		ID:          p.ID,
		Name:        p.Name,
		Destination: p.Destination,
		Description: p.Description,
		Nights:      p.Nights,
		Price:       p.Price,
		Image:       p.Image,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// ActivityInput carries the fields for creating or updating an activity
type ActivityInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	IsActive    *bool           `json:"isActive"`
}

// ActivityInfo is the read model for an activity
type ActivityInfo struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewActivityInfo maps an activity onto its read model
func NewActivityInfo(a *catalog.Activity) ActivityInfo {
	return ActivityInfo{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Location:    a.Location,
		Price:       a.Price,
		Image:       a.Image,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// RouteInput carries the fields for creating or updating a route
type RouteInput struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	ActivityIDs []uuid.UUID `json:"activityIds"`
	IsActive    *bool       `json:"isActive"`
}

// RouteInfo is the read model for a route
type RouteInfo struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ActivityIDs []uuid.UUID `json:"activityIds"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewRouteInfo maps a route onto its read model
func NewRouteInfo(r *catalog.Route) RouteInfo {
	ids := []uuid.UUID(r.ActivityIDs)
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return RouteInfo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ActivityIDs: ids,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

// TransportInput carries the fields for creating or updating a transport
type TransportInput struct {
	VehicleType string          `json:"vehicleType"`
	VehicleName string          `json:"vehicleName" binding:"required"`
	Capacity    int             `json:"capacity"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	Image       string          `json:"image"`
	IsActive    *bool           `json:"isActive"`
}

// TransportInfo is the read model for a transport
type TransportInfo struct {
	ID          uuid.UUID       `json:"id"`
	VehicleType string          `json:"vehicleType,omitempty"`
	VehicleName string          `json:"vehicleName"`
	Capacity    int             `json:"capacity"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	Image       string          `json:"image,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewTransportInfo maps a transport onto its read model
func NewTransportInfo(t *catalog.Transport) TransportInfo {
	return TransportInfo{
		ID:          t.ID,
		VehicleType: t.VehicleType,
		VehicleName: t.VehicleName,
		Capacity:    t.Capacity,
		PricePerDay: t.PricePerDay,
		Image:       t.Image,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

// UploadImageResult is returned after an image lands in object storage
type UploadImageResult struct {
	URL string `json:"url"`
}
