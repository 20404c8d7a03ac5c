package models

import (
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/catalog"
)

// HotelModel is the GORM model for hotels
type HotelModel struct {
	OrgAggregateModel
	Name          string          `gorm:"type:varchar(255);not null"`
	Location      string          `gorm:"type:varchar(255)"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"type:varchar(50)"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Image         string          `gorm:"type:varchar(512)"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name for HotelModel
func (HotelModel) TableName() string {
	return "hotels"
}

// ToDomain converts HotelModel to domain Hotel
func (m *HotelModel) ToDomain() *catalog.Hotel {
	return &catalog.Hotel{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Name:             m.Name,
		Location:         m.Location,
		Description:      m.Description,
		Category:         m.Category,
		PricePerNight:    m.PricePerNight,
		Image:            m.Image,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates HotelModel from domain Hotel
func (m *HotelModel) FromDomain(h *catalog.Hotel) {
	m.FromDomainOrgAggregateRoot(h.OrgAggregateRoot)
	m.Name = h.Name
	m.Location = h.Location
	m.Description = h.Description
	m.Category = h.Category
	m.PricePerNight = h.PricePerNight
	m.Image = h.Image
	m.IsActive = h.IsActive
}

// TourPackageModel is the GORM model for tour packages
type TourPackageModel struct {
	OrgAggregateModel
	Name        string          `gorm:"type:varchar(255);not null"`
	Destination string          `gorm:"type:varchar(255)"`
	Description string          `gorm:"type:text"`
	Nights      int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Image       string          `gorm:"type:varchar(512)"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name for TourPackageModel
func (TourPackageModel) TableName() string {
	return "tour_packages"
}

// ToDomain converts TourPackageModel to domain TourPackage
func (m *TourPackageModel) ToDomain() *catalog.TourPackage {
	return &catalog.TourPackage{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Name:             m.Name,
		Destination:      m.Destination,
		Description:      m.Description,
		Nights:           m.Nights,
		Price:            m.Price,
		Image:            m.Image,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates TourPackageModel from domain TourPackage
func (m *TourPackageModel) FromDomain(p *catalog.TourPackage) {
	m.FromDomainOrgAggregateRoot(p.OrgAggregateRoot)
	m.Name = p.Name
	m.Destination = p.Destination
	m.Description = p.Description
	m.Nights = p.Nights
	m.Price = p.Price
	m.Image = p.Image
	m.IsActive = p.IsActive
}

// ActivityModel is the GORM model for catalog activities
type ActivityModel struct {
	OrgAggregateModel
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Location    string          `gorm:"type:varchar(255)"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Image       string          `gorm:"type:varchar(512)"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name for ActivityModel
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts ActivityModel to domain Activity
func (m *ActivityModel) ToDomain() *catalog.Activity {
	return &catalog.Activity{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Name:             m.Name,
		Description:      m.Description,
		Location:         m.Location,
		Price:            m.Price,
		Image:            m.Image,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates ActivityModel from domain Activity
func (m *ActivityModel) FromDomain(a *catalog.Activity) {
	m.FromDomainOrgAggregateRoot(a.OrgAggregateRoot)
	m.Name = a.Name
	m.Description = a.Description
	m.Location = a.Location
	m.Price = a.Price
	m.Image = a.Image
	m.IsActive = a.IsActive
}

// RouteModel is the GORM model for day-trip routes
type RouteModel struct {
	OrgAggregateModel
	Title       string           `gorm:"type:varchar(255);not null"`
	Description string           `gorm:"type:text"`
	ActivityIDs catalog.UUIDList `gorm:"type:jsonb;not null;default:'[]'"`
	IsActive    bool             `gorm:"not null;default:true"`
}

// TableName specifies the table name for RouteModel
func (RouteModel) TableName() string {
	return "routes"
}

// ToDomain converts RouteModel to domain Route
func (m *RouteModel) ToDomain() *catalog.Route {
	return &catalog.Route{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Title:            m.Title,
		Description:      m.Description,
		ActivityIDs:      m.ActivityIDs,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates RouteModel from domain Route
func (m *RouteModel) FromDomain(r *catalog.Route) {
	m.FromDomainOrgAggregateRoot(r.OrgAggregateRoot)
	m.Title = r.Title
	m.Description = r.Description
	m.ActivityIDs = r.ActivityIDs
	m.IsActive = r.IsActive
}

// TransportModel is the GORM model for transports. The vehicle fields map to
// the generic type/name columns.
type TransportModel struct {
	OrgAggregateModel
	VehicleType string          `gorm:"column:type;type:varchar(100)"`
	VehicleName string          `gorm:"column:name;type:varchar(255);not null"`
	Capacity    int             `gorm:"not null;default:0"`
	PricePerDay decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Image       string          `gorm:"type:varchar(512)"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name for TransportModel
func (TransportModel) TableName() string {
	return "transports"
}

// ToDomain converts TransportModel to domain Transport
func (m *TransportModel) ToDomain() *catalog.Transport {
	return &catalog.Transport{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		VehicleType:      m.VehicleType,
		VehicleName:      m.VehicleName,
		Capacity:         m.Capacity,
		PricePerDay:      m.PricePerDay,
		Image:            m.Image,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates TransportModel from domain Transport
func (m *TransportModel) FromDomain(t *catalog.Transport) {
	m.FromDomainOrgAggregateRoot(t.OrgAggregateRoot)
	m.VehicleType = t.VehicleType
	m.VehicleName = t.VehicleName
	m.Capacity = t.Capacity
	m.PricePerDay = t.PricePerDay
	m.Image = t.Image
	m.IsActive = t.IsActive
}
