// Package catalog holds the organization-scoped reference data selected into
// quotes: hotels, tour packages, activities, routes and transports.
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/shared"
)

// UUIDList is a slice of ids that implements GORM Scanner/Valuer for JSONB storage
type UUIDList []uuid.UUID

// Value implements driver.Valuer for JSONB storage
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB reads
func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan UUIDList: unsupported type")
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Hotel is a bookable property
type Hotel struct {
	shared.OrgAggregateRoot
	Name          string
	Location      string
	Description   string
	Category      string
	PricePerNight decimal.Decimal
	Image         string
	IsActive      bool
}

// NewHotel creates an active hotel
func NewHotel(orgID uuid.UUID, name, location string) (*Hotel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Hotel name cannot be empty")
	}
	return &Hotel{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
		Location:         strings.TrimSpace(location),
		IsActive:         true,
	}, nil
}

// TourPackage is a pre-built trip offering used as the starting point of a query
type TourPackage struct {
	shared.OrgAggregateRoot
	Name        string
	Destination string
	Description string
	Nights      int
	Price       decimal.Decimal
	Image       string
	IsActive    bool
}

// NewTourPackage creates an active tour package
func NewTourPackage(orgID uuid.UUID, name, destination string) (*TourPackage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Package name cannot be empty")
	}
	return &TourPackage{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
		Destination:      strings.TrimSpace(destination),
		IsActive:         true,
	}, nil
}

// Activity is a sight or experience that can be placed on a day plan
type Activity struct {
	shared.OrgAggregateRoot
	Name        string
	Description string
	Location    string
	Price       decimal.Decimal
	Image       string
	IsActive    bool
}

// NewActivity creates an active activity
func NewActivity(orgID uuid.UUID, name string) (*Activity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Activity name cannot be empty")
	}
	return &Activity{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             strings.TrimSpace(name),
		IsActive:         true,
	}, nil
}

// Route is a named day-trip template referencing a set of activities.
// Selecting a route on a day plan filters the candidate activity list.
type Route struct {
	shared.OrgAggregateRoot
	Title       string
	Description string
	ActivityIDs UUIDList
	IsActive    bool
}

// NewRoute creates an active route
func NewRoute(orgID uuid.UUID, title string) (*Route, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Route title cannot be empty")
	}
	return &Route{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Title:            strings.TrimSpace(title),
		IsActive:         true,
	}, nil
}

// HasActivity reports whether the route references the given activity
func (r *Route) HasActivity(activityID uuid.UUID) bool {
	for _, id := range r.ActivityIDs {
		if id == activityID {
			return true
		}
	}
	return false
}

// Transport is a vehicle offering. VehicleType and VehicleName are stored in
// the generic type/name columns for compatibility with the public API's
// vehicleType/vehicleName fields.
type Transport struct {
	shared.OrgAggregateRoot
	VehicleType string
	VehicleName string
	Capacity    int
	PricePerDay decimal.Decimal
	Image       string
	IsActive    bool
}

// NewTransport creates an active transport
func NewTransport(orgID uuid.UUID, vehicleType, vehicleName string) (*Transport, error) {
	if strings.TrimSpace(vehicleName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vehicle name cannot be empty")
	}
	return &Transport{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		VehicleType:      strings.TrimSpace(vehicleType),
		VehicleName:      strings.TrimSpace(vehicleName),
		IsActive:         true,
	}, nil
}
