package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// HotelRepository defines the interface for hotel persistence
type HotelRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Hotel, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Hotel, error)
	Save(ctx context.Context, hotel *Hotel) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
}

// TourPackageRepository defines the interface for tour package persistence
type TourPackageRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*TourPackage, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]TourPackage, error)
	Save(ctx context.Context, pkg *TourPackage) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
}

// ActivityRepository defines the interface for activity persistence
type ActivityRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Activity, error)

	// FindByIDsForOrg returns the subset of the given activities that exist
	// within the organization.
	FindByIDsForOrg(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Activity, error)

	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Activity, error)
	Save(ctx context.Context, activity *Activity) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
}

// RouteRepository defines the interface for route persistence
type RouteRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Route, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Route, error)
	Save(ctx context.Context, route *Route) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
}

// TransportRepository defines the interface for transport persistence
type TransportRepository interface {
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Transport, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Transport, error)
	Save(ctx context.Context, transport *Transport) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
}
