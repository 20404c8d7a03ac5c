package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/catalog"
	"github.com/travvip/backend/internal/domain/shared"
)

// CatalogService manages the organization's reference data: hotels, tour
// packages, activities, routes and transports
type CatalogService struct {
	hotelRepo     catalog.HotelRepository
	packageRepo   catalog.TourPackageRepository
	activityRepo  catalog.ActivityRepository
	routeRepo     catalog.RouteRepository
	transportRepo catalog.TransportRepository
	logger        *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	hotelRepo catalog.HotelRepository,
	packageRepo catalog.TourPackageRepository,
	activityRepo catalog.ActivityRepository,
	routeRepo catalog.RouteRepository,
	transportRepo catalog.TransportRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		hotelRepo:     hotelRepo,
		packageRepo:   packageRepo,
		activityRepo:  activityRepo,
		routeRepo:     routeRepo,
		transportRepo: transportRepo,
		logger:        logger,
	}
}

// CreateHotel adds a hotel to the catalog
func (s *CatalogService) CreateHotel(ctx context.Context, orgID uuid.UUID, input HotelInput) (*HotelInfo, error) {
	hotel, err := catalog.NewHotel(orgID, input.Name, input.Location)
	if err != nil {
		return nil, err
	}
	applyHotelInput(hotel, input)

	if err := s.hotelRepo.Save(ctx, hotel); err != nil {
		s.logger.Error("failed to save hotel", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create hotel")
	}

	info := NewHotelInfo(hotel)
	return &info, nil
}

// GetHotel returns a single hotel
func (s *CatalogService) GetHotel(ctx context.Context, orgID, id uuid.UUID) (*HotelInfo, error) {
	hotel, err := s.hotelRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "hotel", id)
	}
	info := NewHotelInfo(hotel)
	return &info, nil
}

// ListHotels returns the organization's hotels
func (s *CatalogService) ListHotels(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]HotelInfo, error) {
	hotels, err := s.hotelRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list hotels", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list hotels")
	}
	infos := make([]HotelInfo, 0, len(hotels))
	for i := range hotels {
		infos = append(infos, NewHotelInfo(&hotels[i]))
	}
	return infos, nil
}

// UpdateHotel replaces a hotel's editable fields
func (s *CatalogService) UpdateHotel(ctx context.Context, orgID, id uuid.UUID, input HotelInput) (*HotelInfo, error) {
	hotel, err := s.hotelRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "hotel", id)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Hotel name cannot be empty")
	}
	hotel.Name = name
	hotel.Location = strings.TrimSpace(input.Location)
	applyHotelInput(hotel, input)

	if err := s.hotelRepo.Save(ctx, hotel); err != nil {
		s.logger.Error("failed to update hotel", zap.Error(err), zap.String("hotel_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update hotel")
	}

	info := NewHotelInfo(hotel)
	return &info, nil
}

// DeleteHotel removes a hotel from the catalog
func (s *CatalogService) DeleteHotel(ctx context.Context, orgID, id uuid.UUID) error {
	return s.deleteEntity(s.hotelRepo.DeleteForOrg, ctx, orgID, id, "hotel")
}

// CreateTourPackage adds a tour package to the catalog
func (s *CatalogService) CreateTourPackage(ctx context.Context, orgID uuid.UUID, input TourPackageInput) (*TourPackageInfo, error) {
	pkg, err := catalog.NewTourPackage(orgID, input.Name, input.Destination)
	if err != nil {
		return nil, err
	}
	applyTourPackageInput(pkg, input)

	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		s.logger.Error("failed to save tour package", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tour package")
	}

	info := NewTourPackageInfo(pkg)
	return &info, nil
}

// GetTourPackage returns a single tour package
func (s *CatalogService) GetTourPackage(ctx context.Context, orgID, id uuid.UUID) (*TourPackageInfo, error) {
	pkg, err := s.packageRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "tour package", id)
	}
	info := NewTourPackageInfo(pkg)
	return &info, nil
}

// ListTourPackages returns the organization's tour packages
func (s *CatalogService) ListTourPackages(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]TourPackageInfo, error) {
	pkgs, err := s.packageRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list tour packages", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tour packages")
	}
	infos := make([]TourPackageInfo, 0, len(pkgs))
	for i := range pkgs {
		infos = append(infos, NewTourPackageInfo(&pkgs[i]))
	}
	return infos, nil
}

// UpdateTourPackage replaces a tour package's editable fields
func (s *CatalogService) UpdateTourPackage(ctx context.Context, orgID, id uuid.UUID, input TourPackageInput) (*TourPackageInfo, error) {
	pkg, err := s.packageRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "tour package", id)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Package name cannot be empty")
	}
	pkg.Name = name
	pkg.Destination = strings.TrimSpace(input.Destination)
	applyTourPackageInput(pkg, input)

	if err := s.packageRepo.Save(ctx, pkg); err != nil {
		s.logger.Error("failed to update tour package", zap.Error(err), zap.String("package_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tour package")
	}

	info := NewTourPackageInfo(pkg)
	return &info, nil
}

// DeleteTourPackage removes a tour package from the catalog
func (s *CatalogService) DeleteTourPackage(ctx context.Context, orgID, id uuid.UUID) error {
	return s.deleteEntity(s.packageRepo.DeleteForOrg, ctx, orgID, id, "tour package")
}

// CreateActivity adds an activity to the catalog
func (s *CatalogService) CreateActivity(ctx context.Context, orgID uuid.UUID, input ActivityInput) (*ActivityInfo, error) {
	activity, err := catalog.NewActivity(orgID, input.Name)
	if err != nil {
		return nil, err
	}
	applyActivityInput(activity, input)

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		s.logger.Error("failed to save activity", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create activity")
	}

	info := NewActivityInfo(activity)
	return &info, nil
}

// GetActivity returns a single activity
func (s *CatalogService) GetActivity(ctx context.Context, orgID, id uuid.UUID) (*ActivityInfo, error) {
	activity, err := s.activityRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "activity", id)
	}
	info := NewActivityInfo(activity)
	return &info, nil
}

// ListActivities returns the organization's activities
func (s *CatalogService) ListActivities(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]ActivityInfo, error) {
	activities, err := s.activityRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list activities", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list activities")
	}
	infos := make([]ActivityInfo, 0, len(activities))
	for i := range activities {
		infos = append(infos, NewActivityInfo(&activities[i]))
	}
	return infos, nil
}

// UpdateActivity replaces an activity's editable fields
func (s *CatalogService) UpdateActivity(ctx context.Context, orgID, id uuid.UUID, input ActivityInput) (*ActivityInfo, error) {
	activity, err := s.activityRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "activity", id)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Activity name cannot be empty")
	}
	activity.Name = name
	applyActivityInput(activity, input)

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		s.logger.Error("failed to update activity", zap.Error(err), zap.String("activity_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update activity")
	}

	info := NewActivityInfo(activity)
	return &info, nil
}

// DeleteActivity removes an activity from the catalog
func (s *CatalogService) DeleteActivity(ctx context.Context, orgID, id uuid.UUID) error {
	return s.deleteEntity(s.activityRepo.DeleteForOrg, ctx, orgID, id, "activity")
}

// CreateRoute adds a route to the catalog. Referenced activities must exist
// within the organization.
func (s *CatalogService) CreateRoute(ctx context.Context, orgID uuid.UUID, input RouteInput) (*RouteInfo, error) {
	route, err := catalog.NewRoute(orgID, input.Title)
	if err != nil {
		return nil, err
	}
	route.Description = input.Description

	ids, err := s.validateActivityIDs(ctx, orgID, input.ActivityIDs)
	if err != nil {
		return nil, err
	}
	route.ActivityIDs = ids
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}

	if err := s.routeRepo.Save(ctx, route); err != nil {
		s.logger.Error("failed to save route", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create route")
	}

	info := NewRouteInfo(route)
	return &info, nil
}

// GetRoute returns a single route
func (s *CatalogService) GetRoute(ctx context.Context, orgID, id uuid.UUID) (*RouteInfo, error) {
	route, err := s.routeRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "route", id)
	}
	info := NewRouteInfo(route)
	return &info, nil
}

// ListRoutes returns the organization's routes
func (s *CatalogService) ListRoutes(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]RouteInfo, error) {
	routes, err := s.routeRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list routes", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list routes")
	}
	infos := make([]RouteInfo, 0, len(routes))
	for i := range routes {
		infos = append(infos, NewRouteInfo(&routes[i]))
	}
	return infos, nil
}

// UpdateRoute replaces a route's editable fields
func (s *CatalogService) UpdateRoute(ctx context.Context, orgID, id uuid.UUID, input RouteInput) (*RouteInfo, error) {
	route, err := s.routeRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "route", id)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Route title cannot be empty")
	}
	route.Title = title
	route.Description = input.Description

	ids, err := s.validateActivityIDs(ctx, orgID, input.ActivityIDs)
	if err != nil {
		return nil, err
	}
	route.ActivityIDs = ids
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}

	if err := s.routeRepo.Save(ctx, route); err != nil {
		s.logger.Error("failed to update route", zap.Error(err), zap.String("route_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update route")
	}

	info := NewRouteInfo(route)
	return &info, nil
}

// DeleteRoute removes a route from the catalog
func (s *CatalogService) DeleteRoute(ctx context.Context, orgID, id uuid.UUID) error {
	return s.deleteEntity(s.routeRepo.DeleteForOrg, ctx, orgID, id, "route")
}

// RouteActivities returns the activities referenced by a route, for the
// day-plan candidate list
func (s *CatalogService) RouteActivities(ctx context.Context, orgID, routeID uuid.UUID) ([]ActivityInfo, error) {
	route, err := s.routeRepo.FindByIDForOrg(ctx, orgID, routeID)
	if err != nil {
		return nil, s.loadError(err, "route", routeID)
	}
	if len(route.ActivityIDs) == 0 {
		return []ActivityInfo{}, nil
	}

	activities, err := s.activityRepo.FindByIDsForOrg(ctx, orgID, route.ActivityIDs)
	if err != nil {
		s.logger.Error("failed to load route activities", zap.Error(err), zap.String("route_id", routeID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load route activities")
	}

	infos := make([]ActivityInfo, 0, len(activities))
	for i := range activities {
		infos = append(infos, NewActivityInfo(&activities[i]))
	}
	return infos, nil
}

// CreateTransport adds a transport to the catalog
func (s *CatalogService) CreateTransport(ctx context.Context, orgID uuid.UUID, input TransportInput) (*TransportInfo, error) {
	transport, err := catalog.NewTransport(orgID, input.VehicleType, input.VehicleName)
	if err != nil {
		return nil, err
	}
	applyTransportInput(transport, input)

	if err := s.transportRepo.Save(ctx, transport); err != nil {
		s.logger.Error("failed to save transport", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create transport")
	}

	info := NewTransportInfo(transport)
	return &info, nil
}

// GetTransport returns a single transport
func (s *CatalogService) GetTransport(ctx context.Context, orgID, id uuid.UUID) (*TransportInfo, error) {
	transport, err := s.transportRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "transport", id)
	}
	info := NewTransportInfo(transport)
	return &info, nil
}

// ListTransports returns the organization's transports
func (s *CatalogService) ListTransports(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]TransportInfo, error) {
	transports, err := s.transportRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list transports", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list transports")
	}
	infos := make([]TransportInfo, 0, len(transports))
	for i := range transports {
		infos = append(infos, NewTransportInfo(&transports[i]))
	}
	return infos, nil
}

// UpdateTransport replaces a transport's editable fields
func (s *CatalogService) UpdateTransport(ctx context.Context, orgID, id uuid.UUID, input TransportInput) (*TransportInfo, error) {
	transport, err := s.transportRepo.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, s.loadError(err, "transport", id)
	}

	name := strings.TrimSpace(input.VehicleName)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vehicle name cannot be empty")
	}
	transport.VehicleName = name
	transport.VehicleType = strings.TrimSpace(input.VehicleType)
	applyTransportInput(transport, input)

	if err := s.transportRepo.Save(ctx, transport); err != nil {
		s.logger.Error("failed to update transport", zap.Error(err), zap.String("transport_id", id.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update transport")
	}

	info := NewTransportInfo(transport)
	return &info, nil
}

// DeleteTransport removes a transport from the catalog
func (s *CatalogService) DeleteTransport(ctx context.Context, orgID, id uuid.UUID) error {
	return s.deleteEntity(s.transportRepo.DeleteForOrg, ctx, orgID, id, "transport")
}

func (s *CatalogService) validateActivityIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (catalog.UUIDList, error) {
	if len(ids) == 0 {
		return catalog.UUIDList{}, nil
	}
	found, err := s.activityRepo.FindByIDsForOrg(ctx, orgID, ids)
	if err != nil {
		s.logger.Error("failed to validate route activities", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate activities")
	}
	if len(found) != len(dedupe(ids)) {
		return nil, shared.NewDomainError("UNKNOWN_ACTIVITY", "One or more activities do not exist")
	}
	return catalog.UUIDList(dedupe(ids)), nil
}

func (s *CatalogService) deleteEntity(
	del func(ctx context.Context, orgID, id uuid.UUID) error,
	ctx context.Context, orgID, id uuid.UUID, kind string,
) error {
	if err := del(ctx, orgID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete "+kind, zap.Error(err), zap.String("id", id.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete "+kind)
	}
	return nil
}

func (s *CatalogService) loadError(err error, kind string, id uuid.UUID) error {
	if errors.Is(err, shared.ErrNotFound) {
		return err
	}
	s.logger.Error("failed to load "+kind, zap.Error(err), zap.String("id", id.String()))
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to load "+kind)
}

func applyHotelInput(h *catalog.Hotel, input HotelInput) {
	h.Description = input.Description
	h.Category = strings.TrimSpace(input.Category)
	h.PricePerNight = normalizePrice(input.PricePerNight)
	h.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		h.IsActive = *input.IsActive
	}
}

func applyTourPackageInput(p *catalog.TourPackage, input TourPackageInput) {
	p.Description = input.Description
	if input.Nights > 0 {
		p.Nights = input.Nights
	}
	p.Price = normalizePrice(input.Price)
	p.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
}

func applyActivityInput(a *catalog.Activity, input ActivityInput) {
	a.Description = input.Description
	a.Location = strings.TrimSpace(input.Location)
	a.Price = normalizePrice(input.Price)
	a.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	}
}

func applyTransportInput(t *catalog.Transport, input TransportInput) {
	if input.Capacity > 0 {
		t.Capacity = input.Capacity
	}
	t.PricePerDay = normalizePrice(input.PricePerDay)
	t.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}
}
