package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/catalog"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// catalogFilter applies the filter options shared by every catalog table
func catalogFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		searchPattern := "%" + filter.Search + "%"
		clauses := make([]string, len(searchColumns))
		args := make([]interface{}, len(searchColumns))
		for i, col := range searchColumns {
			clauses[i] = col + " ILIKE ?"
			args[i] = searchPattern
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "location":
			query = query.Where("location = ?", value)
		case "destination":
			query = query.Where("destination = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// GormHotelRepository implements HotelRepository using GORM
type GormHotelRepository struct {
	db *gorm.DB
}

// NewGormHotelRepository creates a new GormHotelRepository
func NewGormHotelRepository(db *gorm.DB) *GormHotelRepository {
	return &GormHotelRepository{db: db}
}

// FindByIDForOrg finds a hotel by ID within an organization
func (r *GormHotelRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Hotel, error) {
	var model models.HotelModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds all hotels for an organization
func (r *GormHotelRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Hotel, error) {
	var hotelModels []models.HotelModel
	query := catalogFilter(
		r.db.WithContext(ctx).Model(&models.HotelModel{}).
			Where("organization_id = ?", orgID),
		filter, "name", "location",
	)

	if err := query.Find(&hotelModels).Error; err != nil {
		return nil, err
	}

	hotels := make([]catalog.Hotel, len(hotelModels))
	for i, model := range hotelModels {
		hotels[i] = *model.ToDomain()
	}
	return hotels, nil
}

// Save creates or updates a hotel
func (r *GormHotelRepository) Save(ctx context.Context, hotel *catalog.Hotel) error {
	var model models.HotelModel
	model.FromDomain(hotel)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForOrg deletes a hotel within an organization
func (r *GormHotelRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HotelModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOrg counts hotels for an organization
func (r *GormHotelRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.HotelModel{}).
		Where("organization_id = ?", orgID)
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormTourPackageRepository implements TourPackageRepository using GORM
type GormTourPackageRepository struct {
	db *gorm.DB
}

// NewGormTourPackageRepository creates a new GormTourPackageRepository
func NewGormTourPackageRepository(db *gorm.DB) *GormTourPackageRepository {
	return &GormTourPackageRepository{db: db}
}

// FindByIDForOrg finds a tour package by ID within an organization
func (r *GormTourPackageRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.TourPackage, error) {
	var model models.TourPackageModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds all tour packages for an organization
func (r *GormTourPackageRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.TourPackage, error) {
	var pkgModels []models.TourPackageModel
	query := catalogFilter(
		r.db.WithContext(ctx).Model(&models.TourPackageModel{}).
			Where("organization_id = ?", orgID),
		filter, "name", "destination",
	)

	if err := query.Find(&pkgModels).Error; err != nil {
		return nil, err
	}

	pkgs := make([]catalog.TourPackage, len(pkgModels))
	for i, model := range pkgModels {
		pkgs[i] = *model.ToDomain()
	}
	return pkgs, nil
}

// Save creates or updates a tour package
func (r *GormTourPackageRepository) Save(ctx context.Context, pkg *catalog.TourPackage) error {
	var model models.TourPackageModel
	model.FromDomain(pkg)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForOrg deletes a tour package within an organization
func (r *GormTourPackageRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TourPackageModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOrg counts tour packages for an organization
func (r *GormTourPackageRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TourPackageModel{}).
		Where("organization_id = ?", orgID)
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByIDForOrg finds an activity by ID within an organization
func (r *GormActivityRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForOrg returns the subset of the given activities within the organization
func (r *GormActivityRepository) FindByIDsForOrg(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]catalog.Activity, error) {
	if len(ids) == 0 {
		return []catalog.Activity{}, nil
	}

	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id IN ?", orgID, ids).
		Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]catalog.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, nil
}

// FindAllForOrg finds all activities for an organization
func (r *GormActivityRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Activity, error) {
	var activityModels []models.ActivityModel
	query := catalogFilter(
		r.db.WithContext(ctx).Model(&models.ActivityModel{}).
			Where("organization_id = ?", orgID),
		filter, "name", "location",
	)

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]catalog.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, nil
}

// Save creates or updates an activity
func (r *GormActivityRepository) Save(ctx context.Context, activity *catalog.Activity) error {
	var model models.ActivityModel
	model.FromDomain(activity)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForOrg deletes an activity within an organization
func (r *GormActivityRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOrg counts activities for an organization
func (r *GormActivityRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("organization_id = ?", orgID)
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormRouteRepository implements RouteRepository using GORM
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// FindByIDForOrg finds a route by ID within an organization
func (r *GormRouteRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Route, error) {
	var model models.RouteModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds all routes for an organization
func (r *GormRouteRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Route, error) {
	var routeModels []models.RouteModel
	query := catalogFilter(
		r.db.WithContext(ctx).Model(&models.RouteModel{}).
			Where("organization_id = ?", orgID),
		filter, "title",
	)

	if err := query.Find(&routeModels).Error; err != nil {
		return nil, err
	}

	routes := make([]catalog.Route, len(routeModels))
	for i, model := range routeModels {
		routes[i] = *model.ToDomain()
	}
	return routes, nil
}

// Save creates or updates a route
func (r *GormRouteRepository) Save(ctx context.Context, route *catalog.Route) error {
	var model models.RouteModel
	model.FromDomain(route)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForOrg deletes a route within an organization
func (r *GormRouteRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RouteModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOrg counts routes for an organization
func (r *GormRouteRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RouteModel{}).
		Where("organization_id = ?", orgID)
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormTransportRepository implements TransportRepository using GORM
type GormTransportRepository struct {
	db *gorm.DB
}

// NewGormTransportRepository creates a new GormTransportRepository
func NewGormTransportRepository(db *gorm.DB) *GormTransportRepository {
	return &GormTransportRepository{db: db}
}

// FindByIDForOrg finds a transport by ID within an organization
func (r *GormTransportRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Transport, error) {
	var model models.TransportModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", orgID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds all transports for an organization
func (r *GormTransportRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Transport, error) {
	var transportModels []models.TransportModel
	query := catalogFilter(
		r.db.WithContext(ctx).Model(&models.TransportModel{}).
			Where("organization_id = ?", orgID),
		filter, "name", "type",
	)

	if err := query.Find(&transportModels).Error; err != nil {
		return nil, err
	}

	transports := make([]catalog.Transport, len(transportModels))
	for i, model := range transportModels {
		transports[i] = *model.ToDomain()
	}
	return transports, nil
}

// Save creates or updates a transport
func (r *GormTransportRepository) Save(ctx context.Context, transport *catalog.Transport) error {
	var model models.TransportModel
	model.FromDomain(transport)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForOrg deletes a transport within an organization
func (r *GormTransportRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TransportModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOrg counts transports for an organization
func (r *GormTransportRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TransportModel{}).
		Where("organization_id = ?", orgID)
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time interface checks
var (
	_ catalog.HotelRepository       = (*GormHotelRepository)(nil)
	_ catalog.TourPackageRepository = (*GormTourPackageRepository)(nil)
	_ catalog.ActivityRepository    = (*GormActivityRepository)(nil)
	_ catalog.RouteRepository       = (*GormRouteRepository)(nil)
	_ catalog.TransportRepository   = (*GormTransportRepository)(nil)
)
