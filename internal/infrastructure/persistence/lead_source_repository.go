package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeadSourceRepository implements LeadSourceRepository using GORM
type GormLeadSourceRepository struct {
	db *gorm.DB
}

// NewGormLeadSourceRepository creates a new GormLeadSourceRepository
func NewGormLeadSourceRepository(db *gorm.DB) *GormLeadSourceRepository {
	return &GormLeadSourceRepository{db: db}
}

// FindByToken resolves an active source from its webhook bearer token. The
// lookup is global: the token alone identifies the organization.
func (r *GormLeadSourceRepository) FindByToken(ctx context.Context, token string) (*crm.LeadSource, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	var model models.LeadSourceModel
	if err := r.db.WithContext(ctx).
		Where("token = ? AND is_active = ?", token, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOrg finds a lead source by ID within an organization
func (r *GormLeadSourceRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*crm.LeadSource, error) {
	var model models.LeadSourceModel
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

// FindAllForOrg finds all lead sources for an organization
func (r *GormLeadSourceRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]crm.LeadSource, error) {
	var sourceModels []models.LeadSourceModel
	query := r.db.WithContext(ctx).Model(&models.LeadSourceModel{}).
		Where("organization_id = ?", orgID)

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
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

	if err := query.Find(&sourceModels).Error; err != nil {
		return nil, err
	}

	sources := make([]crm.LeadSource, len(sourceModels))
	for i, model := range sourceModels {
		sources[i] = *model.ToDomain()
	}
	return sources, nil
}

// Save creates or updates a lead source
func (r *GormLeadSourceRepository) Save(ctx context.Context, source *crm.LeadSource) error {
	var model models.LeadSourceModel
	model.FromDomain(source)
	return r.db.WithContext(ctx).Save(&model).Error
}

// IncrementLeadsCaptured bumps the counter atomically in the store
func (r *GormLeadSourceRepository) IncrementLeadsCaptured(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.LeadSourceModel{}).
		Where("id = ?", id).
		Update("leads_captured", gorm.Expr("leads_captured + 1")).Error
}

// DeleteForOrg deletes a lead source within an organization
func (r *GormLeadSourceRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeadSourceModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLeadSourceRepository implements LeadSourceRepository
var _ crm.LeadSourceRepository = (*GormLeadSourceRepository)(nil)
