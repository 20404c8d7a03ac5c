package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookingChecklistRepository implements BookingChecklistRepository using GORM
type GormBookingChecklistRepository struct {
	db *gorm.DB
}

// NewGormBookingChecklistRepository creates a new GormBookingChecklistRepository
func NewGormBookingChecklistRepository(db *gorm.DB) *GormBookingChecklistRepository {
	return &GormBookingChecklistRepository{db: db}
}

// FindByQueryForOrg finds the checklist for a query within an organization
func (r *GormBookingChecklistRepository) FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID) (*crm.BookingChecklist, error) {
	var model models.BookingChecklistModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND query_id = ?", orgID, queryID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a checklist
func (r *GormBookingChecklistRepository) Save(ctx context.Context, checklist *crm.BookingChecklist) error {
	var model models.BookingChecklistModel
	model.FromDomain(checklist)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteByQuery removes the checklist for a query
func (r *GormBookingChecklistRepository) DeleteByQuery(ctx context.Context, queryID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BookingChecklistModel{}, "query_id = ?", queryID).Error
}

// Ensure GormBookingChecklistRepository implements BookingChecklistRepository
var _ crm.BookingChecklistRepository = (*GormBookingChecklistRepository)(nil)
