package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Append inserts a timeline entry
func (r *GormActivityLogRepository) Append(ctx context.Context, entry *crm.ActivityLog) error {
	var model models.ActivityLogModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByQueryForOrg returns the query's timeline, newest first
func (r *GormActivityLogRepository) FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID, filter shared.Filter) ([]crm.ActivityLog, error) {
	var logModels []models.ActivityLogModel
	query := r.db.WithContext(ctx).Model(&models.ActivityLogModel{}).
		Where("organization_id = ? AND query_id = ?", orgID, queryID).
		Order("created_at DESC")

	if v, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", v)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]crm.ActivityLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// DeleteByQuery removes a query's timeline
func (r *GormActivityLogRepository) DeleteByQuery(ctx context.Context, queryID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ActivityLogModel{}, "query_id = ?", queryID).Error
}

// Ensure GormActivityLogRepository implements ActivityLogRepository
var _ crm.ActivityLogRepository = (*GormActivityLogRepository)(nil)
