package persistence

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQueryRepository implements QueryRepository using GORM
type GormQueryRepository struct {
	db *gorm.DB
}

// NewGormQueryRepository creates a new GormQueryRepository
func NewGormQueryRepository(db *gorm.DB) *GormQueryRepository {
	return &GormQueryRepository{db: db}
}

// advisoryKey derives a stable bigint lock key from a namespace and uuid.
// pg_advisory_xact_lock holds the lock until the transaction ends.
func advisoryKey(namespace string, id uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte(namespace))
	h.Write(id[:])
	return int64(h.Sum64())
}

// Create inserts the query and assigns the next QRY-NNN number for the
// organization. The advisory lock serializes concurrent creates within the
// same organization so two inserts never draw the same number.
func (r *GormQueryRepository) Create(ctx context.Context, query *crm.Query) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)",
			advisoryKey("query_number", query.OrganizationID)).Error; err != nil {
			return err
		}

		var maxSeq int64
		if err := tx.Model(&models.QueryModel{}).
			Where("organization_id = ?", query.OrganizationID).
			Select("COALESCE(MAX(CAST(SUBSTRING(query_number FROM 5) AS INTEGER)), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		query.QueryNumber = fmt.Sprintf("QRY-%03d", maxSeq+1)

		var model models.QueryModel
		model.FromDomain(query)
		return tx.Create(&model).Error
	})
}

// FindByIDForOrg finds a query by ID within an organization
func (r *GormQueryRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*crm.Query, error) {
	var model models.QueryModel
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

// FindAllForOrg finds all queries for an organization
func (r *GormQueryRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]crm.Query, error) {
	var queryModels []models.QueryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QueryModel{}).
			Where("organization_id = ?", orgID),
		filter,
	)

	if err := query.Find(&queryModels).Error; err != nil {
		return nil, err
	}

	queries := make([]crm.Query, len(queryModels))
	for i, model := range queryModels {
		queries[i] = *model.ToDomain()
	}
	return queries, nil
}

// FindByStatusForOrg finds queries in any of the given statuses, newest first
func (r *GormQueryRepository) FindByStatusForOrg(ctx context.Context, orgID uuid.UUID, statuses []crm.QueryStatus, filter shared.Filter) ([]crm.Query, error) {
	if len(statuses) == 0 {
		return []crm.Query{}, nil
	}

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var queryModels []models.QueryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QueryModel{}).
			Where("organization_id = ? AND status IN ?", orgID, values),
		filter,
	)

	if err := query.Find(&queryModels).Error; err != nil {
		return nil, err
	}

	queries := make([]crm.Query, len(queryModels))
	for i, model := range queryModels {
		queries[i] = *model.ToDomain()
	}
	return queries, nil
}

// Save updates a query
func (r *GormQueryRepository) Save(ctx context.Context, query *crm.Query) error {
	var model models.QueryModel
	model.FromDomain(query)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForOrg deletes a query and its dependent rows within an organization
func (r *GormQueryRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.QueryModel{}, "organization_id = ? AND id = ?", orgID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Delete(&models.ItineraryModel{}, "query_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ActivityLogModel{}, "query_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BookingChecklistModel{}, "query_id = ?", id).Error
	})
}

// CountForOrg counts queries for an organization
func (r *GormQueryRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.QueryModel{}).
		Where("organization_id = ?", orgID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StatsForOrg computes the dashboard aggregate in a single scan
func (r *GormQueryRepository) StatsForOrg(ctx context.Context, orgID uuid.UUID) (*crm.QueryStats, error) {
	var row struct {
		Total            int64
		New              int64
		Ongoing          int64
		Confirmed        int64
		Cancelled        int64
		ConfirmedRevenue decimal.Decimal
		PendingFollowUps int64
	}

	err := r.db.WithContext(ctx).Model(&models.QueryModel{}).
		Where("organization_id = ?", orgID).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'new') AS new,
			COUNT(*) FILTER (WHERE status = 'ongoing') AS ongoing,
			COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COALESCE(SUM(quote_total) FILTER (WHERE status = 'confirmed'), 0) AS confirmed_revenue,
			COUNT(*) FILTER (WHERE next_follow_up IS NOT NULL AND next_follow_up <= NOW()
				AND status IN ('new', 'ongoing')) AS pending_follow_ups`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &crm.QueryStats{
		Total:            row.Total,
		New:              row.New,
		Ongoing:          row.Ongoing,
		Confirmed:        row.Confirmed,
		Cancelled:        row.Cancelled,
		ConfirmedRevenue: row.ConfirmedRevenue,
		PendingFollowUps: row.PendingFollowUps,
	}, nil
}

// applyFilter applies filter options to the query
func (r *GormQueryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

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

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormQueryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ? OR query_number ILIKE ? OR phone ILIKE ? OR destination ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "assigned_to":
			query = query.Where("assigned_to = ?", value)
		case "destination":
			query = query.Where("destination = ?", value)
		case "pending_follow_up":
			if value == true {
				query = query.Where("next_follow_up IS NOT NULL AND next_follow_up <= NOW()")
			}
		}
	}

	return query
}

// Ensure GormQueryRepository implements QueryRepository
var _ crm.QueryRepository = (*GormQueryRepository)(nil)
