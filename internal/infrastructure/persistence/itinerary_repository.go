package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/quote"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItineraryRepository implements ItineraryRepository using GORM
type GormItineraryRepository struct {
	db *gorm.DB
}

// NewGormItineraryRepository creates a new GormItineraryRepository
func NewGormItineraryRepository(db *gorm.DB) *GormItineraryRepository {
	return &GormItineraryRepository{db: db}
}

// FindByIDForOrg finds an itinerary by ID within an organization
func (r *GormItineraryRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*quote.Itinerary, error) {
	var model models.ItineraryModel
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

// FindByQueryForOrg returns every retained version for a query, newest first
func (r *GormItineraryRepository) FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID) ([]quote.Itinerary, error) {
	var itineraryModels []models.ItineraryModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND query_id = ?", orgID, queryID).
		Order("created_at DESC").
		Find(&itineraryModels).Error; err != nil {
		return nil, err
	}

	itineraries := make([]quote.Itinerary, len(itineraryModels))
	for i, model := range itineraryModels {
		itineraries[i] = *model.ToDomain()
	}
	return itineraries, nil
}

// FindLatestForQuery returns the most recently created version
func (r *GormItineraryRepository) FindLatestForQuery(ctx context.Context, orgID, queryID uuid.UUID) (*quote.Itinerary, error) {
	var model models.ItineraryModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND query_id = ?", orgID, queryID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveVersioned applies the versioning rules inside one transaction. The
// advisory lock serializes saves on the same query so concurrent saves
// cannot draw the same sequence or race the pruning step.
func (r *GormItineraryRepository) SaveVersioned(ctx context.Context, itinerary *quote.Itinerary, queryNumber string) (quote.SaveOutcome, error) {
	var outcome quote.SaveOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)",
			advisoryKey("quote_version", itinerary.QueryID)).Error; err != nil {
			return err
		}

		var latest models.ItineraryModel
		err := tx.Where("organization_id = ? AND query_id = ?",
			itinerary.OrganizationID, itinerary.QueryID).
			Order("created_at DESC").
			First(&latest).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First quote for the query
			itinerary.QuoteNumber = quote.FormatQuoteNumber(queryNumber, 1)
			outcome = quote.SaveCreated
			var model models.ItineraryModel
			model.FromDomain(itinerary)
			return tx.Create(&model).Error

		case err != nil:
			return err
		}

		if !quote.NeedsNewVersion(latest.TotalCost, itinerary.TotalCost) {
			// Price unchanged: overwrite the latest version in place,
			// keeping its identity and quote number.
			itinerary.ID = latest.ID
			itinerary.CreatedAt = latest.CreatedAt
			itinerary.QuoteNumber = latest.QuoteNumber
			itinerary.Status = quote.ItineraryStatus(latest.Status)
			outcome = quote.SaveOverwritten
			var model models.ItineraryModel
			model.FromDomain(itinerary)
			return tx.Save(&model).Error
		}

		var quoteNumbers []string
		if err := tx.Model(&models.ItineraryModel{}).
			Where("query_id = ?", itinerary.QueryID).
			Pluck("quote_number", &quoteNumbers).Error; err != nil {
			return err
		}
		itinerary.QuoteNumber = quote.FormatQuoteNumber(queryNumber, quote.NextSequence(quoteNumbers))
		outcome = quote.SaveCreated

		var model models.ItineraryModel
		model.FromDomain(itinerary)
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		return r.pruneHistory(tx, itinerary.QueryID)
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// pruneHistory drops the oldest draft versions beyond the retention bound.
// A confirmed version is never pruned, even when it is the oldest row.
func (r *GormItineraryRepository) pruneHistory(tx *gorm.DB, queryID uuid.UUID) error {
	var keep []uuid.UUID
	if err := tx.Model(&models.ItineraryModel{}).
		Where("query_id = ?", queryID).
		Order("created_at DESC").
		Limit(quote.MaxVersionsPerQuery).
		Pluck("id", &keep).Error; err != nil {
		return err
	}
	if len(keep) < quote.MaxVersionsPerQuery {
		return nil
	}
	return tx.Delete(&models.ItineraryModel{},
		"query_id = ? AND id NOT IN ? AND status <> ?",
		queryID, keep, string(quote.ItineraryStatusConfirmed)).Error
}

// ConfirmVersion promotes the target version and demotes its siblings
func (r *GormItineraryRepository) ConfirmVersion(ctx context.Context, orgID, queryID, itineraryID uuid.UUID) (*quote.Itinerary, error) {
	var confirmed *quote.Itinerary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)",
			advisoryKey("quote_version", queryID)).Error; err != nil {
			return err
		}

		var model models.ItineraryModel
		if err := tx.Where("organization_id = ? AND query_id = ? AND id = ?",
			orgID, queryID, itineraryID).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.ItineraryModel{}).
			Where("query_id = ? AND id <> ?", queryID, itineraryID).
			Update("status", string(quote.ItineraryStatusDraft)).Error; err != nil {
			return err
		}

		target := model.ToDomain()
		target.Confirm()
		model.FromDomain(target)
		if err := tx.Save(&model).Error; err != nil {
			return err
		}

		confirmed = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// DeleteForOrg deletes an itinerary within an organization
func (r *GormItineraryRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ItineraryModel{}, "organization_id = ? AND id = ?", orgID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByQuery removes every version belonging to a query
func (r *GormItineraryRepository) DeleteByQuery(ctx context.Context, queryID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ItineraryModel{}, "query_id = ?", queryID).Error
}

// CountByQuery counts retained versions for a query
func (r *GormItineraryRepository) CountByQuery(ctx context.Context, queryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ItineraryModel{}).
		Where("query_id = ?", queryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormItineraryRepository implements ItineraryRepository
var _ quote.ItineraryRepository = (*GormItineraryRepository)(nil)
