package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/travvip/backend/internal/domain/catalog"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

// StatsCache caches computed dashboard aggregates per organization
type StatsCache interface {
	Get(ctx context.Context, orgID uuid.UUID) (*DashboardStats, bool)
	Set(ctx context.Context, orgID uuid.UUID, stats *DashboardStats, ttl time.Duration)
}

// DashboardService computes the per-organization dashboard aggregate
type DashboardService struct {
	queryRepo   crm.QueryRepository
	hotelRepo   catalog.HotelRepository
	packageRepo catalog.TourPackageRepository
	cache       StatsCache
	cacheTTL    time.Duration
	group       singleflight.Group
	logger      *zap.Logger
}

// DashboardOption configures optional dashboard service behavior
type DashboardOption func(*DashboardService)

// WithStatsCache caches computed stats for ttl. Mutations are not tracked,
// so keep the ttl short.
func WithStatsCache(cache StatsCache, ttl time.Duration) DashboardOption {
	return func(s *DashboardService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	queryRepo crm.QueryRepository,
	hotelRepo catalog.HotelRepository,
	packageRepo catalog.TourPackageRepository,
	logger *zap.Logger,
	opts ...DashboardOption,
) *DashboardService {
	s := &DashboardService{
		queryRepo:   queryRepo,
		hotelRepo:   hotelRepo,
		packageRepo: packageRepo,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the dashboard aggregate for an organization. Concurrent
// requests for the same organization share a single computation.
func (s *DashboardService) Stats(ctx context.Context, orgID uuid.UUID) (*DashboardStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx, orgID); ok {
			return stats, nil
		}
	}

	v, err, _ := s.group.Do(orgID.String(), func() (any, error) {
		return s.computeStats(ctx, orgID)
	})
	if err != nil {
		return nil, err
	}
	stats := v.(*DashboardStats)

	if s.cache != nil {
		s.cache.Set(ctx, orgID, stats, s.cacheTTL)
	}
	return stats, nil
}

// computeStats builds the aggregate from the store. The catalog counts are
// best-effort: a failed count leaves the field at zero rather than failing
// the dashboard.
func (s *DashboardService) computeStats(ctx context.Context, orgID uuid.UUID) (*DashboardStats, error) {
	queryStats, err := s.queryRepo.StatsForOrg(ctx, orgID)
	if err != nil {
		s.logger.Error("failed to compute query stats", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute dashboard stats")
	}

	stats := &DashboardStats{
		TotalQueries:     queryStats.Total,
		NewQueries:       queryStats.New,
		OngoingQueries:   queryStats.Ongoing,
		ConfirmedQueries: queryStats.Confirmed,
		CancelledQueries: queryStats.Cancelled,
		ConfirmedRevenue: queryStats.ConfirmedRevenue,
		PendingFollowUps: queryStats.PendingFollowUps,
	}
	if queryStats.Total > 0 {
		stats.ConversionRate = float64(queryStats.Confirmed) / float64(queryStats.Total)
	}

	filter := shared.Filter{}
	if s.hotelRepo != nil {
		count, err := s.hotelRepo.CountForOrg(ctx, orgID, filter)
		if err != nil {
			s.logger.Warn("failed to count hotels", zap.Error(err), zap.String("organization_id", orgID.String()))
		} else {
			stats.HotelCount = count
		}
	}
	if s.packageRepo != nil {
		count, err := s.packageRepo.CountForOrg(ctx, orgID, filter)
		if err != nil {
			s.logger.Warn("failed to count tour packages", zap.Error(err), zap.String("organization_id", orgID.String()))
		} else {
			stats.PackageCount = count
		}
	}

	return stats, nil
}
