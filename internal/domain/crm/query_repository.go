package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/shared"
)

// QueryStats is the per-organization dashboard aggregate
type QueryStats struct {
	Total            int64
	New              int64
	Ongoing          int64
	Confirmed        int64
	Cancelled        int64
	ConfirmedRevenue decimal.Decimal
	PendingFollowUps int64
}

// QueryRepository defines the interface for query persistence
type QueryRepository interface {
	// Create inserts the query and assigns its sequential QRY-NNN number.
	// Number assignment is serialized per organization so concurrent creates
	// never collide.
	Create(ctx context.Context, query *Query) error

	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*Query, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Query, error)

	// FindByStatusForOrg returns queries in any of the given statuses,
	// newest first.
	FindByStatusForOrg(ctx context.Context, orgID uuid.UUID, statuses []QueryStatus, filter shared.Filter) ([]Query, error)

	Save(ctx context.Context, query *Query) error
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)

	// StatsForOrg computes the dashboard aggregate in the store
	StatsForOrg(ctx context.Context, orgID uuid.UUID) (*QueryStats, error)
}
