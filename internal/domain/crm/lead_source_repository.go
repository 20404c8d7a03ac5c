package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// LeadSourceRepository defines the interface for lead source persistence
type LeadSourceRepository interface {
	// FindByToken resolves an active source from its webhook bearer token
	// across all organizations.
	FindByToken(ctx context.Context, token string) (*LeadSource, error)

	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*LeadSource, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]LeadSource, error)
	Save(ctx context.Context, source *LeadSource) error

	// IncrementLeadsCaptured bumps the counter atomically in the store
	IncrementLeadsCaptured(ctx context.Context, id uuid.UUID) error

	// DeleteForOrg removes the source. Queries captured through it are kept.
	DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error
}
