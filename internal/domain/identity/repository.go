package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetActiveForOrg(ctx context.Context, orgID uuid.UUID, active bool) error
}

// OrganizationRepository defines persistence operations for tenant organizations
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, error)
	Save(ctx context.Context, org *Organization) error
	// DeleteCascade removes the organization and every user belonging to it
	// in a single transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
