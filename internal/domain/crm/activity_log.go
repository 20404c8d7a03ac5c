package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/travvip/backend/internal/domain/shared"
)

// ActivityType classifies a timeline entry on a query
type ActivityType string

const (
	ActivityStatusChange ActivityType = "status_change"
	ActivityFollowUp     ActivityType = "followup"
	ActivityQuote        ActivityType = "quote"
	ActivityAssignment   ActivityType = "assignment"
	ActivityEdit         ActivityType = "edit"
	ActivityBooking      ActivityType = "booking"
)

// ActivityLog is an audit-trail entry for a query. Writes are best-effort:
// a failed log write never fails the operation that produced it.
type ActivityLog struct {
	shared.BaseEntity
	OrganizationID uuid.UUID
	QueryID        uuid.UUID
	Type           ActivityType
	Message        string
	ActorID        *uuid.UUID
	ActorName      string
}

// NewActivityLog creates a timeline entry
func NewActivityLog(orgID, queryID uuid.UUID, activityType ActivityType, message, actorName string, actorID *uuid.UUID) *ActivityLog {
	return &ActivityLog{
		BaseEntity:     shared.NewBaseEntity(),
		OrganizationID: orgID,
		QueryID:        queryID,
		Type:           activityType,
		Message:        message,
		ActorID:        actorID,
		ActorName:      actorName,
	}
}

// Age returns how long ago the entry was written
func (a *ActivityLog) Age(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}

// ActivityLogRepository defines the interface for audit-trail persistence
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *ActivityLog) error

	// FindByQueryForOrg returns the query's timeline, newest first
	FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)

	// DeleteByQuery removes a query's timeline when the query is deleted
	DeleteByQuery(ctx context.Context, queryID uuid.UUID) error
}
