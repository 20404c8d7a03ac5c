// Package crm holds the lead-management aggregates: queries, follow-ups,
// lead sources, activity logs and operations booking checklists.
package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/shared"
)

// QueryStatus represents the lifecycle state of a query
type QueryStatus string

const (
	QueryStatusNew       QueryStatus = "new"
	QueryStatusOngoing   QueryStatus = "ongoing"
	QueryStatusConfirmed QueryStatus = "confirmed"
	QueryStatusCancelled QueryStatus = "cancelled"
)

// QuerySource is the channel a lead arrived through
type QuerySource string

const (
	SourceDirect    QuerySource = "DQ"
	SourceAVT       QuerySource = "AVT"
	SourceVP        QuerySource = "VP"
	SourceFacebook  QuerySource = "FB"
	SourceInstagram QuerySource = "IG"
	SourceWhatsApp  QuerySource = "WA"
	SourceReferral  QuerySource = "REF"
	SourceWebsite   QuerySource = "WEB"
)

// FollowUp is an append-only note scheduled against a query
type FollowUp struct {
	Note          string     `json:"note"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"`
}

// queryTransitions is the allowed status graph. Cancelled is terminal;
// confirmed can still be cancelled.
var queryTransitions = map[QueryStatus][]QueryStatus{
	QueryStatusNew:       {QueryStatusOngoing, QueryStatusConfirmed, QueryStatusCancelled},
	QueryStatusOngoing:   {QueryStatusConfirmed, QueryStatusCancelled},
	QueryStatusConfirmed: {QueryStatusCancelled},
	QueryStatusCancelled: {},
}

// Query is a customer travel inquiry, the root CRM entity. QueryNumber is the
// sequential human-readable identifier (QRY-NNN) assigned at persistence time.
type Query struct {
	shared.OrgAggregateRoot
	QueryNumber  string
	CustomerName string
	Email        string
	Phone        string
	Destination  string
	TravelDate   *time.Time
	Nights       int
	Adults       int
	Children     int
	PickUp       string
	DropOff      string
	TourPackage  string
	AssignedTo   *uuid.UUID
	Notes        string
	Source       QuerySource
	Status       QueryStatus
	FollowUps    FollowUps
	LastFollowUp *time.Time
	NextFollowUp *time.Time
	// QuoteTotal caches the latest saved quote amount for list views and
	// dashboard aggregates.
	QuoteTotal decimal.Decimal
}

// NewQuery creates a query in the new state. The query number is assigned by
// the repository when the row is inserted.
func NewQuery(orgID uuid.UUID, customerName, phone string, nights, adults int) (*Query, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone is required")
	}
	if nights < 1 {
		return nil, shared.NewDomainError("INVALID_NIGHTS", "Nights must be at least 1")
	}
	if adults < 1 {
		return nil, shared.NewDomainError("INVALID_ADULTS", "Adults must be at least 1")
	}
	return &Query{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		CustomerName:     strings.TrimSpace(customerName),
		Phone:            strings.TrimSpace(phone),
		Nights:           nights,
		Adults:           adults,
		Source:           SourceDirect,
		Status:           QueryStatusNew,
		QuoteTotal:       decimal.Zero,
	}, nil
}

// CanTransitionTo reports whether the status graph permits the move
func (q *Query) CanTransitionTo(next QueryStatus) bool {
	for _, allowed := range queryTransitions[q.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the query to the next status. Override skips the
// transition table for correction workflows by org admins.
func (q *Query) TransitionTo(next QueryStatus, override bool) error {
	if !isValidStatus(next) {
		return shared.NewDomainError("INVALID_STATUS", "Unknown query status: "+string(next))
	}
	if next == q.Status {
		return nil
	}
	if !override && !q.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot move query from "+string(q.Status)+" to "+string(next))
	}
	q.Status = next
	q.UpdatedAt = time.Now()
	return nil
}

func isValidStatus(s QueryStatus) bool {
	switch s {
	case QueryStatusNew, QueryStatusOngoing, QueryStatusConfirmed, QueryStatusCancelled:
		return true
	}
	return false
}

// AddFollowUp appends a follow-up note and promotes a new query to ongoing
func (q *Query) AddFollowUp(note string, scheduledDate *time.Time, createdBy string) error {
	if strings.TrimSpace(note) == "" {
		return shared.NewDomainError("INVALID_FOLLOWUP", "Follow-up note cannot be empty")
	}
	now := time.Now()
	q.FollowUps = append(q.FollowUps, FollowUp{
		Note:          strings.TrimSpace(note),
		ScheduledDate: scheduledDate,
		CreatedAt:     now,
		CreatedBy:     createdBy,
	})
	q.LastFollowUp = &now
	q.NextFollowUp = scheduledDate
	if q.Status == QueryStatusNew {
		q.Status = QueryStatusOngoing
	}
	q.UpdatedAt = now
	return nil
}

// MarkQuoted promotes a new query to ongoing and caches the quote total.
// Called on every quote save.
func (q *Query) MarkQuoted(total decimal.Decimal) {
	q.QuoteTotal = total
	if q.Status == QueryStatusNew {
		q.Status = QueryStatusOngoing
	}
	q.UpdatedAt = time.Now()
}

// MarkConfirmed records a confirmed quote against the query
func (q *Query) MarkConfirmed(total decimal.Decimal) {
	q.QuoteTotal = total
	q.Status = QueryStatusConfirmed
	q.UpdatedAt = time.Now()
}

// Assign sets the responsible user
func (q *Query) Assign(userID *uuid.UUID) {
	q.AssignedTo = userID
	q.UpdatedAt = time.Now()
}

// IsTerminal reports whether the query has reached a terminal state
func (q *Query) IsTerminal() bool {
	return q.Status == QueryStatusCancelled
}

// PendingFollowUp reports whether the query has a follow-up scheduled at or
// before the given instant.
func (q *Query) PendingFollowUp(at time.Time) bool {
	return q.NextFollowUp != nil && !q.NextFollowUp.After(at)
}
