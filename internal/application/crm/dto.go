package crm

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

// Actor identifies who performed an operation, for activity logging
type Actor struct {
	ID         *uuid.UUID
	Name       string
	IsOrgAdmin bool
}

// CreateQueryInput carries the fields for a new customer inquiry
type CreateQueryInput struct {
	CustomerName string     `json:"customerName" binding:"required"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone" binding:"required"`
	Destination  string     `json:"destination"`
	TravelDate   *time.Time `json:"travelDate"`
	Nights       int        `json:"nights" binding:"required,min=1"`
	Adults       int        `json:"adults" binding:"required,min=1"`
	Children     int        `json:"children"`
	PickUp       string     `json:"pickUp"`
	DropOff      string     `json:"dropOff"`
	TourPackage  string     `json:"tourPackage"`
	Notes        string     `json:"notes"`
	Source       string     `json:"source"`
	AssignedTo   *uuid.UUID `json:"assignedTo"`
}

// UnmarshalJSON accepts "" as null for the optional date and id fields
func (i *CreateQueryInput) UnmarshalJSON(data []byte) error {
	type plain CreateQueryInput
	return json.Unmarshal(shared.NullifyEmptyJSONFields(data, "travelDate", "assignedTo"), (*plain)(i))
}

// UpdateQueryInput carries the mutable fields of a query. Nil pointers leave
// the corresponding field unchanged.
type UpdateQueryInput struct {
	CustomerName *string    `json:"customerName"`
	Email        *string    `json:"email"`
	Phone        *string    `json:"phone"`
	Destination  *string    `json:"destination"`
	TravelDate   *time.Time `json:"travelDate"`
	Nights       *int       `json:"nights"`
	Adults       *int       `json:"adults"`
	Children     *int       `json:"children"`
	PickUp       *string    `json:"pickUp"`
	DropOff      *string    `json:"dropOff"`
	TourPackage  *string    `json:"tourPackage"`
	Notes        *string    `json:"notes"`
	Source       *string    `json:"source"`
}

// UnmarshalJSON accepts "" as null for the optional travel date
func (i *UpdateQueryInput) UnmarshalJSON(data []byte) error {
	type plain UpdateQueryInput
	return json.Unmarshal(shared.NullifyEmptyJSONFields(data, "travelDate"), (*plain)(i))
}

// ChangeStatusInput moves a query through its lifecycle. Override skips the
// transition table and is honoured only for org admins.
type ChangeStatusInput struct {
	Status   string `json:"status" binding:"required"`
	Override bool   `json:"override"`
}

// AssignQueryInput sets or clears the responsible user
type AssignQueryInput struct {
	AssignedTo *uuid.UUID `json:"assignedTo"`
}

// UnmarshalJSON accepts "" as null, which unassigns the query
func (i *AssignQueryInput) UnmarshalJSON(data []byte) error {
	type plain AssignQueryInput
	return json.Unmarshal(shared.NullifyEmptyJSONFields(data, "assignedTo"), (*plain)(i))
}

// AddFollowUpInput appends a follow-up note to a query
type AddFollowUpInput struct {
	Note          string     `json:"note" binding:"required"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

// UnmarshalJSON accepts "" as null for the optional schedule date
func (i *AddFollowUpInput) UnmarshalJSON(data []byte) error {
	type plain AddFollowUpInput
	return json.Unmarshal(shared.NullifyEmptyJSONFields(data, "scheduledDate"), (*plain)(i))
}

// QueryInfo is the read model for a query
type QueryInfo struct {
	ID           uuid.UUID       `json:"id"`
	QueryNumber  string          `json:"queryNumber"`
	CustomerName string          `json:"customerName"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone"`
	Destination  string          `json:"destination,omitempty"`
	TravelDate   *time.Time      `json:"travelDate,omitempty"`
	Nights       int             `json:"nights"`
	Adults       int             `json:"adults"`
	Children     int             `json:"children"`
	PickUp       string          `json:"pickUp,omitempty"`
	DropOff      string          `json:"dropOff,omitempty"`
	TourPackage  string          `json:"tourPackage,omitempty"`
	AssignedTo   *uuid.UUID      `json:"assignedTo,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Source       string          `json:"source"`
	Status       string          `json:"status"`
	FollowUps    []crm.FollowUp  `json:"followUps"`
	LastFollowUp *time.Time      `json:"lastFollowUp,omitempty"`
	NextFollowUp *time.Time      `json:"nextFollowUp,omitempty"`
	QuoteTotal   decimal.Decimal `json:"quoteTotal"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewQueryInfo maps a domain query onto its API read model
func NewQueryInfo(q *crm.Query) QueryInfo {
	followUps := q.FollowUps
	if followUps == nil {
		followUps = crm.FollowUps{}
	}
	return QueryInfo{
		ID:           q.ID,
		QueryNumber:  q.QueryNumber,
		CustomerName: q.CustomerName,
		Email:        q.Email,
		Phone:        q.Phone,
		Destination:  q.Destination,
		TravelDate:   q.TravelDate,
		Nights:       q.Nights,
		Adults:       q.Adults,
		Children:     q.Children,
		PickUp:       q.PickUp,
		DropOff:      q.DropOff,
		TourPackage:  q.TourPackage,
		AssignedTo:   q.AssignedTo,
		Notes:        q.Notes,
		Source:       string(q.Source),
		Status:       string(q.Status),
		FollowUps:    followUps,
		LastFollowUp: q.LastFollowUp,
		NextFollowUp: q.NextFollowUp,
		QuoteTotal:   q.QuoteTotal,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// ActivityInfo is one entry of a query's timeline
type ActivityInfo struct {
	ID        uuid.UUID  `json:"id"`
	QueryID   uuid.UUID  `json:"queryId"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	ActorID   *uuid.UUID `json:"actorId,omitempty"`
	ActorName string     `json:"actorName,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewActivityInfo maps a timeline entry onto its read model
func NewActivityInfo(a *crm.ActivityLog) ActivityInfo {
	return ActivityInfo{
		ID:        a.ID,
		QueryID:   a.QueryID,
		Type:      string(a.Type),
		Message:   a.Message,
		ActorID:   a.ActorID,
		ActorName: a.ActorName,
		CreatedAt: a.CreatedAt,
	}
}

// DashboardStats is the per-organization dashboard aggregate
type DashboardStats struct {
	TotalQueries     int64           `json:"totalQueries"`
	NewQueries       int64           `json:"newQueries"`
	OngoingQueries   int64           `json:"ongoingQueries"`
	ConfirmedQueries int64           `json:"confirmedQueries"`
	CancelledQueries int64           `json:"cancelledQueries"`
	ConfirmedRevenue decimal.Decimal `json:"confirmedRevenue"`
	PendingFollowUps int64           `json:"pendingFollowUps"`
	ConversionRate   float64         `json:"conversionRate"`
	HotelCount       int64           `json:"hotelCount"`
	PackageCount     int64           `json:"packageCount"`
}

// SetBookingItemInput marks one checklist line booked or unbooked
type SetBookingItemInput struct {
	Kind   string    `json:"kind" binding:"required"`
	RefID  uuid.UUID `json:"refId" binding:"required"`
	Label  string    `json:"label"`
	Booked bool      `json:"booked"`
}

// BookingInfo is the read model for a query's fulfilment checklist
type BookingInfo struct {
	QueryID     uuid.UUID         `json:"queryId"`
	Items       []crm.BookingItem `json:"items"`
	BookedCount int               `json:"bookedCount"`
	TotalCount  int               `json:"totalCount"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewBookingInfo maps a checklist onto its read model
func NewBookingInfo(c *crm.BookingChecklist) BookingInfo {
	items := c.Items
	if items == nil {
		items = crm.BookingItems{}
	}
	booked, total := c.Progress()
	return BookingInfo{
		QueryID:     c.QueryID,
		Items:       items,
		BookedCount: booked,
		TotalCount:  total,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateLeadSourceInput carries the fields for a new webhook integration
type CreateLeadSourceInput struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Website string `json:"website"`
}

// UpdateLeadSourceInput carries the mutable fields of a lead source
type UpdateLeadSourceInput struct {
	Name     *string `json:"name"`
	Website  *string `json:"website"`
	IsActive *bool   `json:"isActive"`
}

// LeadSourceInfo is the read model for a lead source. The token is included
// so the settings UI can show the webhook configuration.
type LeadSourceInfo struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Token         string    `json:"token"`
	Website       string    `json:"website,omitempty"`
	IsActive      bool      `json:"isActive"`
	LeadsCaptured int64     `json:"leadsCaptured"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewLeadSourceInfo maps a lead source onto its read model
func NewLeadSourceInfo(s *crm.LeadSource) LeadSourceInfo {
	return LeadSourceInfo{
		ID:            s.ID,
		Name:          s.Name,
		Type:          string(s.Type),
		Token:         s.Token,
		Website:       s.Website,
		IsActive:      s.IsActive,
		LeadsCaptured: s.LeadsCaptured,
		CreatedAt:     s.CreatedAt,
	}
}

// WebhookLeadInput is the payload accepted from external lead forms
type WebhookLeadInput struct {
	CustomerName string     `json:"customerName" binding:"required"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone" binding:"required"`
	Destination  string     `json:"destination"`
	TravelDate   *time.Time `json:"travelDate"`
	Nights       int        `json:"nights"`
	Adults       int        `json:"adults"`
	Children     int        `json:"children"`
	Message      string     `json:"message"`
}

// UnmarshalJSON accepts "" as null. External form builders routinely send
// empty strings for fields the visitor left blank.
func (i *WebhookLeadInput) UnmarshalJSON(data []byte) error {
	type plain WebhookLeadInput
	return json.Unmarshal(shared.NullifyEmptyJSONFields(data, "travelDate"), (*plain)(i))
}

// WebhookLeadResult acknowledges an accepted lead
type WebhookLeadResult struct {
	QueryID     uuid.UUID `json:"queryId"`
	QueryNumber string    `json:"queryNumber"`
}
