package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/crm"
)

// QueryModel is the GORM model for customer queries
type QueryModel struct {
	OrgAggregateModel
	// QueryNumber is unique per organization; the composite constraint is
	// created by the SQL migrations.
	QueryNumber  string          `gorm:"type:varchar(20);not null;index"`
	CustomerName string          `gorm:"type:varchar(255);not null"`
	Email        string          `gorm:"type:varchar(255)"`
	Phone        string          `gorm:"type:varchar(50);not null"`
	Destination  string          `gorm:"type:varchar(255)"`
	TravelDate   *time.Time      `gorm:"type:date"`
	Nights       int             `gorm:"not null"`
	Adults       int             `gorm:"not null"`
	Children     int             `gorm:"not null;default:0"`
	PickUp       string          `gorm:"type:varchar(255)"`
	DropOff      string          `gorm:"type:varchar(255)"`
	TourPackage  string          `gorm:"type:varchar(255)"`
	AssignedTo   *uuid.UUID      `gorm:"type:uuid;index"`
	Notes        string          `gorm:"type:text"`
	Source       string          `gorm:"type:varchar(10);not null;default:'DQ'"`
	Status       string          `gorm:"type:varchar(20);not null;default:'new';index"`
	FollowUps    crm.FollowUps   `gorm:"type:jsonb;not null;default:'[]'"`
	LastFollowUp *time.Time      `gorm:""`
	NextFollowUp *time.Time      `gorm:"index"`
	QuoteTotal   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName specifies the table name for QueryModel
func (QueryModel) TableName() string {
	return "queries"
}

// ToDomain converts QueryModel to domain Query
func (m *QueryModel) ToDomain() *crm.Query {
	return &crm.Query{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		QueryNumber:      m.QueryNumber,
		CustomerName:     m.CustomerName,
		Email:            m.Email,
		Phone:            m.Phone,
		Destination:      m.Destination,
		TravelDate:       m.TravelDate,
		Nights:           m.Nights,
		Adults:           m.Adults,
		Children:         m.Children,
		PickUp:           m.PickUp,
		DropOff:          m.DropOff,
		TourPackage:      m.TourPackage,
		AssignedTo:       m.AssignedTo,
		Notes:            m.Notes,
		Source:           crm.QuerySource(m.Source),
		Status:           crm.QueryStatus(m.Status),
		FollowUps:        m.FollowUps,
		LastFollowUp:     m.LastFollowUp,
		NextFollowUp:     m.NextFollowUp,
		QuoteTotal:       m.QuoteTotal,
	}
}

// FromDomain populates QueryModel from domain Query
func (m *QueryModel) FromDomain(q *crm.Query) {
	m.FromDomainOrgAggregateRoot(q.OrgAggregateRoot)
	m.QueryNumber = q.QueryNumber
	m.CustomerName = q.CustomerName
	m.Email = q.Email
	m.Phone = q.Phone
	m.Destination = q.Destination
	m.TravelDate = q.TravelDate
	m.Nights = q.Nights
	m.Adults = q.Adults
	m.Children = q.Children
	m.PickUp = q.PickUp
	m.DropOff = q.DropOff
	m.TourPackage = q.TourPackage
	m.AssignedTo = q.AssignedTo
	m.Notes = q.Notes
	m.Source = string(q.Source)
	m.Status = string(q.Status)
	m.FollowUps = q.FollowUps
	m.LastFollowUp = q.LastFollowUp
	m.NextFollowUp = q.NextFollowUp
	m.QuoteTotal = q.QuoteTotal
}

// LeadSourceModel is the GORM model for webhook lead sources
type LeadSourceModel struct {
	OrgAggregateModel
	Name          string `gorm:"type:varchar(255);not null"`
	Type          string `gorm:"type:varchar(20);not null"`
	Token         string `gorm:"type:varchar(40);not null;uniqueIndex"`
	Website       string `gorm:"type:varchar(255)"`
	IsActive      bool   `gorm:"not null;default:true"`
	LeadsCaptured int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name for LeadSourceModel
func (LeadSourceModel) TableName() string {
	return "lead_sources"
}

// ToDomain converts LeadSourceModel to domain LeadSource
func (m *LeadSourceModel) ToDomain() *crm.LeadSource {
	return &crm.LeadSource{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Name:             m.Name,
		Type:             crm.LeadSourceType(m.Type),
		Token:            m.Token,
		Website:          m.Website,
		IsActive:         m.IsActive,
		LeadsCaptured:    m.LeadsCaptured,
	}
}

// FromDomain populates LeadSourceModel from domain LeadSource
func (m *LeadSourceModel) FromDomain(s *crm.LeadSource) {
	m.FromDomainOrgAggregateRoot(s.OrgAggregateRoot)
	m.Name = s.Name
	m.Type = string(s.Type)
	m.Token = s.Token
	m.Website = s.Website
	m.IsActive = s.IsActive
	m.LeadsCaptured = s.LeadsCaptured
}

// ActivityLogModel is the GORM model for query timeline entries
type ActivityLogModel struct {
	BaseModel
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	QueryID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type           string     `gorm:"type:varchar(20);not null"`
	Message        string     `gorm:"type:text;not null"`
	ActorID        *uuid.UUID `gorm:"type:uuid"`
	ActorName      string     `gorm:"type:varchar(255)"`
}

// TableName specifies the table name for ActivityLogModel
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts ActivityLogModel to domain ActivityLog
func (m *ActivityLogModel) ToDomain() *crm.ActivityLog {
	return &crm.ActivityLog{
		BaseEntity:     m.BaseModel.ToDomain(),
		OrganizationID: m.OrganizationID,
		QueryID:        m.QueryID,
		Type:           crm.ActivityType(m.Type),
		Message:        m.Message,
		ActorID:        m.ActorID,
		ActorName:      m.ActorName,
	}
}

// FromDomain populates ActivityLogModel from domain ActivityLog
func (m *ActivityLogModel) FromDomain(a *crm.ActivityLog) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.OrganizationID = a.OrganizationID
	m.QueryID = a.QueryID
	m.Type = string(a.Type)
	m.Message = a.Message
	m.ActorID = a.ActorID
	m.ActorName = a.ActorName
}

// BookingChecklistModel is the GORM model for operations checklists
type BookingChecklistModel struct {
	OrgAggregateModel
	QueryID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Items   crm.BookingItems `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName specifies the table name for BookingChecklistModel
func (BookingChecklistModel) TableName() string {
	return "booking_checklists"
}

// ToDomain converts BookingChecklistModel to domain BookingChecklist
func (m *BookingChecklistModel) ToDomain() *crm.BookingChecklist {
	return &crm.BookingChecklist{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		QueryID:          m.QueryID,
		Items:            m.Items,
	}
}

// FromDomain populates BookingChecklistModel from domain BookingChecklist
func (m *BookingChecklistModel) FromDomain(c *crm.BookingChecklist) {
	m.FromDomainOrgAggregateRoot(c.OrgAggregateRoot)
	m.QueryID = c.QueryID
	m.Items = c.Items
}
