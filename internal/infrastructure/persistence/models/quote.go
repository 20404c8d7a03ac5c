package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/quote"
)

// ItineraryModel is the GORM model for quote versions
type ItineraryModel struct {
	OrgAggregateModel
	QueryID             uuid.UUID                 `gorm:"type:uuid;not null;index"`
	QuoteNumber         string                    `gorm:"type:varchar(30);not null;index"`
	HotelSelections     quote.HotelSelections     `gorm:"type:jsonb;not null;default:'[]'"`
	TransportSelections quote.TransportSelections `gorm:"type:jsonb;not null;default:'[]'"`
	DayPlans            quote.DayPlans            `gorm:"type:jsonb;not null;default:'[]'"`
	ExtraServices       quote.ExtraServices       `gorm:"type:jsonb;not null;default:'[]'"`
	Inclusions          quote.StringList          `gorm:"type:jsonb;not null;default:'[]'"`
	Exclusions          quote.StringList          `gorm:"type:jsonb;not null;default:'[]'"`
	Costs               quote.CostBreakdown       `gorm:"type:jsonb;not null;default:'{}'"`
	TotalCost           decimal.Decimal           `gorm:"type:decimal(14,2);not null;default:0"`
	Status              string                    `gorm:"type:varchar(20);not null;default:'draft';index"`
}

// TableName specifies the table name for ItineraryModel
func (ItineraryModel) TableName() string {
	return "itineraries"
}

// ToDomain converts ItineraryModel to domain Itinerary
func (m *ItineraryModel) ToDomain() *quote.Itinerary {
	return &quote.Itinerary{
		OrgAggregateRoot:    m.ToDomainOrgAggregateRoot(),
		QueryID:             m.QueryID,
		QuoteNumber:         m.QuoteNumber,
		HotelSelections:     m.HotelSelections,
		TransportSelections: m.TransportSelections,
		DayPlans:            m.DayPlans,
		ExtraServices:       m.ExtraServices,
		Inclusions:          m.Inclusions,
		Exclusions:          m.Exclusions,
		Costs:               m.Costs,
		TotalCost:           m.TotalCost,
		Status:              quote.ItineraryStatus(m.Status),
	}
}

// FromDomain populates ItineraryModel from domain Itinerary
func (m *ItineraryModel) FromDomain(i *quote.Itinerary) {
	m.FromDomainOrgAggregateRoot(i.OrgAggregateRoot)
	m.QueryID = i.QueryID
	m.QuoteNumber = i.QuoteNumber
	m.HotelSelections = i.HotelSelections
	m.TransportSelections = i.TransportSelections
	m.DayPlans = i.DayPlans
	m.ExtraServices = i.ExtraServices
	m.Inclusions = i.Inclusions
	m.Exclusions = i.Exclusions
	m.Costs = i.Costs
	m.TotalCost = i.TotalCost
	m.Status = string(i.Status)
}
