package quote

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/travvip/backend/internal/domain/quote"
	"github.com/travvip/backend/internal/domain/shared"
)

// HotelSelectionInput is one requested hotel line. Name and location are
// snapshotted from the catalog server-side.
type HotelSelectionInput struct {
	HotelID         uuid.UUID       `json:"hotelId" binding:"required"`
	Nights          int             `json:"nights"`
	Rooms           int             `json:"rooms"`
	RoomType        string          `json:"roomType"`
	MealPlan        string          `json:"mealPlan"`
	AdultsPerRoom   int             `json:"adultsPerRoom"`
	ChildrenPerRoom int             `json:"childrenPerRoom"`
	PricePerNight   decimal.Decimal `json:"pricePerNight"`
}

// TransportSelectionInput is one requested vehicle line
type TransportSelectionInput struct {
	TransportID uuid.UUID       `json:"transportId" binding:"required"`
	Days        int             `json:"days"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// DayPlanInput is one requested day schedule
type DayPlanInput struct {
	Title       string      `json:"title"`
	RouteID     *uuid.UUID  `json:"routeId"`
	ActivityIDs []uuid.UUID `json:"activityIds"`
}

// UnmarshalJSON accepts "" as null for the optional route reference
func (i *DayPlanInput) UnmarshalJSON(data []byte) error {
	type plain DayPlanInput
	return json.Unmarshal(shared.NullifyEmptyJSONFields(data, "routeId"), (*plain)(i))
}

// SaveItineraryInput is the quote-builder save payload. Cost fields sent by
// the client are ignored; everything is recomputed from the selections.
type SaveItineraryInput struct {
	Hotels         []HotelSelectionInput     `json:"hotels"`
	Transports     []TransportSelectionInput `json:"transports"`
	DayPlans       []DayPlanInput            `json:"dayPlans"`
	ExtraServices  []quote.ExtraService      `json:"extraServices"`
	Inclusions     []string                  `json:"inclusions"`
	Exclusions     []string                  `json:"exclusions"`
	MarkupPercent  decimal.Decimal           `json:"markupPercent"`
	MarkupFixed    decimal.Decimal           `json:"markupFixed"`
	DiscountAmount decimal.Decimal           `json:"discountAmount"`
}

// ItineraryInfo is the read model for a quote version
type ItineraryInfo struct {
	ID                  uuid.UUID                  `json:"id"`
	QueryID             uuid.UUID                  `json:"queryId"`
	QuoteNumber         string                     `json:"quoteNumber"`
	HotelSelections     []quote.HotelSelection     `json:"hotelSelections"`
	TransportSelections []quote.TransportSelection `json:"transportSelections"`
	DayPlans            []quote.DayPlan            `json:"dayPlans"`
	ExtraServices       []quote.ExtraService       `json:"extraServices"`
	Inclusions          []string                   `json:"inclusions"`
	Exclusions          []string                   `json:"exclusions"`
	Costs               quote.CostBreakdown        `json:"costs"`
	TotalCost           decimal.Decimal            `json:"totalCost"`
	Status              string                     `json:"status"`
	CreatedAt           time.Time                  `json:"createdAt"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}

// NewItineraryInfo maps a quote version onto its read model
func NewItineraryInfo(i *quote.Itinerary) ItineraryInfo {
	info := ItineraryInfo{
		ID:                  i.ID,
		QueryID:             i.QueryID,
		QuoteNumber:         i.QuoteNumber,
		HotelSelections:     i.HotelSelections,
		TransportSelections: i.TransportSelections,
		DayPlans:            i.DayPlans,
		ExtraServices:       i.ExtraServices,
		Inclusions:          i.Inclusions,
		Exclusions:          i.Exclusions,
		Costs:               i.Costs,
		TotalCost:           i.TotalCost,
		Status:              string(i.Status),
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}
	if info.HotelSelections == nil {
		info.HotelSelections = []quote.HotelSelection{}
	}
	if info.TransportSelections == nil {
		info.TransportSelections = []quote.TransportSelection{}
	}
	if info.DayPlans == nil {
		info.DayPlans = []quote.DayPlan{}
	}
	if info.ExtraServices == nil {
		info.ExtraServices = []quote.ExtraService{}
	}
	if info.Inclusions == nil {
		info.Inclusions = []string{}
	}
	if info.Exclusions == nil {
		info.Exclusions = []string{}
	}
	return info
}

// SaveItineraryResult carries the saved version plus any hotel-night clamp
// warnings and whether the save created a new version or overwrote the latest
type SaveItineraryResult struct {
	Itinerary ItineraryInfo `json:"itinerary"`
	Outcome   string        `json:"outcome"`
	Warnings  []string      `json:"warnings"`
}
