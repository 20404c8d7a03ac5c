// Package quote holds the itinerary aggregate: versioned priced proposals
// attached to a query, their cost breakdown and day-wise plans.
package quote

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travvip/backend/internal/domain/shared"
)

// ItineraryStatus is the proposal state
type ItineraryStatus string

const (
	ItineraryStatusDraft     ItineraryStatus = "draft"
	ItineraryStatusConfirmed ItineraryStatus = "confirmed"
)

// MaxVersionsPerQuery bounds the retained quote history per query
const MaxVersionsPerQuery = 7

// HotelSelection is one hotel line on a quote. Name and location are
// snapshots taken at selection time so later catalog edits do not rewrite
// historical quotes.
type HotelSelection struct {
	HotelID         uuid.UUID       `json:"hotelId"`
	HotelName       string          `json:"hotelName"`
	HotelLocation   string          `json:"hotelLocation"`
	Nights          int             `json:"nights"`
	Rooms           int             `json:"rooms"`
	RoomType        string          `json:"roomType"`
	MealPlan        string          `json:"mealPlan"`
	AdultsPerRoom   int             `json:"adultsPerRoom"`
	ChildrenPerRoom int             `json:"childrenPerRoom"`
	PricePerNight   decimal.Decimal `json:"pricePerNight"`
}

// TransportSelection is one vehicle line on a quote
type TransportSelection struct {
	TransportID uuid.UUID       `json:"transportId"`
	VehicleType string          `json:"vehicleType"`
	VehicleName string          `json:"vehicleName"`
	Days        int             `json:"days"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// DayPlanActivity is an activity snapshot placed on a day
type DayPlanActivity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

// DayPlan is one calendar day's schedule
type DayPlan struct {
	Day        int               `json:"day"`
	Date       string            `json:"date"`
	RouteID    *uuid.UUID        `json:"routeId,omitempty"`
	RouteTitle string            `json:"routeTitle"`
	Title      string            `json:"title"`
	Activities []DayPlanActivity `json:"activities"`
}

// ExtraService is an ad hoc priced line
type ExtraService struct {
	Name    string          `json:"name"`
	Day     int             `json:"day"`
	Charges decimal.Decimal `json:"charges"`
}

// CostBreakdown is the persisted cost decomposition. It is always recomputed
// server-side from the selections; client-sent values are ignored.
type CostBreakdown struct {
	HotelCost         decimal.Decimal `json:"hotelCost"`
	TransportCost     decimal.Decimal `json:"transportCost"`
	ExtraServicesCost decimal.Decimal `json:"extraServicesCost"`
	MarkupPercent     decimal.Decimal `json:"markupPercent"`
	MarkupFixed       decimal.Decimal `json:"markupFixed"`
	MarkupAmount      decimal.Decimal `json:"markupAmount"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	Subtotal          decimal.Decimal `json:"subtotal"`
}

// Itinerary is a versioned priced proposal for a query. At most one itinerary
// per query holds the confirmed status at any time.
type Itinerary struct {
	shared.OrgAggregateRoot
	QueryID             uuid.UUID
	QuoteNumber         string
	HotelSelections     HotelSelections
	TransportSelections TransportSelections
	DayPlans            DayPlans
	ExtraServices       ExtraServices
	Inclusions          StringList
	Exclusions          StringList
	Costs               CostBreakdown
	TotalCost           decimal.Decimal
	Status              ItineraryStatus
}

// NewItinerary creates a draft proposal for a query
func NewItinerary(orgID, queryID uuid.UUID) *Itinerary {
	return &Itinerary{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		QueryID:          queryID,
		Status:           ItineraryStatusDraft,
	}
}

// Confirm marks this version the accepted one. The repository demotes
// siblings in the same transaction.
func (i *Itinerary) Confirm() {
	i.Status = ItineraryStatusConfirmed
	i.UpdatedAt = time.Now()
}

// Demote returns the version to draft
func (i *Itinerary) Demote() {
	i.Status = ItineraryStatusDraft
	i.UpdatedAt = time.Now()
}

// IsConfirmed reports whether this is the accepted version
func (i *Itinerary) IsConfirmed() bool {
	return i.Status == ItineraryStatusConfirmed
}

// Recalculate normalizes the selections and recomputes the cost breakdown
// and total from them.
func (i *Itinerary) Recalculate() {
	i.Costs = ComputeCosts(i.HotelSelections, i.TransportSelections, i.ExtraServices,
		i.Costs.MarkupPercent, i.Costs.MarkupFixed, i.Costs.DiscountAmount)
	i.TotalCost = i.Costs.Subtotal.Sub(i.Costs.DiscountAmount)
	i.UpdatedAt = time.Now()
}

// FormatQuoteNumber builds {queryNumber}-{seq:02d}
func FormatQuoteNumber(queryNumber string, seq int) string {
	return fmt.Sprintf("%s-%02d", queryNumber, seq)
}

// SequenceOf extracts the numeric suffix of a quote number. Returns 0 when
// the number carries no parseable suffix.
func SequenceOf(quoteNumber string) int {
	idx := strings.LastIndex(quoteNumber, "-")
	if idx < 0 || idx == len(quoteNumber)-1 {
		return 0
	}
	seq, err := strconv.Atoi(quoteNumber[idx+1:])
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

// NextSequence returns the sequence to assign after the given quote numbers
func NextSequence(quoteNumbers []string) int {
	max := 0
	for _, qn := range quoteNumbers {
		if seq := SequenceOf(qn); seq > max {
			max = seq
		}
	}
	return max + 1
}

// versionEpsilon is the price delta below which a save overwrites the latest
// version instead of creating a new one.
var versionEpsilon = decimal.NewFromFloat(0.01)

// NeedsNewVersion reports whether the price moved enough to warrant a new
// version rather than an in-place overwrite.
func NeedsNewVersion(lastTotal, currentTotal decimal.Decimal) bool {
	return currentTotal.Sub(lastTotal).Abs().GreaterThan(versionEpsilon)
}
