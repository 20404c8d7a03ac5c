package quote

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuoteNumbers(t *testing.T) {
	t.Run("format pads sequence to two digits", func(t *testing.T) {
		assert.Equal(t, "QRY-042-01", FormatQuoteNumber("QRY-042", 1))
		assert.Equal(t, "QRY-042-12", FormatQuoteNumber("QRY-042", 12))
	})

	t.Run("sequence extraction", func(t *testing.T) {
		assert.Equal(t, 1, SequenceOf("QRY-042-01"))
		assert.Equal(t, 12, SequenceOf("QRY-042-12"))
		assert.Equal(t, 0, SequenceOf("QRY-042-"))
		assert.Equal(t, 0, SequenceOf("nonsense"))
	})

	t.Run("next sequence scans the max suffix", func(t *testing.T) {
		assert.Equal(t, 1, NextSequence(nil))
		assert.Equal(t, 4, NextSequence([]string{"QRY-7-01", "QRY-7-03", "QRY-7-02"}))
		assert.Equal(t, 6, NextSequence([]string{"QRY-7-05", "QRY-7-01"}))
	})
}

func TestNeedsNewVersion(t *testing.T) {
	t.Run("identical totals overwrite", func(t *testing.T) {
		assert.False(t, NeedsNewVersion(d(7750), d(7750)))
	})

	t.Run("delta within a cent overwrites", func(t *testing.T) {
		assert.False(t, NeedsNewVersion(decimal.NewFromFloat(7750.00), decimal.NewFromFloat(7750.01)))
	})

	t.Run("delta beyond a cent creates a version", func(t *testing.T) {
		assert.True(t, NeedsNewVersion(decimal.NewFromFloat(7750.00), decimal.NewFromFloat(7750.02)))
		assert.True(t, NeedsNewVersion(d(7750), d(8000)))
	})

	t.Run("direction does not matter", func(t *testing.T) {
		assert.True(t, NeedsNewVersion(d(8000), d(7750)))
	})
}

func TestItinerary(t *testing.T) {
	orgID := uuid.New()
	queryID := uuid.New()

	t.Run("new itinerary starts as draft", func(t *testing.T) {
		itinerary := NewItinerary(orgID, queryID)
		assert.Equal(t, ItineraryStatusDraft, itinerary.Status)
		assert.Equal(t, queryID, itinerary.QueryID)
		assert.Equal(t, orgID, itinerary.OrganizationID)
		assert.False(t, itinerary.IsConfirmed())
	})

	t.Run("confirm and demote", func(t *testing.T) {
		itinerary := NewItinerary(orgID, queryID)
		itinerary.Confirm()
		assert.True(t, itinerary.IsConfirmed())
		itinerary.Demote()
		assert.Equal(t, ItineraryStatusDraft, itinerary.Status)
	})

	t.Run("recalculate derives totals from selections", func(t *testing.T) {
		itinerary := NewItinerary(orgID, queryID)
		itinerary.HotelSelections = []HotelSelection{
			{Nights: 3, Rooms: 1, PricePerNight: d(2000)},
		}
		itinerary.TransportSelections = []TransportSelection{{Amount: d(1500)}}
		itinerary.Costs.MarkupPercent = d(10)
		itinerary.Costs.DiscountAmount = d(500)

		itinerary.Recalculate()

		assert.True(t, itinerary.Costs.Subtotal.Equal(d(8250)))
		assert.True(t, itinerary.TotalCost.Equal(d(7750)), "totalCost = %s", itinerary.TotalCost)
	})

	t.Run("recalculate ignores stale client totals", func(t *testing.T) {
		itinerary := NewItinerary(orgID, queryID)
		itinerary.TotalCost = d(999999)
		itinerary.Costs.HotelCost = d(888888)
		itinerary.ExtraServices = []ExtraService{{Name: "Guide", Charges: d(500)}}

		itinerary.Recalculate()

		assert.True(t, itinerary.Costs.HotelCost.IsZero())
		assert.True(t, itinerary.TotalCost.Equal(d(500)))
	})
}
