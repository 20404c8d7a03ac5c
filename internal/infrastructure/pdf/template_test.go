package pdf

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *DocumentData {
	return &DocumentData{
		OrgName:      "Wander Routes",
		OrgPhone:     "+91 98111 22334",
		OrgEmail:     "hello@wanderroutes.example",
		QuoteNumber:  "QRY-012-02",
		CustomerName: "Asha Verma",
		Destination:  "Munnar",
		TravelDate:   "2026-10-04",
		Nights:       3,
		Days:         4,
		Adults:       2,
		Children:     1,
		Hotels: []DocumentHotel{
			{Name: "Tea Valley Resort", Location: "Munnar", RoomType: "Deluxe", MealPlan: "MAP", Nights: 3, Rooms: 1},
		},
		Transports: []DocumentTransport{
			{VehicleType: "SUV", VehicleName: "Innova Crysta", Days: 4, Quantity: 1},
		},
		DayPlans: []DocumentDay{
			{Day: 1, Date: "2026-10-04", Title: "Arrival and local sights", Activities: []DocumentActivity{
				{Name: "Mattupetty Dam", Description: "Scenic reservoir and boating."},
			}},
			{Day: 2, Date: "2026-10-05"},
		},
		Inclusions: []string{"Daily breakfast", "All transfers"},
		Exclusions: []string{"Airfare"},
		Subtotal:   decimal.NewFromInt(48500),
		Discount:   decimal.NewFromInt(1500),
		Total:      decimal.NewFromInt(47000),
	}
}

func TestRenderDocument(t *testing.T) {
	t.Run("renders a complete document", func(t *testing.T) {
		html, err := RenderDocument(sampleDocument())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		assert.Contains(t, html, "Asha Verma")
		assert.Contains(t, html, "QRY-012-02")
		assert.Contains(t, html, "Tea Valley Resort")
		assert.Contains(t, html, "Innova Crysta")
		assert.Contains(t, html, "3 Nights / 4 Days")
		assert.Contains(t, html, "₹47000.00")
	})

	t.Run("prints a discount row only when discounted", func(t *testing.T) {
		data := sampleDocument()
		html, err := RenderDocument(data)
		require.NoError(t, err)
		assert.Contains(t, html, "Discount")
		assert.Contains(t, html, "₹1500.00")

		data = sampleDocument()
		data.Discount = decimal.Zero
		html, err = RenderDocument(data)
		require.NoError(t, err)
		assert.NotContains(t, html, "- ₹")
	})

	t.Run("falls back to default branding and terms", func(t *testing.T) {
		data := sampleDocument()
		html, err := RenderDocument(data)
		require.NoError(t, err)

		assert.Contains(t, html, "#2563eb")
		assert.Contains(t, html, DefaultTerms[0])
	})

	t.Run("honors configured terms", func(t *testing.T) {
		data := sampleDocument()
		data.Terms = []string{"Custom term one."}
		html, err := RenderDocument(data)
		require.NoError(t, err)

		assert.Contains(t, html, "Custom term one.")
		assert.NotContains(t, html, DefaultTerms[0])
	})

	t.Run("marks empty days as at leisure", func(t *testing.T) {
		html, err := RenderDocument(sampleDocument())
		require.NoError(t, err)
		assert.Contains(t, html, "Day at leisure.")
	})

	t.Run("escapes customer provided text", func(t *testing.T) {
		data := sampleDocument()
		data.CustomerName = `<script>alert("x")</script>`
		html, err := RenderDocument(data)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert")
	})

	t.Run("rejects nil data", func(t *testing.T) {
		_, err := RenderDocument(nil)
		assert.Error(t, err)
	})
}
