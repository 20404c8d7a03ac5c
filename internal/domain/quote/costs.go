package quote

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeCosts derives the cost breakdown from the live selections:
//
//	hotelCost     = Σ nights × rooms × pricePerNight
//	transportCost = Σ amount
//	extraCost     = Σ charges
//	markupAmount  = base × markupPercent/100 + markupFixed
//	subtotal      = base + markupAmount
//
// Negative monetary inputs are clamped to zero before summing.
func ComputeCosts(hotels []HotelSelection, transports []TransportSelection, extras []ExtraService,
	markupPercent, markupFixed, discount decimal.Decimal) CostBreakdown {

	hotelCost := decimal.Zero
	for _, h := range hotels {
		nights := clampInt(h.Nights)
		rooms := clampInt(h.Rooms)
		price := clampMoney(h.PricePerNight)
		hotelCost = hotelCost.Add(price.Mul(decimal.NewFromInt(int64(nights * rooms))))
	}

	transportCost := decimal.Zero
	for _, t := range transports {
		transportCost = transportCost.Add(clampMoney(t.Amount))
	}

	extraCost := decimal.Zero
	for _, e := range extras {
		extraCost = extraCost.Add(clampMoney(e.Charges))
	}

	markupPercent = clampMoney(markupPercent)
	markupFixed = clampMoney(markupFixed)
	discount = clampMoney(discount)

	base := hotelCost.Add(transportCost).Add(extraCost)
	markupAmount := base.Mul(markupPercent).Div(hundred).Add(markupFixed)

	return CostBreakdown{
		HotelCost:         hotelCost,
		TransportCost:     transportCost,
		ExtraServicesCost: extraCost,
		MarkupPercent:     markupPercent,
		MarkupFixed:       markupFixed,
		MarkupAmount:      markupAmount,
		DiscountAmount:    discount,
		Subtotal:          base.Add(markupAmount),
	}
}

func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampHotelNights caps each selection so the running total never exceeds the
// query's night budget. Offending rows are clamped to the remaining budget
// and a warning message is returned per clamped row.
func ClampHotelNights(selections []HotelSelection, queryNights int) ([]HotelSelection, []string) {
	if queryNights < 0 {
		queryNights = 0
	}
	var warnings []string
	remaining := queryNights
	clamped := make([]HotelSelection, len(selections))
	for i, sel := range selections {
		nights := clampInt(sel.Nights)
		if nights > remaining {
			warnings = append(warnings, fmt.Sprintf(
				"Hotel %q nights reduced from %d to %d to fit the %d-night trip",
				sel.HotelName, nights, remaining, queryNights))
			nights = remaining
		}
		remaining -= nights
		sel.Nights = nights
		clamped[i] = sel
	}
	return clamped, warnings
}

// GenerateDayPlans builds N+1 sequential day records starting at the travel
// date. A zero travel date leaves the dates empty. Existing plans are
// preserved positionally so route and activity choices survive a nights
// change.
func GenerateDayPlans(travelDate time.Time, nights int, existing []DayPlan) []DayPlan {
	if nights < 0 {
		nights = 0
	}
	days := nights + 1
	plans := make([]DayPlan, days)
	for i := 0; i < days; i++ {
		if i < len(existing) {
			plans[i] = existing[i]
		}
		plans[i].Day = i + 1
		plans[i].Date = ""
		if !travelDate.IsZero() {
			plans[i].Date = travelDate.AddDate(0, 0, i).Format("2006-01-02")
		}
		if plans[i].Activities == nil {
			plans[i].Activities = []DayPlanActivity{}
		}
	}
	return plans
}
