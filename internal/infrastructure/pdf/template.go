package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
)

// DefaultTerms is used when an organization has not configured its own
// terms and conditions.
var DefaultTerms = []string{
	"Prices are subject to availability at the time of confirmation.",
	"Booking is confirmed only after receipt of the advance payment.",
	"Hotel check-in is at 2 PM and check-out is at 11 AM unless stated otherwise.",
	"Early check-in and late check-out are subject to availability and charges.",
	"Rooms and vehicles are subject to availability at the time of booking.",
	"Any increase in taxes or fuel surcharges will be borne by the guest.",
	"Cancellation charges apply as per the hotel and transport policies.",
	"The itinerary may change due to weather, traffic or local conditions.",
	"Entry tickets, guide fees and personal expenses are excluded unless listed.",
	"The company is not liable for delays caused by third-party operators.",
	"Valid government photo ID is mandatory for all guests at check-in.",
	"Disputes are subject to the jurisdiction of the company's registered office.",
}

// DocumentBranding carries the organization's visual identity into the template
type DocumentBranding struct {
	Logo         string
	HeaderImage  string
	FooterImage  string
	PrimaryColor string
	TabColor     string
	FontColor    string
}

// DocumentHotel is one hotel row on the document
type DocumentHotel struct {
	Name          string
	Location      string
	RoomType      string
	MealPlan      string
	Nights        int
	Rooms         int
	PricePerNight decimal.Decimal
}

// DocumentTransport is one vehicle row on the document
type DocumentTransport struct {
	VehicleType string
	VehicleName string
	Days        int
	Quantity    int
}

// DocumentActivity is an activity entry on a day page
type DocumentActivity struct {
	Name        string
	Description string
	Image       string
}

// DocumentDay is one day page of the document
type DocumentDay struct {
	Day        int
	Date       string
	Title      string
	RouteTitle string
	Activities []DocumentActivity
}

// DocumentData is everything the itinerary template needs
type DocumentData struct {
	// Organization
	OrgName        string
	OrgPhone       string
	OrgEmail       string
	OrgWebsite     string
	OrgAddress     string
	AboutUs        string
	ConsultantName string
	Branding       DocumentBranding

	// Trip
	QuoteNumber  string
	CustomerName string
	Destination  string
	TravelDate   string
	Nights       int
	Days         int
	Adults       int
	Children     int
	PickUp       string
	DropOff      string

	// Content
	Hotels     []DocumentHotel
	Transports []DocumentTransport
	DayPlans   []DocumentDay
	Inclusions []string
	Exclusions []string
	Terms      []string

	// Pricing
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// HasDiscount reports whether a discount row should be printed
func (d *DocumentData) HasDiscount() bool {
	return d.Discount.IsPositive()
}

var templateFuncs = template.FuncMap{
	"money": func(v decimal.Decimal) string {
		return "₹" + v.StringFixed(2)
	},
	"add": func(a, b int) int { return a + b },
}

var itineraryTemplate = template.Must(template.New("itinerary").Funcs(templateFuncs).Parse(itineraryHTML))

// RenderDocument executes the itinerary template into a complete HTML document
func RenderDocument(data *DocumentData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("document data is nil")
	}
	if data.Branding.PrimaryColor == "" {
		data.Branding.PrimaryColor = "#2563eb"
	}
	if data.Branding.TabColor == "" {
		data.Branding.TabColor = data.Branding.PrimaryColor
	}
	if data.Branding.FontColor == "" {
		data.Branding.FontColor = "#ffffff"
	}
	if len(data.Terms) == 0 {
		data.Terms = DefaultTerms
	}

	var buf bytes.Buffer
	if err := itineraryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render itinerary template: %w", err)
	}
	return buf.String(), nil
}

const itineraryHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.QuoteNumber}} - {{.CustomerName}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2937; font-size: 13px; }
  .page { width: 210mm; min-height: 297mm; padding: 14mm; page-break-after: always; position: relative; }
  .page:last-child { page-break-after: auto; }
  .header { display: flex; justify-content: space-between; align-items: center; border-bottom: 3px solid {{.Branding.PrimaryColor}}; padding-bottom: 8px; margin-bottom: 18px; }
  .header img.logo { max-height: 52px; }
  .header .org { text-align: right; font-size: 11px; color: #6b7280; }
  .header .org .name { font-size: 15px; font-weight: bold; color: #111827; }
  .header-image { width: 100%; max-height: 70mm; object-fit: cover; border-radius: 6px; margin-bottom: 14px; }
  .tab { display: inline-block; background: {{.Branding.TabColor}}; color: {{.Branding.FontColor}}; padding: 5px 16px; border-radius: 4px; font-weight: bold; font-size: 14px; margin-bottom: 10px; }
  h1 { font-size: 22px; margin-bottom: 6px; }
  .greeting { margin: 12px 0; line-height: 1.5; }
  .meta { width: 100%; border-collapse: collapse; margin: 14px 0; }
  .meta td { padding: 6px 10px; border: 1px solid #e5e7eb; }
  .meta td.k { background: #f9fafb; font-weight: bold; width: 32%; }
  .price-box { border: 2px solid {{.Branding.PrimaryColor}}; border-radius: 8px; padding: 14px 18px; margin: 18px 0; }
  .price-box .row { display: flex; justify-content: space-between; padding: 3px 0; }
  .price-box .total { font-size: 18px; font-weight: bold; color: {{.Branding.PrimaryColor}}; border-top: 1px solid #e5e7eb; margin-top: 6px; padding-top: 8px; }
  table.grid { width: 100%; border-collapse: collapse; margin: 10px 0 18px; }
  table.grid th { background: {{.Branding.TabColor}}; color: {{.Branding.FontColor}}; padding: 7px 9px; text-align: left; font-size: 12px; }
  table.grid td { padding: 6px 9px; border-bottom: 1px solid #e5e7eb; }
  .day-title { font-size: 16px; font-weight: bold; margin-bottom: 2px; }
  .day-date { color: #6b7280; font-size: 12px; margin-bottom: 10px; }
  .activity { display: flex; gap: 10px; margin-bottom: 12px; }
  .activity img { width: 46mm; height: 30mm; object-fit: cover; border-radius: 4px; }
  .activity .a-name { font-weight: bold; margin-bottom: 3px; }
  .activity .a-desc { color: #4b5563; line-height: 1.45; font-size: 12px; }
  ul.list { margin: 8px 0 16px 18px; line-height: 1.7; }
  ol.terms { margin: 8px 0 16px 18px; line-height: 1.7; font-size: 12px; }
  .footer-image { width: 100%; max-height: 40mm; object-fit: cover; border-radius: 6px; margin-top: 14px; }
  .contact { line-height: 1.8; margin-top: 10px; }
  .muted { color: #6b7280; }
</style>
</head>
<body>

<div class="page">
  <div class="header">
    {{if .Branding.Logo}}<img class="logo" src="{{.Branding.Logo}}" alt="">{{else}}<div class="name" style="font-size:18px;font-weight:bold">{{.OrgName}}</div>{{end}}
    <div class="org">
      <div class="name">{{.OrgName}}</div>
      {{if .OrgPhone}}<div>{{.OrgPhone}}</div>{{end}}
      {{if .OrgEmail}}<div>{{.OrgEmail}}</div>{{end}}
      {{if .OrgWebsite}}<div>{{.OrgWebsite}}</div>{{end}}
    </div>
  </div>
  {{if .Branding.HeaderImage}}<img class="header-image" src="{{.Branding.HeaderImage}}" alt="">{{end}}
  <div class="tab">Quote {{.QuoteNumber}}</div>
  <h1>{{if .Destination}}{{.Destination}} Itinerary{{else}}Travel Itinerary{{end}}</h1>
  <div class="greeting">
    Dear {{.CustomerName}},<br>
    Greetings from {{.OrgName}}! We are delighted to share your personalised
    travel plan. Please find the details of your trip below.
  </div>
  <table class="meta">
    {{if .Destination}}<tr><td class="k">Destination</td><td>{{.Destination}}</td></tr>{{end}}
    {{if .TravelDate}}<tr><td class="k">Travel Date</td><td>{{.TravelDate}}</td></tr>{{end}}
    <tr><td class="k">Duration</td><td>{{.Nights}} Nights / {{.Days}} Days</td></tr>
    <tr><td class="k">Travellers</td><td>{{.Adults}} Adult(s){{if .Children}}, {{.Children}} Child(ren){{end}}</td></tr>
    {{if .PickUp}}<tr><td class="k">Pick Up</td><td>{{.PickUp}}</td></tr>{{end}}
    {{if .DropOff}}<tr><td class="k">Drop Off</td><td>{{.DropOff}}</td></tr>{{end}}
  </table>
  <div class="price-box">
    {{if .HasDiscount}}
    <div class="row"><span>Package Price</span><span>{{money .Subtotal}}</span></div>
    <div class="row"><span>Discount</span><span>- {{money .Discount}}</span></div>
    {{end}}
    <div class="row total"><span>Total Package Cost</span><span>{{money .Total}}</span></div>
  </div>

  {{if .Hotels}}
  <div class="tab">Hotels</div>
  <table class="grid">
    <tr><th>Hotel</th><th>Location</th><th>Room</th><th>Meal Plan</th><th>Nights</th><th>Rooms</th></tr>
    {{range .Hotels}}
    <tr><td>{{.Name}}</td><td>{{.Location}}</td><td>{{.RoomType}}</td><td>{{.MealPlan}}</td><td>{{.Nights}}</td><td>{{.Rooms}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .Transports}}
  <div class="tab">Transport</div>
  <table class="grid">
    <tr><th>Vehicle</th><th>Type</th><th>Days</th><th>Quantity</th></tr>
    {{range .Transports}}
    <tr><td>{{.VehicleName}}</td><td>{{.VehicleType}}</td><td>{{.Days}}</td><td>{{.Quantity}}</td></tr>
    {{end}}
  </table>
  {{end}}
</div>

{{range .DayPlans}}
<div class="page">
  <div class="tab">Day {{.Day}}</div>
  <div class="day-title">{{if .Title}}{{.Title}}{{else if .RouteTitle}}{{.RouteTitle}}{{else}}Day {{.Day}}{{end}}</div>
  {{if .Date}}<div class="day-date">{{.Date}}</div>{{end}}
  {{if .Activities}}
    {{range .Activities}}
    <div class="activity">
      {{if .Image}}<img src="{{.Image}}" alt="">{{end}}
      <div>
        <div class="a-name">{{.Name}}</div>
        {{if .Description}}<div class="a-desc">{{.Description}}</div>{{end}}
      </div>
    </div>
    {{end}}
  {{else}}
  <div class="muted">Day at leisure.</div>
  {{end}}
</div>
{{end}}

<div class="page">
  {{if .Inclusions}}
  <div class="tab">Inclusions</div>
  <ul class="list">{{range .Inclusions}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .Exclusions}}
  <div class="tab">Exclusions</div>
  <ul class="list">{{range .Exclusions}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  <div class="tab">Terms &amp; Conditions</div>
  <ol class="terms">{{range .Terms}}<li>{{.}}</li>{{end}}</ol>
</div>

<div class="page">
  <div class="tab">Contact Us</div>
  {{if .AboutUs}}<p class="greeting">{{.AboutUs}}</p>{{end}}
  <div class="contact">
    <strong>{{.OrgName}}</strong><br>
    {{if .ConsultantName}}Your consultant: {{.ConsultantName}}<br>{{end}}
    {{if .OrgPhone}}Phone: {{.OrgPhone}}<br>{{end}}
    {{if .OrgEmail}}Email: {{.OrgEmail}}<br>{{end}}
    {{if .OrgWebsite}}Website: {{.OrgWebsite}}<br>{{end}}
    {{if .OrgAddress}}{{.OrgAddress}}{{end}}
  </div>
  {{if .Branding.FooterImage}}<img class="footer-image" src="{{.Branding.FooterImage}}" alt="">{{end}}
</div>

</body>
</html>`
