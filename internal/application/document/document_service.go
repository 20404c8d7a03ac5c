// Package document assembles itinerary PDF documents from the query, the
// selected quote version and the organization's branding.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/domain/quote"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/pdf"
)

// GeneratePDFInput selects the quote version to render. A nil ItineraryID
// picks the latest saved version.
type GeneratePDFInput struct {
	QueryID     uuid.UUID
	ItineraryID *uuid.UUID
}

// GeneratedPDF is the rendered document ready for download
type GeneratedPDF struct {
	FileName       string
	Data           []byte
	RenderDuration time.Duration
}

// DocumentService builds and renders itinerary documents
type DocumentService struct {
	queryRepo     crm.QueryRepository
	itineraryRepo quote.ItineraryRepository
	orgRepo       identity.OrganizationRepository
	renderer      pdf.Renderer
	logger        *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	queryRepo crm.QueryRepository,
	itineraryRepo quote.ItineraryRepository,
	orgRepo identity.OrganizationRepository,
	renderer pdf.Renderer,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		queryRepo:     queryRepo,
		itineraryRepo: itineraryRepo,
		orgRepo:       orgRepo,
		renderer:      renderer,
		logger:        logger,
	}
}

// GeneratePDF renders the itinerary document for a query. When the query has
// no saved quote the document is produced with empty selection sections so
// agents can still share a branded shell with the customer.
func (s *DocumentService) GeneratePDF(ctx context.Context, orgID uuid.UUID, input GeneratePDFInput) (*GeneratedPDF, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("RENDERER_UNAVAILABLE", "PDF rendering is not configured")
	}

	query, err := s.queryRepo.FindByIDForOrg(ctx, orgID, input.QueryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("failed to load query for pdf",
			zap.Error(err),
			zap.String("query_id", input.QueryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load query")
	}

	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		s.logger.Error("failed to load organization for pdf",
			zap.Error(err),
			zap.String("org_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load organization")
	}

	itinerary, err := s.resolveItinerary(ctx, orgID, query.ID, input.ItineraryID)
	if err != nil {
		return nil, err
	}

	data := BuildDocumentData(org, query, itinerary)
	html, err := pdf.RenderDocument(data)
	if err != nil {
		s.logger.Error("failed to render document template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build document")
	}

	result, err := s.renderer.Render(ctx, &pdf.RenderRequest{
		HTML:  html,
		Title: data.QuoteNumber,
	})
	if err != nil {
		s.logger.Error("pdf rendering failed",
			zap.Error(err),
			zap.String("query_id", query.ID.String()))
		var renderErr *pdf.RenderError
		if errors.As(err, &renderErr) && renderErr.Code == pdf.ErrCodeRenderTimeout {
			return nil, shared.NewDomainError("PDF_TIMEOUT", "PDF generation timed out")
		}
		return nil, shared.NewDomainError("PDF_FAILED", "PDF generation failed")
	}

	s.logger.Info("pdf generated",
		zap.String("query_number", query.QueryNumber),
		zap.Duration("render_duration", result.RenderDuration),
		zap.Int("bytes", len(result.PDFData)))

	return &GeneratedPDF{
		FileName:       DocumentFileName(query.CustomerName),
		Data:           result.PDFData,
		RenderDuration: result.RenderDuration,
	}, nil
}

// resolveItinerary loads the requested version, or the latest one when no
// version was named. A query without any saved quote yields nil.
func (s *DocumentService) resolveItinerary(ctx context.Context, orgID, queryID uuid.UUID, itineraryID *uuid.UUID) (*quote.Itinerary, error) {
	if itineraryID != nil {
		itinerary, err := s.itineraryRepo.FindByIDForOrg(ctx, orgID, *itineraryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("QUOTE_NOT_FOUND", "Quote version does not exist")
			}
			s.logger.Error("failed to load itinerary for pdf", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load quote")
		}
		if itinerary.QueryID != queryID {
			return nil, shared.NewDomainError("QUOTE_NOT_FOUND", "Quote version does not belong to this query")
		}
		return itinerary, nil
	}

	itinerary, err := s.itineraryRepo.FindLatestForQuery(ctx, orgID, queryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to load latest itinerary for pdf", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load quote")
	}
	return itinerary, nil
}

// BuildDocumentData maps the domain objects onto the template model. The
// itinerary may be nil, which produces a document without selection sections.
func BuildDocumentData(org *identity.Organization, query *crm.Query, itinerary *quote.Itinerary) *pdf.DocumentData {
	data := &pdf.DocumentData{
		OrgName:        org.Name,
		OrgPhone:       org.Phone,
		OrgEmail:       org.Email,
		OrgWebsite:     org.Website,
		OrgAddress:     org.Address,
		AboutUs:        org.AboutUs,
		ConsultantName: org.ConsultantName,
		Branding: pdf.DocumentBranding{
			Logo:         org.Branding.Logo,
			HeaderImage:  org.Branding.HeaderImage,
			FooterImage:  org.Branding.FooterImage,
			PrimaryColor: org.Branding.PrimaryColor,
			TabColor:     org.Branding.PDFTabColor,
			FontColor:    org.Branding.PDFFontColor,
		},
		CustomerName: query.CustomerName,
		Destination:  query.Destination,
		Nights:       query.Nights,
		Days:         query.Nights + 1,
		Adults:       query.Adults,
		Children:     query.Children,
		PickUp:       query.PickUp,
		DropOff:      query.DropOff,
		Terms:        splitTerms(org.TermsAndConditions),
	}
	if query.TravelDate != nil {
		data.TravelDate = query.TravelDate.Format("02 Jan 2006")
	}

	if itinerary == nil {
		data.QuoteNumber = query.QueryNumber
		return data
	}

	data.QuoteNumber = itinerary.QuoteNumber
	data.Inclusions = itinerary.Inclusions
	data.Exclusions = itinerary.Exclusions
	data.Subtotal = itinerary.Costs.Subtotal
	data.Discount = itinerary.Costs.DiscountAmount
	data.Total = itinerary.TotalCost

	for _, h := range itinerary.HotelSelections {
		data.Hotels = append(data.Hotels, pdf.DocumentHotel{
			Name:          h.HotelName,
			Location:      h.HotelLocation,
			RoomType:      h.RoomType,
			MealPlan:      h.MealPlan,
			Nights:        h.Nights,
			Rooms:         h.Rooms,
			PricePerNight: h.PricePerNight,
		})
	}
	for _, t := range itinerary.TransportSelections {
		data.Transports = append(data.Transports, pdf.DocumentTransport{
			VehicleType: t.VehicleType,
			VehicleName: t.VehicleName,
			Days:        t.Days,
			Quantity:    t.Quantity,
		})
	}
	for _, d := range itinerary.DayPlans {
		day := pdf.DocumentDay{
			Day:        d.Day,
			Date:       d.Date,
			Title:      d.Title,
			RouteTitle: d.RouteTitle,
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, pdf.DocumentActivity{
				Name:        a.Name,
				Description: a.Description,
				Image:       a.Image,
			})
		}
		data.DayPlans = append(data.DayPlans, day)
	}
	return data
}

// DocumentFileName derives the download name from the customer name
func DocumentFileName(customerName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(customerName)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "customer"
	}
	return fmt.Sprintf("itinerary_%s.pdf", name)
}

// splitTerms turns the stored free-text terms into template lines. Empty
// input falls back to the template defaults.
func splitTerms(terms string) []string {
	var out []string
	for _, line := range strings.Split(terms, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
