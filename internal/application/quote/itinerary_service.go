package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/catalog"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/quote"
	"github.com/travvip/backend/internal/domain/shared"
)

// Actor identifies who performed an operation, for activity logging
type Actor struct {
	ID   *uuid.UUID
	Name string
}

// ItineraryService builds, versions and confirms quotes for queries
type ItineraryService struct {
	itineraryRepo quote.ItineraryRepository
	queryRepo     crm.QueryRepository
	hotelRepo     catalog.HotelRepository
	transportRepo catalog.TransportRepository
	activityRepo  catalog.ActivityRepository
	routeRepo     catalog.RouteRepository
	activityLog   crm.ActivityLogRepository
	logger        *zap.Logger
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(
	itineraryRepo quote.ItineraryRepository,
	queryRepo crm.QueryRepository,
	hotelRepo catalog.HotelRepository,
	transportRepo catalog.TransportRepository,
	activityRepo catalog.ActivityRepository,
	routeRepo catalog.RouteRepository,
	activityLog crm.ActivityLogRepository,
	logger *zap.Logger,
) *ItineraryService {
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		queryRepo:     queryRepo,
		hotelRepo:     hotelRepo,
		transportRepo: transportRepo,
		activityRepo:  activityRepo,
		routeRepo:     routeRepo,
		activityLog:   activityLog,
		logger:        logger,
	}
}

// SaveQuote resolves the selections against the catalog, recomputes costs
// server-side and persists the result through the versioning algorithm. The
// parent query is promoted to ongoing and its quote total cached.
func (s *ItineraryService) SaveQuote(ctx context.Context, orgID, queryID uuid.UUID, actor Actor, input SaveItineraryInput) (*SaveItineraryResult, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}
	if query.IsTerminal() {
		return nil, shared.NewDomainError("QUERY_CANCELLED", "Cannot quote a cancelled query")
	}

	itinerary := quote.NewItinerary(orgID, queryID)
	if actor.ID != nil {
		itinerary.CreatedBy = actor.ID
	}

	hotels, err := s.resolveHotels(ctx, orgID, input.Hotels)
	if err != nil {
		return nil, err
	}
	hotels, warnings := quote.ClampHotelNights(hotels, query.Nights)
	itinerary.HotelSelections = hotels

	itinerary.TransportSelections, err = s.resolveTransports(ctx, orgID, input.Transports)
	if err != nil {
		return nil, err
	}

	itinerary.DayPlans, err = s.resolveDayPlans(ctx, orgID, query, input.DayPlans)
	if err != nil {
		return nil, err
	}

	itinerary.ExtraServices = input.ExtraServices
	itinerary.Inclusions = input.Inclusions
	itinerary.Exclusions = input.Exclusions
	itinerary.Costs.MarkupPercent = input.MarkupPercent
	itinerary.Costs.MarkupFixed = input.MarkupFixed
	itinerary.Costs.DiscountAmount = input.DiscountAmount
	itinerary.Recalculate()

	outcome, err := s.itineraryRepo.SaveVersioned(ctx, itinerary, query.QueryNumber)
	if err != nil {
		s.logger.Error("failed to save quote version",
			zap.Error(err),
			zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save quote")
	}

	query.MarkQuoted(itinerary.TotalCost)
	if err := s.queryRepo.Save(ctx, query); err != nil {
		s.logger.Warn("failed to cache quote total on query",
			zap.Error(err),
			zap.String("query_id", queryID.String()))
	}

	s.logActivity(ctx, query, fmt.Sprintf("Quote %s saved (%s)", itinerary.QuoteNumber, outcome), actor)

	s.logger.Info("quote saved",
		zap.String("query_id", queryID.String()),
		zap.String("quote_number", itinerary.QuoteNumber),
		zap.String("outcome", string(outcome)))

	return &SaveItineraryResult{
		Itinerary: NewItineraryInfo(itinerary),
		Outcome:   string(outcome),
		Warnings:  warnings,
	}, nil
}

// ConfirmQuote promotes one version to confirmed, demotes its siblings and
// marks the parent query confirmed
func (s *ItineraryService) ConfirmQuote(ctx context.Context, orgID, queryID, itineraryID uuid.UUID, actor Actor) (*ItineraryInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}
	if query.IsTerminal() {
		return nil, shared.NewDomainError("QUERY_CANCELLED", "Cannot confirm a quote on a cancelled query")
	}

	confirmed, err := s.itineraryRepo.ConfirmVersion(ctx, orgID, queryID, itineraryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("QUOTE_NOT_FOUND", "Quote version does not exist")
		}
		s.logger.Error("failed to confirm quote version",
			zap.Error(err),
			zap.String("itinerary_id", itineraryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm quote")
	}

	query.MarkConfirmed(confirmed.TotalCost)
	if err := s.queryRepo.Save(ctx, query); err != nil {
		s.logger.Error("failed to mark query confirmed",
			zap.Error(err),
			zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm quote")
	}

	s.logActivity(ctx, query, "Quote "+confirmed.QuoteNumber+" confirmed", actor)

	s.logger.Info("quote confirmed",
		zap.String("query_id", queryID.String()),
		zap.String("quote_number", confirmed.QuoteNumber))

	info := NewItineraryInfo(confirmed)
	return &info, nil
}

// GetItinerary returns a single quote version
func (s *ItineraryService) GetItinerary(ctx context.Context, orgID, itineraryID uuid.UUID) (*ItineraryInfo, error) {
	itinerary, err := s.itineraryRepo.FindByIDForOrg(ctx, orgID, itineraryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load itinerary", zap.Error(err), zap.String("itinerary_id", itineraryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load quote")
	}
	info := NewItineraryInfo(itinerary)
	return &info, nil
}

// ListVersions returns every retained version for a query, newest first
func (s *ItineraryService) ListVersions(ctx context.Context, orgID, queryID uuid.UUID) ([]ItineraryInfo, error) {
	versions, err := s.itineraryRepo.FindByQueryForOrg(ctx, orgID, queryID)
	if err != nil {
		s.logger.Error("failed to list quote versions", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list quote versions")
	}

	infos := make([]ItineraryInfo, 0, len(versions))
	for i := range versions {
		infos = append(infos, NewItineraryInfo(&versions[i]))
	}
	return infos, nil
}

// GetLatest returns the most recently created version for a query
func (s *ItineraryService) GetLatest(ctx context.Context, orgID, queryID uuid.UUID) (*ItineraryInfo, error) {
	latest, err := s.itineraryRepo.FindLatestForQuery(ctx, orgID, queryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load latest quote", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load quote")
	}
	info := NewItineraryInfo(latest)
	return &info, nil
}

// DeleteItinerary removes a single quote version
func (s *ItineraryService) DeleteItinerary(ctx context.Context, orgID, itineraryID uuid.UUID) error {
	if err := s.itineraryRepo.DeleteForOrg(ctx, orgID, itineraryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete itinerary", zap.Error(err), zap.String("itinerary_id", itineraryID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete quote")
	}
	return nil
}

func (s *ItineraryService) findQuery(ctx context.Context, orgID, queryID uuid.UUID) (*crm.Query, error) {
	query, err := s.queryRepo.FindByIDForOrg(ctx, orgID, queryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load query for quote", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load query")
	}
	return query, nil
}

// resolveHotels snapshots hotel name and location from the catalog onto each
// selection so later catalog edits do not rewrite historical quotes
func (s *ItineraryService) resolveHotels(ctx context.Context, orgID uuid.UUID, inputs []HotelSelectionInput) ([]quote.HotelSelection, error) {
	selections := make([]quote.HotelSelection, 0, len(inputs))
	for _, in := range inputs {
		hotel, err := s.hotelRepo.FindByIDForOrg(ctx, orgID, in.HotelID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("UNKNOWN_HOTEL", "Selected hotel does not exist")
			}
			s.logger.Error("failed to resolve hotel selection", zap.Error(err), zap.String("hotel_id", in.HotelID.String()))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve selections")
		}

		price := in.PricePerNight
		if price.IsZero() {
			price = hotel.PricePerNight
		}
		selections = append(selections, quote.HotelSelection{
			HotelID:         hotel.ID,
			HotelName:       hotel.Name,
			HotelLocation:   hotel.Location,
			Nights:          in.Nights,
			Rooms:           in.Rooms,
			RoomType:        in.RoomType,
			MealPlan:        in.MealPlan,
			AdultsPerRoom:   in.AdultsPerRoom,
			ChildrenPerRoom: in.ChildrenPerRoom,
			PricePerNight:   price,
		})
	}
	return selections, nil
}

func (s *ItineraryService) resolveTransports(ctx context.Context, orgID uuid.UUID, inputs []TransportSelectionInput) ([]quote.TransportSelection, error) {
	selections := make([]quote.TransportSelection, 0, len(inputs))
	for _, in := range inputs {
		transport, err := s.transportRepo.FindByIDForOrg(ctx, orgID, in.TransportID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("UNKNOWN_TRANSPORT", "Selected transport does not exist")
			}
			s.logger.Error("failed to resolve transport selection", zap.Error(err), zap.String("transport_id", in.TransportID.String()))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve selections")
		}

		selections = append(selections, quote.TransportSelection{
			TransportID: transport.ID,
			VehicleType: transport.VehicleType,
			VehicleName: transport.VehicleName,
			Days:        in.Days,
			Quantity:    in.Quantity,
			Amount:      in.Amount,
		})
	}
	return selections, nil
}

// resolveDayPlans generates the day grid from the travel date and overlays
// the requested route and activity snapshots positionally
func (s *ItineraryService) resolveDayPlans(ctx context.Context, orgID uuid.UUID, query *crm.Query, inputs []DayPlanInput) ([]quote.DayPlan, error) {
	// A query without a travel date still gets numbered days, just undated.
	var start time.Time
	if query.TravelDate != nil {
		start = *query.TravelDate
	}

	overlay := make([]quote.DayPlan, len(inputs))
	for i, in := range inputs {
		overlay[i].Title = in.Title

		if in.RouteID != nil {
			route, err := s.routeRepo.FindByIDForOrg(ctx, orgID, *in.RouteID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError("UNKNOWN_ROUTE", "Selected route does not exist")
				}
				s.logger.Error("failed to resolve day route", zap.Error(err), zap.String("route_id", in.RouteID.String()))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve selections")
			}
			overlay[i].RouteID = in.RouteID
			overlay[i].RouteTitle = route.Title
		}

		if len(in.ActivityIDs) > 0 {
			activities, err := s.activityRepo.FindByIDsForOrg(ctx, orgID, in.ActivityIDs)
			if err != nil {
				s.logger.Error("failed to resolve day activities", zap.Error(err))
				return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve selections")
			}
			if len(activities) != len(in.ActivityIDs) {
				return nil, shared.NewDomainError("UNKNOWN_ACTIVITY", "One or more selected activities do not exist")
			}
			snapshots := make([]quote.DayPlanActivity, 0, len(activities))
			for _, a := range activities {
				snapshots = append(snapshots, quote.DayPlanActivity{
					ID:          a.ID,
					Name:        a.Name,
					Description: a.Description,
					Image:       a.Image,
				})
			}
			overlay[i].Activities = snapshots
		}
	}

	return quote.GenerateDayPlans(start, query.Nights, overlay), nil
}

// logActivity appends a quote timeline entry. Failures never fail the save.
func (s *ItineraryService) logActivity(ctx context.Context, query *crm.Query, message string, actor Actor) {
	if s.activityLog == nil {
		return
	}
	entry := crm.NewActivityLog(query.OrganizationID, query.ID, crm.ActivityQuote, message, actor.Name, actor.ID)
	if err := s.activityLog.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append quote activity",
			zap.Error(err),
			zap.String("query_id", query.ID.String()))
	}
}
