package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

// BookingService tracks per-query fulfilment checklists
type BookingService struct {
	bookingRepo  crm.BookingChecklistRepository
	queryRepo    crm.QueryRepository
	activityRepo crm.ActivityLogRepository
	logger       *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo crm.BookingChecklistRepository,
	queryRepo crm.QueryRepository,
	activityRepo crm.ActivityLogRepository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		queryRepo:    queryRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// GetChecklist returns a query's fulfilment checklist, creating an empty one
// on first access
func (s *BookingService) GetChecklist(ctx context.Context, orgID, queryID uuid.UUID) (*BookingInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}

	checklist, err := s.bookingRepo.FindByQueryForOrg(ctx, orgID, queryID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("failed to load booking checklist", zap.Error(err), zap.String("query_id", queryID.String()))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load booking checklist")
		}
		checklist = crm.NewBookingChecklist(query.OrganizationID, queryID)
	}

	info := NewBookingInfo(checklist)
	return &info, nil
}

// SetItem marks a checklist line booked or unbooked
func (s *BookingService) SetItem(ctx context.Context, orgID, queryID uuid.UUID, actor Actor, input SetBookingItemInput) (*BookingInfo, error) {
	kind := crm.BookingItemKind(input.Kind)
	if kind != crm.BookingItemHotel && kind != crm.BookingItemTransport {
		return nil, shared.NewDomainError("INVALID_ITEM_KIND", "Unknown booking item kind: "+input.Kind)
	}

	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}

	checklist, err := s.bookingRepo.FindByQueryForOrg(ctx, orgID, queryID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("failed to load booking checklist", zap.Error(err), zap.String("query_id", queryID.String()))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update booking checklist")
		}
		checklist = crm.NewBookingChecklist(query.OrganizationID, queryID)
	}

	checklist.SetItem(kind, input.RefID, input.Label, input.Booked, actor.Name)

	if err := s.bookingRepo.Save(ctx, checklist); err != nil {
		s.logger.Error("failed to save booking checklist", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update booking checklist")
	}

	s.logBookingActivity(ctx, query, input, actor)

	info := NewBookingInfo(checklist)
	return &info, nil
}

func (s *BookingService) findQuery(ctx context.Context, orgID, queryID uuid.UUID) (*crm.Query, error) {
	query, err := s.queryRepo.FindByIDForOrg(ctx, orgID, queryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load query for booking", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load query")
	}
	return query, nil
}

func (s *BookingService) logBookingActivity(ctx context.Context, query *crm.Query, input SetBookingItemInput, actor Actor) {
	if s.activityRepo == nil {
		return
	}
	state := "unbooked"
	if input.Booked {
		state = "booked"
	}
	label := input.Label
	if label == "" {
		label = input.Kind
	}
	entry := crm.NewActivityLog(query.OrganizationID, query.ID, crm.ActivityBooking,
		fmt.Sprintf("%s marked %s", label, state), actor.Name, actor.ID)
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append booking activity",
			zap.Error(err),
			zap.String("query_id", query.ID.String()))
	}
}
