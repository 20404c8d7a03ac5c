package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

// QueryService manages the customer-inquiry lifecycle
type QueryService struct {
	queryRepo    crm.QueryRepository
	activityRepo crm.ActivityLogRepository
	logger       *zap.Logger
}

// NewQueryService creates a new query service
func NewQueryService(
	queryRepo crm.QueryRepository,
	activityRepo crm.ActivityLogRepository,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		queryRepo:    queryRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// CreateQuery registers a new inquiry and assigns its QRY number
func (s *QueryService) CreateQuery(ctx context.Context, orgID uuid.UUID, actor Actor, input CreateQueryInput) (*QueryInfo, error) {
	query, err := crm.NewQuery(orgID, input.CustomerName, input.Phone, input.Nights, input.Adults)
	if err != nil {
		return nil, err
	}
	query.Email = strings.ToLower(strings.TrimSpace(input.Email))
	query.Destination = strings.TrimSpace(input.Destination)
	query.TravelDate = input.TravelDate
	query.Children = input.Children
	query.PickUp = strings.TrimSpace(input.PickUp)
	query.DropOff = strings.TrimSpace(input.DropOff)
	query.TourPackage = strings.TrimSpace(input.TourPackage)
	query.Notes = input.Notes
	if input.Source != "" {
		query.Source = crm.QuerySource(input.Source)
	}
	if input.AssignedTo != nil {
		query.Assign(input.AssignedTo)
	}
	if actor.ID != nil {
		query.CreatedBy = actor.ID
	}

	if err := s.queryRepo.Create(ctx, query); err != nil {
		s.logger.Error("failed to create query", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create query")
	}

	s.logActivity(ctx, query, crm.ActivityEdit, "Query created", actor)

	s.logger.Info("query created",
		zap.String("query_id", query.ID.String()),
		zap.String("query_number", query.QueryNumber),
		zap.String("organization_id", orgID.String()))

	info := NewQueryInfo(query)
	return &info, nil
}

// GetQuery returns a single query by id
func (s *QueryService) GetQuery(ctx context.Context, orgID, queryID uuid.UUID) (*QueryInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}
	info := NewQueryInfo(query)
	return &info, nil
}

// ListQueries returns the organization's queries, filtered and paginated
func (s *QueryService) ListQueries(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]QueryInfo, int64, error) {
	queries, err := s.queryRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list queries", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list queries")
	}

	total, err := s.queryRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to count queries", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list queries")
	}

	infos := make([]QueryInfo, 0, len(queries))
	for i := range queries {
		infos = append(infos, NewQueryInfo(&queries[i]))
	}
	return infos, total, nil
}

// ListFinanceQueries returns confirmed and cancelled queries for the ledger
func (s *QueryService) ListFinanceQueries(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]QueryInfo, error) {
	queries, err := s.queryRepo.FindByStatusForOrg(ctx, orgID,
		[]crm.QueryStatus{crm.QueryStatusConfirmed, crm.QueryStatusCancelled}, filter)
	if err != nil {
		s.logger.Error("failed to list finance queries", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list queries")
	}

	infos := make([]QueryInfo, 0, len(queries))
	for i := range queries {
		infos = append(infos, NewQueryInfo(&queries[i]))
	}
	return infos, nil
}

// UpdateQuery applies partial changes to a query
func (s *QueryService) UpdateQuery(ctx context.Context, orgID, queryID uuid.UUID, actor Actor, input UpdateQueryInput) (*QueryInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
		}
		query.CustomerName = name
	}
	if input.Email != nil {
		query.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			return nil, shared.NewDomainError("INVALID_PHONE", "Phone is required")
		}
		query.Phone = phone
	}
	if input.Destination != nil {
		query.Destination = strings.TrimSpace(*input.Destination)
	}
	if input.TravelDate != nil {
		query.TravelDate = input.TravelDate
	}
	if input.Nights != nil {
		if *input.Nights < 1 {
			return nil, shared.NewDomainError("INVALID_NIGHTS", "Nights must be at least 1")
		}
		query.Nights = *input.Nights
	}
	if input.Adults != nil {
		if *input.Adults < 1 {
			return nil, shared.NewDomainError("INVALID_ADULTS", "Adults must be at least 1")
		}
		query.Adults = *input.Adults
	}
	if input.Children != nil {
		query.Children = *input.Children
	}
	if input.PickUp != nil {
		query.PickUp = strings.TrimSpace(*input.PickUp)
	}
	if input.DropOff != nil {
		query.DropOff = strings.TrimSpace(*input.DropOff)
	}
	if input.TourPackage != nil {
		query.TourPackage = strings.TrimSpace(*input.TourPackage)
	}
	if input.Notes != nil {
		query.Notes = *input.Notes
	}
	if input.Source != nil {
		query.Source = crm.QuerySource(*input.Source)
	}

	if err := s.queryRepo.Save(ctx, query); err != nil {
		s.logger.Error("failed to update query", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update query")
	}

	s.logActivity(ctx, query, crm.ActivityEdit, "Query details updated", actor)

	info := NewQueryInfo(query)
	return &info, nil
}

// ChangeStatus moves a query through its lifecycle. Override is only honoured
// for org admins.
func (s *QueryService) ChangeStatus(ctx context.Context, orgID, queryID uuid.UUID, actor Actor, input ChangeStatusInput) (*QueryInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}

	previous := query.Status
	override := input.Override && actor.IsOrgAdmin
	if err := query.TransitionTo(crm.QueryStatus(input.Status), override); err != nil {
		return nil, err
	}

	if err := s.queryRepo.Save(ctx, query); err != nil {
		s.logger.Error("failed to change query status", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to change query status")
	}

	if previous != query.Status {
		s.logActivity(ctx, query, crm.ActivityStatusChange,
			fmt.Sprintf("Status changed from %s to %s", previous, query.Status), actor)
	}

	info := NewQueryInfo(query)
	return &info, nil
}

// AssignQuery sets or clears the responsible user
func (s *QueryService) AssignQuery(ctx context.Context, orgID, queryID uuid.UUID, actor Actor, input AssignQueryInput) (*QueryInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}

	query.Assign(input.AssignedTo)

	if err := s.queryRepo.Save(ctx, query); err != nil {
		s.logger.Error("failed to assign query", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to assign query")
	}

	message := "Query unassigned"
	if input.AssignedTo != nil {
		message = "Query assigned"
	}
	s.logActivity(ctx, query, crm.ActivityAssignment, message, actor)

	info := NewQueryInfo(query)
	return &info, nil
}

// AddFollowUp appends a follow-up note. A first follow-up promotes a new
// query to ongoing.
func (s *QueryService) AddFollowUp(ctx context.Context, orgID, queryID uuid.UUID, actor Actor, input AddFollowUpInput) (*QueryInfo, error) {
	query, err := s.findQuery(ctx, orgID, queryID)
	if err != nil {
		return nil, err
	}

	if err := query.AddFollowUp(input.Note, input.ScheduledDate, actor.Name); err != nil {
		return nil, err
	}

	if err := s.queryRepo.Save(ctx, query); err != nil {
		s.logger.Error("failed to add follow-up", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add follow-up")
	}

	s.logActivity(ctx, query, crm.ActivityFollowUp, "Follow-up added: "+strings.TrimSpace(input.Note), actor)

	info := NewQueryInfo(query)
	return &info, nil
}

// DeleteQuery removes a query together with its quotes, timeline and checklist
func (s *QueryService) DeleteQuery(ctx context.Context, orgID, queryID uuid.UUID) error {
	if err := s.queryRepo.DeleteForOrg(ctx, orgID, queryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete query", zap.Error(err), zap.String("query_id", queryID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete query")
	}

	s.logger.Info("query deleted",
		zap.String("query_id", queryID.String()),
		zap.String("organization_id", orgID.String()))
	return nil
}

// ListActivities returns a query's timeline, newest first
func (s *QueryService) ListActivities(ctx context.Context, orgID, queryID uuid.UUID, filter shared.Filter) ([]ActivityInfo, error) {
	if _, err := s.findQuery(ctx, orgID, queryID); err != nil {
		return nil, err
	}

	entries, err := s.activityRepo.FindByQueryForOrg(ctx, orgID, queryID, filter)
	if err != nil {
		s.logger.Error("failed to list activities", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list activities")
	}

	infos := make([]ActivityInfo, 0, len(entries))
	for i := range entries {
		infos = append(infos, NewActivityInfo(&entries[i]))
	}
	return infos, nil
}

func (s *QueryService) findQuery(ctx context.Context, orgID, queryID uuid.UUID) (*crm.Query, error) {
	query, err := s.queryRepo.FindByIDForOrg(ctx, orgID, queryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load query", zap.Error(err), zap.String("query_id", queryID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load query")
	}
	return query, nil
}

// logActivity appends a timeline entry. Failures are logged and never fail
// the parent operation.
func (s *QueryService) logActivity(ctx context.Context, query *crm.Query, activityType crm.ActivityType, message string, actor Actor) {
	if s.activityRepo == nil {
		return
	}
	entry := crm.NewActivityLog(query.OrganizationID, query.ID, activityType, message, actor.Name, actor.ID)
	if err := s.activityRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to append activity log",
			zap.Error(err),
			zap.String("query_id", query.ID.String()))
	}
}
