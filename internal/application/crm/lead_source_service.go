package crm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

// leadSourceChannels maps an integration type to the source channel recorded
// on queries it captures
var leadSourceChannels = map[crm.LeadSourceType]crm.QuerySource{
	crm.LeadSourceWordPress: crm.SourceWebsite,
	crm.LeadSourceHTML:      crm.SourceWebsite,
	crm.LeadSourceGoogle:    crm.SourceWebsite,
	crm.LeadSourceMeta:      crm.SourceFacebook,
	crm.LeadSourceCustom:    crm.SourceWebsite,
}

// LeadSourceService manages webhook integrations and inbound lead capture
type LeadSourceService struct {
	sourceRepo crm.LeadSourceRepository
	queryRepo  crm.QueryRepository
	logger     *zap.Logger
}

// NewLeadSourceService creates a new lead source service
func NewLeadSourceService(
	sourceRepo crm.LeadSourceRepository,
	queryRepo crm.QueryRepository,
	logger *zap.Logger,
) *LeadSourceService {
	return &LeadSourceService{
		sourceRepo: sourceRepo,
		queryRepo:  queryRepo,
		logger:     logger,
	}
}

// CreateLeadSource registers a new integration with a fresh token
func (s *LeadSourceService) CreateLeadSource(ctx context.Context, orgID uuid.UUID, input CreateLeadSourceInput) (*LeadSourceInfo, error) {
	source, err := crm.NewLeadSource(orgID, input.Name, crm.LeadSourceType(input.Type))
	if err != nil {
		return nil, err
	}
	source.Website = strings.TrimSpace(input.Website)

	if err := s.sourceRepo.Save(ctx, source); err != nil {
		s.logger.Error("failed to save lead source", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create lead source")
	}

	s.logger.Info("lead source created",
		zap.String("lead_source_id", source.ID.String()),
		zap.String("organization_id", orgID.String()))

	info := NewLeadSourceInfo(source)
	return &info, nil
}

// GetLeadSource returns a single integration
func (s *LeadSourceService) GetLeadSource(ctx context.Context, orgID, sourceID uuid.UUID) (*LeadSourceInfo, error) {
	source, err := s.findSource(ctx, orgID, sourceID)
	if err != nil {
		return nil, err
	}
	info := NewLeadSourceInfo(source)
	return &info, nil
}

// ListLeadSources returns the organization's integrations
func (s *LeadSourceService) ListLeadSources(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]LeadSourceInfo, error) {
	sources, err := s.sourceRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list lead sources", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list lead sources")
	}

	infos := make([]LeadSourceInfo, 0, len(sources))
	for i := range sources {
		infos = append(infos, NewLeadSourceInfo(&sources[i]))
	}
	return infos, nil
}

// UpdateLeadSource applies partial changes to an integration
func (s *LeadSourceService) UpdateLeadSource(ctx context.Context, orgID, sourceID uuid.UUID, input UpdateLeadSourceInput) (*LeadSourceInfo, error) {
	source, err := s.findSource(ctx, orgID, sourceID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Lead source name cannot be empty")
		}
		source.Name = name
	}
	if input.Website != nil {
		source.Website = strings.TrimSpace(*input.Website)
	}
	if input.IsActive != nil {
		if *input.IsActive {
			source.Activate()
		} else {
			source.Deactivate()
		}
	}

	if err := s.sourceRepo.Save(ctx, source); err != nil {
		s.logger.Error("failed to update lead source", zap.Error(err), zap.String("lead_source_id", sourceID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update lead source")
	}

	info := NewLeadSourceInfo(source)
	return &info, nil
}

// RegenerateToken replaces the webhook token, invalidating the previous one
func (s *LeadSourceService) RegenerateToken(ctx context.Context, orgID, sourceID uuid.UUID) (*LeadSourceInfo, error) {
	source, err := s.findSource(ctx, orgID, sourceID)
	if err != nil {
		return nil, err
	}

	if err := source.RegenerateToken(); err != nil {
		return nil, err
	}

	if err := s.sourceRepo.Save(ctx, source); err != nil {
		s.logger.Error("failed to save regenerated token", zap.Error(err), zap.String("lead_source_id", sourceID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to regenerate token")
	}

	s.logger.Info("lead source token regenerated", zap.String("lead_source_id", sourceID.String()))

	info := NewLeadSourceInfo(source)
	return &info, nil
}

// DeleteLeadSource removes an integration. Queries already captured through
// it are kept.
func (s *LeadSourceService) DeleteLeadSource(ctx context.Context, orgID, sourceID uuid.UUID) error {
	if err := s.sourceRepo.DeleteForOrg(ctx, orgID, sourceID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete lead source", zap.Error(err), zap.String("lead_source_id", sourceID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete lead source")
	}
	return nil
}

// CaptureLead accepts an inbound webhook submission. The token resolves the
// integration and the organization the new query lands in.
func (s *LeadSourceService) CaptureLead(ctx context.Context, token string, input WebhookLeadInput) (*WebhookLeadResult, error) {
	source, err := s.sourceRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Unknown or inactive lead source token")
		}
		s.logger.Error("failed to resolve lead source token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to accept lead")
	}

	nights := input.Nights
	if nights < 1 {
		nights = 1
	}
	adults := input.Adults
	if adults < 1 {
		adults = 1
	}

	query, err := crm.NewQuery(source.OrganizationID, input.CustomerName, input.Phone, nights, adults)
	if err != nil {
		return nil, err
	}
	query.Email = strings.ToLower(strings.TrimSpace(input.Email))
	query.Destination = strings.TrimSpace(input.Destination)
	query.TravelDate = input.TravelDate
	query.Children = input.Children
	query.Notes = input.Message
	if channel, ok := leadSourceChannels[source.Type]; ok {
		query.Source = channel
	}

	if err := s.queryRepo.Create(ctx, query); err != nil {
		s.logger.Error("failed to create query from webhook",
			zap.Error(err),
			zap.String("lead_source_id", source.ID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to accept lead")
	}

	if err := s.sourceRepo.IncrementLeadsCaptured(ctx, source.ID); err != nil {
		s.logger.Warn("failed to increment captured-lead counter",
			zap.Error(err),
			zap.String("lead_source_id", source.ID.String()))
	}

	s.logger.Info("lead captured",
		zap.String("query_id", query.ID.String()),
		zap.String("query_number", query.QueryNumber),
		zap.String("lead_source_id", source.ID.String()))

	return &WebhookLeadResult{
		QueryID:     query.ID,
		QueryNumber: query.QueryNumber,
	}, nil
}

func (s *LeadSourceService) findSource(ctx context.Context, orgID, sourceID uuid.UUID) (*crm.LeadSource, error) {
	source, err := s.sourceRepo.FindByIDForOrg(ctx, orgID, sourceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load lead source", zap.Error(err), zap.String("lead_source_id", sourceID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load lead source")
	}
	return source, nil
}
