package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/mailer"
)

// OrganizationService handles tenant registration, the approval workflow and
// organization profile management
type OrganizationService struct {
	orgRepo  identity.OrganizationRepository
	userRepo identity.UserRepository
	mail     mailer.Mailer
	logger   *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo identity.OrganizationRepository,
	userRepo identity.UserRepository,
	mail mailer.Mailer,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
		mail:     mail,
		logger:   logger,
	}
}

// Register creates a pending organization together with its admin user. The
// admin account starts inactive and is switched on when the organization is
// approved.
func (s *OrganizationService) Register(ctx context.Context, input RegisterOrganizationInput) (*RegisterOrganizationResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.AdminEmail)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process registration")
	}
	if existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	org, err := identity.NewOrganization(input.OrganizationName, input.AdminName, input.AdminEmail)
	if err != nil {
		return nil, err
	}
	org.Phone = strings.TrimSpace(input.Phone)

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("failed to save organization", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process registration")
	}

	admin, err := identity.NewUser(&org.ID, input.AdminEmail, input.AdminName, input.AdminPassword)
	if err != nil {
		s.compensateRegistration(ctx, org.ID)
		return nil, err
	}
	admin.IsOrgAdmin = true
	admin.IsActive = false
	if err := admin.SetRoles([]identity.Role{identity.RoleAdmin}); err != nil {
		s.compensateRegistration(ctx, org.ID)
		return nil, err
	}

	if err := s.userRepo.Save(ctx, admin); err != nil {
		s.logger.Error("failed to save organization admin", zap.Error(err), zap.String("organization_id", org.ID.String()))
		s.compensateRegistration(ctx, org.ID)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process registration")
	}

	org.AdminUserID = &admin.ID
	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Warn("failed to link admin user to organization", zap.Error(err), zap.String("organization_id", org.ID.String()))
	}

	s.logger.Info("organization registered",
		zap.String("organization_id", org.ID.String()),
		zap.String("admin_email", admin.Email))

	return &RegisterOrganizationResult{
		OrganizationID: org.ID,
		Status:         string(org.Status),
	}, nil
}

// GetOrganization returns a single organization
func (s *OrganizationService) GetOrganization(ctx context.Context, orgID uuid.UUID) (*OrganizationInfo, error) {
	org, err := s.findOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	info := NewOrganizationInfo(org)
	return &info, nil
}

// ListOrganizations returns organizations for the super admin console
func (s *OrganizationService) ListOrganizations(ctx context.Context, filter shared.Filter) ([]OrganizationInfo, error) {
	orgs, err := s.orgRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list organizations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list organizations")
	}

	infos := make([]OrganizationInfo, 0, len(orgs))
	for i := range orgs {
		infos = append(infos, NewOrganizationInfo(&orgs[i]))
	}
	return infos, nil
}

// UpdateOrganization applies partial changes to the organization profile
func (s *OrganizationService) UpdateOrganization(ctx context.Context, orgID uuid.UUID, input UpdateOrganizationInput) (*OrganizationInfo, error) {
	org, err := s.findOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
		}
		org.Name = name
	}
	if input.Email != nil {
		org.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		org.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Website != nil {
		org.Website = strings.TrimSpace(*input.Website)
	}
	if input.Address != nil {
		org.Address = *input.Address
	}
	if input.AboutUs != nil {
		org.AboutUs = *input.AboutUs
	}
	if input.GST != nil {
		org.GST = strings.TrimSpace(*input.GST)
	}
	if input.PAN != nil {
		org.PAN = strings.TrimSpace(*input.PAN)
	}
	if input.TermsAndConditions != nil {
		org.TermsAndConditions = *input.TermsAndConditions
	}
	if input.ConsultantName != nil {
		org.ConsultantName = strings.TrimSpace(*input.ConsultantName)
	}
	if input.Branding != nil {
		org.Branding = *input.Branding
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("failed to update organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update organization")
	}

	info := NewOrganizationInfo(org)
	return &info, nil
}

// Approve marks the organization approved and re-activates its users. The
// notification email is best-effort.
func (s *OrganizationService) Approve(ctx context.Context, orgID uuid.UUID) (*OrganizationInfo, error) {
	org, err := s.findOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := org.Approve(); err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("failed to approve organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve organization")
	}

	if err := s.userRepo.SetActiveForOrg(ctx, orgID, true); err != nil {
		s.logger.Warn("failed to activate organization users", zap.Error(err), zap.String("organization_id", orgID.String()))
	}

	s.sendApprovalMail(ctx, org)

	s.logger.Info("organization approved", zap.String("organization_id", orgID.String()))

	info := NewOrganizationInfo(org)
	return &info, nil
}

// Reject marks a pending organization as rejected
func (s *OrganizationService) Reject(ctx context.Context, orgID uuid.UUID) (*OrganizationInfo, error) {
	org, err := s.findOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := org.Reject(); err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("failed to reject organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reject organization")
	}

	s.logger.Info("organization rejected", zap.String("organization_id", orgID.String()))

	info := NewOrganizationInfo(org)
	return &info, nil
}

// Suspend suspends an approved organization and deactivates its users
func (s *OrganizationService) Suspend(ctx context.Context, orgID uuid.UUID) (*OrganizationInfo, error) {
	org, err := s.findOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := org.Suspend(); err != nil {
		return nil, err
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("failed to suspend organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to suspend organization")
	}

	if err := s.userRepo.SetActiveForOrg(ctx, orgID, false); err != nil {
		s.logger.Warn("failed to deactivate organization users", zap.Error(err), zap.String("organization_id", orgID.String()))
	}

	s.logger.Info("organization suspended", zap.String("organization_id", orgID.String()))

	info := NewOrganizationInfo(org)
	return &info, nil
}

// DeleteOrganization removes the organization and all of its users
func (s *OrganizationService) DeleteOrganization(ctx context.Context, orgID uuid.UUID) error {
	if err := s.orgRepo.DeleteCascade(ctx, orgID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete organization")
	}

	s.logger.Info("organization deleted", zap.String("organization_id", orgID.String()))
	return nil
}

func (s *OrganizationService) findOrganization(ctx context.Context, orgID uuid.UUID) (*identity.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load organization", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load organization")
	}
	return org, nil
}

func (s *OrganizationService) sendApprovalMail(ctx context.Context, org *identity.Organization) {
	if s.mail == nil || org.AdminEmail == "" {
		return
	}
	subject := "Your account has been approved"
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your organization <strong>%s</strong> has been approved. You can now sign in and start managing your queries.</p>",
		org.AdminName, org.Name)
	if err := s.mail.Send(ctx, org.AdminEmail, subject, html); err != nil {
		s.logger.Warn("failed to send approval email",
			zap.Error(err),
			zap.String("organization_id", org.ID.String()))
	}
}

// compensateRegistration removes a half-created organization when the admin
// user could not be persisted
func (s *OrganizationService) compensateRegistration(ctx context.Context, orgID uuid.UUID) {
	if err := s.orgRepo.DeleteCascade(ctx, orgID); err != nil {
		s.logger.Warn("failed to roll back organization registration",
			zap.Error(err),
			zap.String("organization_id", orgID.String()))
	}
}
