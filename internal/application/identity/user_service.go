package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/domain/shared"
)

// UserService manages team members within an organization
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user management service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser adds a team member to the organization
func (s *UserService) CreateUser(ctx context.Context, orgID uuid.UUID, input CreateUserInput) (*UserInfo, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	if existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	user, err := identity.NewUser(&orgID, input.Email, input.Name, input.Password)
	if err != nil {
		return nil, err
	}
	user.Phone = strings.TrimSpace(input.Phone)
	user.Designation = strings.TrimSpace(input.Designation)

	if len(input.Roles) > 0 {
		if err := user.SetRoles(toRoles(input.Roles)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to save user", zap.Error(err), zap.String("email", user.Email))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", orgID.String()))

	info := NewUserInfo(user)
	return &info, nil
}

// GetSelf returns the caller's own account. Unlike GetUser this skips the
// tenant check, so it also serves the super admin who has no organization.
func (s *UserService) GetSelf(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user")
	}
	info := NewUserInfo(user)
	return &info, nil
}

// GetUser returns a single team member of the organization
func (s *UserService) GetUser(ctx context.Context, orgID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.findOrgUser(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}
	info := NewUserInfo(user)
	return &info, nil
}

// ListUsers returns the organization's team members
func (s *UserService) ListUsers(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]UserInfo, error) {
	users, err := s.userRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err), zap.String("organization_id", orgID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, NewUserInfo(&users[i]))
	}
	return infos, nil
}

// UpdateUser applies partial changes to a team member
func (s *UserService) UpdateUser(ctx context.Context, orgID, userID uuid.UUID, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.findOrgUser(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Designation != nil {
		user.Designation = strings.TrimSpace(*input.Designation)
	}
	if len(input.Roles) > 0 {
		if err := user.SetRoles(toRoles(input.Roles)); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		if user.IsOrgAdmin && !*input.IsActive {
			return nil, shared.NewDomainError("FORBIDDEN", "The organization admin cannot be deactivated")
		}
		if *input.IsActive {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// DeleteUser removes a team member. The organization admin cannot be removed.
func (s *UserService) DeleteUser(ctx context.Context, orgID, userID uuid.UUID) error {
	user, err := s.findOrgUser(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if user.IsOrgAdmin {
		return shared.NewDomainError("FORBIDDEN", "The organization admin cannot be deleted")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete user", zap.Error(err), zap.String("user_id", userID.String()))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	s.logger.Info("user deleted",
		zap.String("user_id", userID.String()),
		zap.String("organization_id", orgID.String()))
	return nil
}

// findOrgUser loads a user and verifies it belongs to the given organization.
// Users from other tenants are reported as not found.
func (s *UserService) findOrgUser(ctx context.Context, orgID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user")
	}
	if user.OrganizationID == nil || *user.OrganizationID != orgID {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func toRoles(names []string) []identity.Role {
	roles := make([]identity.Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, identity.Role(n))
	}
	return roles
}
