package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/auth"
)

// AuthService handles login, token refresh and logout
type AuthService struct {
	userRepo   identity.UserRepository
	orgRepo    identity.OrganizationRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	orgRepo identity.OrganizationRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		s.logger.Error("failed to load user for login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process login")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Debug("password mismatch", zap.String("email", user.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}

	if err := s.checkOrganizationAccess(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process login")
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		User:         NewUserInfo(user),
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		}
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid")
	}

	if s.blacklist != nil {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("token blacklist check failed", zap.Error(err))
		} else if blacklisted {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
		}

		if claims.Subject != "" && claims.IssuedAt != nil {
			invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.Subject, claims.IssuedAt.Time)
			if err != nil {
				s.logger.Warn("user token invalidation check failed", zap.Error(err))
			} else if invalidated {
				return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
			}
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Account no longer exists")
		}
		s.logger.Error("failed to load user for refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh session")
	}

	if !user.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	}
	if err := s.checkOrganizationAccess(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("failed to rotate token pair", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh session")
	}

	return &RefreshTokenResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
	}, nil
}

// Logout revokes the presented access token. Revocation is best-effort: a
// missing blacklist or a failed write still returns success, the token simply
// expires on its own schedule.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}

	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		return nil
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("failed to blacklist token on logout", zap.Error(err))
	}
	return nil
}

// checkOrganizationAccess rejects members of organizations that are not yet
// approved. Super admins have no organization and always pass.
func (s *AuthService) checkOrganizationAccess(ctx context.Context, user *identity.User) error {
	if user.IsSuperAdmin || user.OrganizationID == nil {
		return nil
	}

	org, err := s.orgRepo.FindByID(ctx, *user.OrganizationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("ORGANIZATION_NOT_FOUND", "Organization no longer exists")
		}
		s.logger.Error("failed to load organization for login", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to process login")
	}

	if !org.IsApproved() {
		switch org.Status {
		case identity.OrganizationStatusPending:
			return shared.NewDomainError("ORGANIZATION_PENDING", "Organization is awaiting approval")
		case identity.OrganizationStatusSuspended:
			return shared.NewDomainError("ORGANIZATION_SUSPENDED", "Organization has been suspended")
		default:
			return shared.NewDomainError("ORGANIZATION_REJECTED", "Organization registration was rejected")
		}
	}
	return nil
}
