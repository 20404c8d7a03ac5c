package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/infrastructure/auth"
	"github.com/travvip/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	PrincipalKey = "principal"
	ClaimsKey    = "jwt_claims"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional. Lookup failures never reject the request.
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// RequireAuth validates the bearer token and stores the resolved principal
// in the request context.
func RequireAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			rejectUnauthenticated(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			rejectUnauthenticated(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				reject(c, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			rejectUnauthenticated(c, "Invalid token")
			return
		}

		if cfg.Blacklist != nil {
			ctx := c.Request.Context()
			if claims.ID != "" {
				blacklisted, err := cfg.Blacklist.IsBlacklisted(ctx, claims.ID)
				if err != nil {
					// fail open so a cache outage cannot lock everyone out
					if cfg.Logger != nil {
						cfg.Logger.Warn("token blacklist check failed", zap.Error(err))
					}
				} else if blacklisted {
					rejectUnauthenticated(c, "Token has been revoked")
					return
				}
			}
			if claims.IssuedAt != nil {
				invalidated, err := cfg.Blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
				if err != nil {
					if cfg.Logger != nil {
						cfg.Logger.Warn("user token invalidation check failed", zap.Error(err))
					}
				} else if invalidated {
					rejectUnauthenticated(c, "Session has been invalidated")
					return
				}
			}
		}

		principal, err := claims.Principal()
		if err != nil {
			rejectUnauthenticated(c, "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by RequireAuth
func CurrentPrincipal(c *gin.Context) (identity.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return identity.Principal{}, false
	}
	p, ok := v.(identity.Principal)
	return p, ok
}

// RequireSuperAdmin rejects requests from principals that are not the
// global super admin.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			rejectUnauthenticated(c, "Authentication required")
			return
		}
		if !p.IsSuperAdmin {
			rejectForbidden(c, "Super admin access required")
			return
		}
		c.Next()
	}
}

// RequireOrgAdmin rejects requests from principals that cannot administer
// their organization.
func RequireOrgAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			rejectUnauthenticated(c, "Authentication required")
			return
		}
		if !p.CanManageUsers() {
			rejectForbidden(c, "Organization admin access required")
			return
		}
		c.Next()
	}
}

// RequireAnyRole rejects principals holding none of the given roles. Super
// admins and org admins always pass.
func RequireAnyRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			rejectUnauthenticated(c, "Authentication required")
			return
		}
		if p.IsSuperAdmin || p.IsOrgAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if p.HasRole(role) {
				c.Next()
				return
			}
		}
		rejectForbidden(c, "Insufficient role")
	}
}

func rejectUnauthenticated(c *gin.Context, message string) {
	reject(c, dto.ErrCodeUnauthorized, message)
}

func rejectForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrCodeForbidden, message))
}

func reject(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message))
}
