package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/infrastructure/config"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "travvip-test",
	})
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	orgID := uuid.New()
	user, err := identity.NewUser(&orgID, "amit@example.com", "Amit Verma", "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, user.SetRoles([]identity.Role{identity.RoleSales, identity.RoleManager}))
	return user
}

func TestGenerateTokenPair(t *testing.T) {
	svc := testService()
	user := testUser(t)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := testService()
	user := testUser(t)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	t.Run("valid access token round trips claims", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, user.OrganizationID.String(), claims.OrgID)
		assert.Equal(t, "Amit Verma", claims.Name)
		assert.ElementsMatch(t, []string{"sales", "manager"}, claims.Roles)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "another-secret-at-least-32-chars!!!!",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "travvip-test",
		})
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		short := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-at-least-32-characters!!",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "travvip-test",
		})
		expired, err := short.GenerateTokenPair(user)
		require.NoError(t, err)
		_, err = short.ValidateAccessToken(expired.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	svc := testService()
	user := testUser(t)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Empty(t, claims.Roles, "refresh token carries minimal claims")
}

func TestClaimsPrincipal(t *testing.T) {
	svc := testService()

	t.Run("org member", func(t *testing.T) {
		user := testUser(t)
		pair, err := svc.GenerateTokenPair(user)
		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		p, err := claims.Principal()
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		require.NotNil(t, p.OrganizationID)
		assert.Equal(t, *user.OrganizationID, *p.OrganizationID)
		assert.True(t, p.HasRole(identity.RoleSales))
		assert.False(t, p.IsSuperAdmin)
	})

	t.Run("super admin without org", func(t *testing.T) {
		super, err := identity.NewUser(nil, "root@travvip.example", "Root", "s3cret-pass")
		require.NoError(t, err)
		super.IsSuperAdmin = true

		pair, err := svc.GenerateTokenPair(super)
		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		p, err := claims.Principal()
		require.NoError(t, err)
		assert.True(t, p.IsSuperAdmin)
		assert.Nil(t, p.OrganizationID)
		assert.Equal(t, uuid.Nil, p.OrgID())
	})

	t.Run("missing org for non super admin rejected", func(t *testing.T) {
		claims := &Claims{UserID: uuid.New().String()}
		_, err := claims.Principal()
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestClaimsHelpers(t *testing.T) {
	svc := testService()
	user := testUser(t)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	id, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	assert.False(t, claims.GetExpiresAtTime().IsZero())
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}
