package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/domain/shared"
)

func TestUserService_CreateUser_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgID := createApprovedOrg(t).ID

	userRepo.On("FindByEmail", ctx, "ravi@wandertrails.example").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
		return u.OrganizationID != nil && *u.OrganizationID == orgID && u.HasRole(identity.RoleOperations)
	})).Return(nil)

	svc := NewUserService(userRepo, zap.NewNop())

	info, err := svc.CreateUser(ctx, orgID, CreateUserInput{
		Email:    "ravi@wandertrails.example",
		Name:     "Ravi Menon",
		Password: "Password123",
		Roles:    []string{"operations"},
	})

	require.NoError(t, err)
	assert.Equal(t, "ravi@wandertrails.example", info.Email)
	assert.Equal(t, []string{"operations"}, info.Roles)
	userRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgID := createApprovedOrg(t).ID

	existing := createOrgUser(t, orgID)
	userRepo.On("FindByEmail", ctx, "asha@wandertrails.example").Return(existing, nil)

	svc := NewUserService(userRepo, zap.NewNop())

	info, err := svc.CreateUser(ctx, orgID, CreateUserInput{
		Email:    "asha@wandertrails.example",
		Name:     "Someone Else",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, info)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}

func TestUserService_CreateUser_InvalidRole(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgID := createApprovedOrg(t).ID

	userRepo.On("FindByEmail", ctx, "ravi@wandertrails.example").Return(nil, shared.ErrNotFound)

	svc := NewUserService(userRepo, zap.NewNop())

	info, err := svc.CreateUser(ctx, orgID, CreateUserInput{
		Email:    "ravi@wandertrails.example",
		Name:     "Ravi Menon",
		Password: "Password123",
		Roles:    []string{"astronaut"},
	})

	require.Error(t, err)
	assert.Nil(t, info)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_GetUser_OtherTenantHidden(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	orgID := createApprovedOrg(t).ID
	otherOrgID := createApprovedOrg(t).ID
	user := createOrgUser(t, otherOrgID)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	svc := NewUserService(userRepo, zap.NewNop())

	info, err := svc.GetUser(ctx, orgID, user.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, info)
}

func TestUserService_UpdateUser_DeactivateOrgAdminRejected(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	orgID := createApprovedOrg(t).ID
	admin := createOrgUser(t, orgID)
	admin.IsOrgAdmin = true

	userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)

	svc := NewUserService(userRepo, zap.NewNop())

	inactive := false
	info, err := svc.UpdateUser(ctx, orgID, admin.ID, UpdateUserInput{IsActive: &inactive})

	require.Error(t, err)
	assert.Nil(t, info)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestUserService_UpdateUser_PartialFields(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	orgID := createApprovedOrg(t).ID
	user := createOrgUser(t, orgID)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := NewUserService(userRepo, zap.NewNop())

	phone := "+91 98470 12345"
	info, err := svc.UpdateUser(ctx, orgID, user.ID, UpdateUserInput{
		Phone: &phone,
		Roles: []string{"sales", "operations"},
	})

	require.NoError(t, err)
	assert.Equal(t, phone, info.Phone)
	assert.ElementsMatch(t, []string{"sales", "operations"}, info.Roles)
	assert.Equal(t, "Asha Nair", info.Name)
}

func TestUserService_DeleteUser_OrgAdminProtected(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	orgID := createApprovedOrg(t).ID
	admin := createOrgUser(t, orgID)
	admin.IsOrgAdmin = true

	userRepo.On("FindByID", ctx, admin.ID).Return(admin, nil)

	svc := NewUserService(userRepo, zap.NewNop())

	err := svc.DeleteUser(ctx, orgID, admin.ID)
	require.Error(t, err)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	orgID := createApprovedOrg(t).ID
	userA := createOrgUser(t, orgID)

	filter := shared.DefaultFilter()
	userRepo.On("FindAllForOrg", ctx, orgID, filter).Return([]identity.User{*userA}, nil)

	svc := NewUserService(userRepo, zap.NewNop())

	infos, err := svc.ListUsers(ctx, orgID, filter)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, userA.Email, infos[0].Email)
}
