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

type recordingMailer struct {
	to      []string
	subject []string
	err     error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, _ string) error {
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	return m.err
}

func TestOrganizationService_Register_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	userRepo.On("FindByEmail", ctx, "asha@wandertrails.example").Return(nil, shared.ErrNotFound)
	orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
	userRepo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
		return u.IsOrgAdmin && !u.IsActive && u.HasRole(identity.RoleAdmin)
	})).Return(nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	result, err := svc.Register(ctx, RegisterOrganizationInput{
		OrganizationName: "Wander Trails",
		AdminName:        "Asha Nair",
		AdminEmail:       "asha@wandertrails.example",
		AdminPassword:    "Password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	userRepo.AssertExpectations(t)
	orgRepo.AssertExpectations(t)
}

func TestOrganizationService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org := createApprovedOrg(t)
	existing := createOrgUser(t, org.ID)
	userRepo.On("FindByEmail", ctx, "asha@wandertrails.example").Return(existing, nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	result, err := svc.Register(ctx, RegisterOrganizationInput{
		OrganizationName: "Wander Trails",
		AdminName:        "Asha Nair",
		AdminEmail:       "asha@wandertrails.example",
		AdminPassword:    "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	orgRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrganizationService_Register_RollsBackOnAdminSaveFailure(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	userRepo.On("FindByEmail", ctx, "asha@wandertrails.example").Return(nil, shared.ErrNotFound)
	orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(errors.New("unique violation"))
	orgRepo.On("DeleteCascade", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	result, err := svc.Register(ctx, RegisterOrganizationInput{
		OrganizationName: "Wander Trails",
		AdminName:        "Asha Nair",
		AdminEmail:       "asha@wandertrails.example",
		AdminPassword:    "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	orgRepo.AssertCalled(t, "DeleteCascade", ctx, mock.AnythingOfType("uuid.UUID"))
}

func TestOrganizationService_Approve_ActivatesUsersAndSendsMail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org, err := identity.NewOrganization("Wander Trails", "Asha Nair", "asha@wandertrails.example")
	require.NoError(t, err)

	orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
	orgRepo.On("Save", ctx, org).Return(nil)
	userRepo.On("SetActiveForOrg", ctx, org.ID, true).Return(nil)

	mail := &recordingMailer{}
	svc := NewOrganizationService(orgRepo, userRepo, mail, zap.NewNop())

	result, err := svc.Approve(ctx, org.ID)

	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
	require.Len(t, mail.to, 1)
	assert.Equal(t, "asha@wandertrails.example", mail.to[0])
	userRepo.AssertExpectations(t)
}

func TestOrganizationService_Approve_AlreadyApproved(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org := createApprovedOrg(t)
	orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	result, err := svc.Approve(ctx, org.ID)

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestOrganizationService_Approve_MailFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org, err := identity.NewOrganization("Wander Trails", "Asha Nair", "asha@wandertrails.example")
	require.NoError(t, err)

	orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
	orgRepo.On("Save", ctx, org).Return(nil)
	userRepo.On("SetActiveForOrg", ctx, org.ID, true).Return(nil)

	mail := &recordingMailer{err: errors.New("mail provider down")}
	svc := NewOrganizationService(orgRepo, userRepo, mail, zap.NewNop())

	result, err := svc.Approve(ctx, org.ID)

	require.NoError(t, err)
	assert.Equal(t, "approved", result.Status)
}

func TestOrganizationService_Suspend_DeactivatesUsers(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org := createApprovedOrg(t)
	orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
	orgRepo.On("Save", ctx, org).Return(nil)
	userRepo.On("SetActiveForOrg", ctx, org.ID, false).Return(nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	result, err := svc.Suspend(ctx, org.ID)

	require.NoError(t, err)
	assert.Equal(t, "suspended", result.Status)
	userRepo.AssertExpectations(t)
}

func TestOrganizationService_Reject_OnlyPending(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org := createApprovedOrg(t)
	orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	result, err := svc.Reject(ctx, org.ID)

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestOrganizationService_UpdateOrganization_PartialFields(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org := createApprovedOrg(t)
	orgRepo.On("FindByID", ctx, org.ID).Return(org, nil)
	orgRepo.On("Save", ctx, org).Return(nil)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	website := "https://wandertrails.example"
	branding := identity.Branding{PrimaryColor: "#0f766e", PDFTabColor: "#0f766e", PDFFontColor: "#ffffff"}
	result, err := svc.UpdateOrganization(ctx, org.ID, UpdateOrganizationInput{
		Website:  &website,
		Branding: &branding,
	})

	require.NoError(t, err)
	assert.Equal(t, website, result.Website)
	assert.Equal(t, "#0f766e", result.Branding.PrimaryColor)
	assert.Equal(t, "Wander Trails", result.Name)
}

func TestOrganizationService_DeleteOrganization_NotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	orgRepo := new(MockOrganizationRepository)

	org := createApprovedOrg(t)
	orgRepo.On("DeleteCascade", ctx, org.ID).Return(shared.ErrNotFound)

	svc := NewOrganizationService(orgRepo, userRepo, &recordingMailer{}, zap.NewNop())

	err := svc.DeleteOrganization(ctx, org.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
