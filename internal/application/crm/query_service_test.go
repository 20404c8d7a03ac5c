package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

func testActor() Actor {
	id := uuid.New()
	return Actor{ID: &id, Name: "Asha Nair"}
}

func newTestQuery(t *testing.T, orgID uuid.UUID) *crm.Query {
	t.Helper()
	query, err := crm.NewQuery(orgID, "Rahul Sharma", "+91 98765 43210", 4, 2)
	require.NoError(t, err)
	query.QueryNumber = "QRY-007"
	query.Destination = "Munnar"
	return query
}

func TestQueryService_CreateQuery(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)

	queryRepo.On("Create", ctx, mock.AnythingOfType("*crm.Query")).Return(nil)
	activityRepo.On("Append", ctx, mock.MatchedBy(func(e *crm.ActivityLog) bool {
		return e.Type == crm.ActivityEdit && e.OrganizationID == orgID
	})).Return(nil)

	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	info, err := svc.CreateQuery(ctx, orgID, testActor(), CreateQueryInput{
		CustomerName: "Rahul Sharma",
		Phone:        "+91 98765 43210",
		Destination:  "Munnar",
		Nights:       4,
		Adults:       2,
		Children:     1,
		Source:       "WA",
	})

	require.NoError(t, err)
	assert.Equal(t, "QRY-001", info.QueryNumber)
	assert.Equal(t, "new", info.Status)
	assert.Equal(t, "WA", info.Source)
	queryRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
}

func TestQueryService_CreateQuery_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewQueryService(new(MockQueryRepository), new(MockActivityLogRepository), zap.NewNop())

	_, err := svc.CreateQuery(ctx, uuid.New(), testActor(), CreateQueryInput{
		CustomerName: "",
		Phone:        "12345",
		Nights:       4,
		Adults:       2,
	})
	require.Error(t, err)

	_, err = svc.CreateQuery(ctx, uuid.New(), testActor(), CreateQueryInput{
		CustomerName: "Rahul Sharma",
		Phone:        "12345",
		Nights:       0,
		Adults:       2,
	})
	require.Error(t, err)
}

func TestQueryService_CreateQuery_ActivityFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)

	queryRepo.On("Create", ctx, mock.AnythingOfType("*crm.Query")).Return(nil)
	activityRepo.On("Append", ctx, mock.Anything).Return(errors.New("insert failed"))

	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	info, err := svc.CreateQuery(ctx, orgID, testActor(), CreateQueryInput{
		CustomerName: "Rahul Sharma",
		Phone:        "+91 98765 43210",
		Nights:       4,
		Adults:       2,
	})

	require.NoError(t, err)
	assert.NotNil(t, info)
}

func TestQueryService_ChangeStatus_ValidTransition(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)

	query := newTestQuery(t, orgID)
	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	queryRepo.On("Save", ctx, query).Return(nil)
	activityRepo.On("Append", ctx, mock.MatchedBy(func(e *crm.ActivityLog) bool {
		return e.Type == crm.ActivityStatusChange
	})).Return(nil)

	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	info, err := svc.ChangeStatus(ctx, orgID, query.ID, testActor(), ChangeStatusInput{Status: "ongoing"})

	require.NoError(t, err)
	assert.Equal(t, "ongoing", info.Status)
	activityRepo.AssertExpectations(t)
}

func TestQueryService_ChangeStatus_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)

	query := newTestQuery(t, orgID)
	require.NoError(t, query.TransitionTo(crm.QueryStatusCancelled, false))
	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)

	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	info, err := svc.ChangeStatus(ctx, orgID, query.ID, testActor(), ChangeStatusInput{Status: "ongoing"})

	require.Error(t, err)
	assert.Nil(t, info)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	queryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestQueryService_ChangeStatus_OverrideRequiresOrgAdmin(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)
	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	t.Run("regular user cannot override", func(t *testing.T) {
		query := newTestQuery(t, orgID)
		require.NoError(t, query.TransitionTo(crm.QueryStatusCancelled, false))
		queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil).Once()

		_, err := svc.ChangeStatus(ctx, orgID, query.ID, testActor(), ChangeStatusInput{
			Status:   "ongoing",
			Override: true,
		})
		require.Error(t, err)
	})

	t.Run("org admin can override", func(t *testing.T) {
		query := newTestQuery(t, orgID)
		require.NoError(t, query.TransitionTo(crm.QueryStatusCancelled, false))
		queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil).Once()
		queryRepo.On("Save", ctx, query).Return(nil).Once()
		activityRepo.On("Append", ctx, mock.Anything).Return(nil).Once()

		admin := testActor()
		admin.IsOrgAdmin = true
		info, err := svc.ChangeStatus(ctx, orgID, query.ID, admin, ChangeStatusInput{
			Status:   "ongoing",
			Override: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "ongoing", info.Status)
	})
}

func TestQueryService_AddFollowUp_PromotesNewToOngoing(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)

	query := newTestQuery(t, orgID)
	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	queryRepo.On("Save", ctx, query).Return(nil)
	activityRepo.On("Append", ctx, mock.MatchedBy(func(e *crm.ActivityLog) bool {
		return e.Type == crm.ActivityFollowUp
	})).Return(nil)

	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	scheduled := time.Now().Add(48 * time.Hour)
	info, err := svc.AddFollowUp(ctx, orgID, query.ID, testActor(), AddFollowUpInput{
		Note:          "Shared initial package options",
		ScheduledDate: &scheduled,
	})

	require.NoError(t, err)
	assert.Equal(t, "ongoing", info.Status)
	require.Len(t, info.FollowUps, 1)
	assert.Equal(t, "Asha Nair", info.FollowUps[0].CreatedBy)
	require.NotNil(t, info.NextFollowUp)
}

func TestQueryService_AssignQuery(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)
	activityRepo := new(MockActivityLogRepository)

	query := newTestQuery(t, orgID)
	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	queryRepo.On("Save", ctx, query).Return(nil)
	activityRepo.On("Append", ctx, mock.MatchedBy(func(e *crm.ActivityLog) bool {
		return e.Type == crm.ActivityAssignment
	})).Return(nil)

	svc := NewQueryService(queryRepo, activityRepo, zap.NewNop())

	assignee := uuid.New()
	info, err := svc.AssignQuery(ctx, orgID, query.ID, testActor(), AssignQueryInput{AssignedTo: &assignee})

	require.NoError(t, err)
	require.NotNil(t, info.AssignedTo)
	assert.Equal(t, assignee, *info.AssignedTo)
}

func TestQueryService_GetQuery_NotFound(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)

	missing := uuid.New()
	queryRepo.On("FindByIDForOrg", ctx, orgID, missing).Return(nil, shared.ErrNotFound)

	svc := NewQueryService(queryRepo, new(MockActivityLogRepository), zap.NewNop())

	info, err := svc.GetQuery(ctx, orgID, missing)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, info)
}

func TestQueryService_ListQueries(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)

	query := newTestQuery(t, orgID)
	filter := shared.DefaultFilter()
	queryRepo.On("FindAllForOrg", ctx, orgID, filter).Return([]crm.Query{*query}, nil)
	queryRepo.On("CountForOrg", ctx, orgID, filter).Return(int64(1), nil)

	svc := NewQueryService(queryRepo, new(MockActivityLogRepository), zap.NewNop())

	infos, total, err := svc.ListQueries(ctx, orgID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, infos, 1)
	assert.Equal(t, "QRY-007", infos[0].QueryNumber)
}

func TestQueryService_ListFinanceQueries(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)

	query := newTestQuery(t, orgID)
	query.MarkConfirmed(decimal.NewFromInt(45000))
	filter := shared.DefaultFilter()
	queryRepo.On("FindByStatusForOrg", ctx, orgID,
		[]crm.QueryStatus{crm.QueryStatusConfirmed, crm.QueryStatusCancelled}, filter).
		Return([]crm.Query{*query}, nil)

	svc := NewQueryService(queryRepo, new(MockActivityLogRepository), zap.NewNop())

	infos, err := svc.ListFinanceQueries(ctx, orgID, filter)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "confirmed", infos[0].Status)
	assert.True(t, infos[0].QuoteTotal.Equal(decimal.NewFromInt(45000)))
}

func TestQueryService_DeleteQuery_NotFound(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	queryRepo := new(MockQueryRepository)

	missing := uuid.New()
	queryRepo.On("DeleteForOrg", ctx, orgID, missing).Return(shared.ErrNotFound)

	svc := NewQueryService(queryRepo, new(MockActivityLogRepository), zap.NewNop())

	err := svc.DeleteQuery(ctx, orgID, missing)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
