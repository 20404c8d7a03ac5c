package crm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/shared"
)

// MockQueryRepository is a mock implementation of crm.QueryRepository. Create
// assigns a query number the way the real repository does.
type MockQueryRepository struct {
	mock.Mock
	nextSeq int
}

func (m *MockQueryRepository) Create(ctx context.Context, query *crm.Query) error {
	args := m.Called(ctx, query)
	if args.Error(0) == nil {
		m.nextSeq++
		query.QueryNumber = fmt.Sprintf("QRY-%03d", m.nextSeq)
	}
	return args.Error(0)
}

func (m *MockQueryRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*crm.Query, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Query), args.Error(1)
}

func (m *MockQueryRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]crm.Query, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]crm.Query), args.Error(1)
}

func (m *MockQueryRepository) FindByStatusForOrg(ctx context.Context, orgID uuid.UUID, statuses []crm.QueryStatus, filter shared.Filter) ([]crm.Query, error) {
	args := m.Called(ctx, orgID, statuses, filter)
	return args.Get(0).([]crm.Query), args.Error(1)
}

func (m *MockQueryRepository) Save(ctx context.Context, query *crm.Query) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *MockQueryRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockQueryRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueryRepository) StatsForOrg(ctx context.Context, orgID uuid.UUID) (*crm.QueryStats, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.QueryStats), args.Error(1)
}

// MockActivityLogRepository is a mock implementation of crm.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Append(ctx context.Context, entry *crm.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID, filter shared.Filter) ([]crm.ActivityLog, error) {
	args := m.Called(ctx, orgID, queryID, filter)
	return args.Get(0).([]crm.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) DeleteByQuery(ctx context.Context, queryID uuid.UUID) error {
	args := m.Called(ctx, queryID)
	return args.Error(0)
}

// MockLeadSourceRepository is a mock implementation of crm.LeadSourceRepository
type MockLeadSourceRepository struct {
	mock.Mock
}

func (m *MockLeadSourceRepository) FindByToken(ctx context.Context, token string) (*crm.LeadSource, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.LeadSource), args.Error(1)
}

func (m *MockLeadSourceRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*crm.LeadSource, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.LeadSource), args.Error(1)
}

func (m *MockLeadSourceRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]crm.LeadSource, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]crm.LeadSource), args.Error(1)
}

func (m *MockLeadSourceRepository) Save(ctx context.Context, source *crm.LeadSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockLeadSourceRepository) IncrementLeadsCaptured(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadSourceRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

// MockBookingRepository is a mock implementation of crm.BookingChecklistRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID) (*crm.BookingChecklist, error) {
	args := m.Called(ctx, orgID, queryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.BookingChecklist), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, checklist *crm.BookingChecklist) error {
	args := m.Called(ctx, checklist)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteByQuery(ctx context.Context, queryID uuid.UUID) error {
	args := m.Called(ctx, queryID)
	return args.Error(0)
}
