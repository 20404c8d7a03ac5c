package quote

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/catalog"
	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/quote"
	"github.com/travvip/backend/internal/domain/shared"
)

// MockItineraryRepository is a mock implementation of quote.ItineraryRepository.
// SaveVersioned assigns the quote number the way the real repository does.
type MockItineraryRepository struct {
	mock.Mock
}

func (m *MockItineraryRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*quote.Itinerary, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) FindByQueryForOrg(ctx context.Context, orgID, queryID uuid.UUID) ([]quote.Itinerary, error) {
	args := m.Called(ctx, orgID, queryID)
	return args.Get(0).([]quote.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) FindLatestForQuery(ctx context.Context, orgID, queryID uuid.UUID) (*quote.Itinerary, error) {
	args := m.Called(ctx, orgID, queryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) SaveVersioned(ctx context.Context, itinerary *quote.Itinerary, queryNumber string) (quote.SaveOutcome, error) {
	args := m.Called(ctx, itinerary, queryNumber)
	outcome := args.Get(0).(quote.SaveOutcome)
	if args.Error(1) == nil && itinerary.QuoteNumber == "" {
		itinerary.QuoteNumber = quote.FormatQuoteNumber(queryNumber, 1)
	}
	return outcome, args.Error(1)
}

func (m *MockItineraryRepository) ConfirmVersion(ctx context.Context, orgID, queryID, itineraryID uuid.UUID) (*quote.Itinerary, error) {
	args := m.Called(ctx, orgID, queryID, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockItineraryRepository) DeleteByQuery(ctx context.Context, queryID uuid.UUID) error {
	args := m.Called(ctx, queryID)
	return args.Error(0)
}

func (m *MockItineraryRepository) CountByQuery(ctx context.Context, queryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, queryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockQueryRepository is a mock implementation of crm.QueryRepository
type MockQueryRepository struct {
	mock.Mock
}

func (m *MockQueryRepository) Create(ctx context.Context, query *crm.Query) error {
	args := m.Called(ctx, query)
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

// MockHotelRepository is a mock implementation of catalog.HotelRepository
type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Hotel, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Hotel), args.Error(1)
}

func (m *MockHotelRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Hotel, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Save(ctx context.Context, hotel *catalog.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockHotelRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockHotelRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransportRepository is a mock implementation of catalog.TransportRepository
type MockTransportRepository struct {
	mock.Mock
}

func (m *MockTransportRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Transport, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Transport), args.Error(1)
}

func (m *MockTransportRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Transport, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Transport), args.Error(1)
}

func (m *MockTransportRepository) Save(ctx context.Context, transport *catalog.Transport) error {
	args := m.Called(ctx, transport)
	return args.Error(0)
}

func (m *MockTransportRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockTransportRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityRepository is a mock implementation of catalog.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Activity, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByIDsForOrg(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]catalog.Activity, error) {
	args := m.Called(ctx, orgID, ids)
	return args.Get(0).([]catalog.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Activity, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Activity), args.Error(1)
}

func (m *MockActivityRepository) Save(ctx context.Context, activity *catalog.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockActivityRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRouteRepository is a mock implementation of catalog.RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*catalog.Route, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Route), args.Error(1)
}

func (m *MockRouteRepository) FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Route, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]catalog.Route), args.Error(1)
}

func (m *MockRouteRepository) Save(ctx context.Context, route *catalog.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) DeleteForOrg(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockRouteRepository) CountForOrg(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).(int64), args.Error(1)
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

type serviceMocks struct {
	itineraryRepo *MockItineraryRepository
	queryRepo     *MockQueryRepository
	hotelRepo     *MockHotelRepository
	transportRepo *MockTransportRepository
	activityRepo  *MockActivityRepository
	routeRepo     *MockRouteRepository
	activityLog   *MockActivityLogRepository
}

func newServiceWithMocks() (*ItineraryService, *serviceMocks) {
	m := &serviceMocks{
		itineraryRepo: new(MockItineraryRepository),
		queryRepo:     new(MockQueryRepository),
		hotelRepo:     new(MockHotelRepository),
		transportRepo: new(MockTransportRepository),
		activityRepo:  new(MockActivityRepository),
		routeRepo:     new(MockRouteRepository),
		activityLog:   new(MockActivityLogRepository),
	}
	svc := NewItineraryService(
		m.itineraryRepo, m.queryRepo,
		m.hotelRepo, m.transportRepo, m.activityRepo, m.routeRepo,
		m.activityLog, zap.NewNop())
	return svc, m
}

func testActor() Actor {
	id := uuid.New()
	return Actor{ID: &id, Name: "Asha Nair"}
}

func newQuoteQuery(t *testing.T, orgID uuid.UUID, nights int) *crm.Query {
	t.Helper()
	query, err := crm.NewQuery(orgID, "Rahul Sharma", "+91 98765 43210", nights, 2)
	require.NoError(t, err)
	query.QueryNumber = "QRY-007"
	travel := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	query.TravelDate = &travel
	return query
}

func TestItineraryService_SaveQuote_ComputesCostsServerSide(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 4)
	hotel, err := catalog.NewHotel(orgID, "Tea Valley Resort", "Munnar")
	require.NoError(t, err)
	transport, err := catalog.NewTransport(orgID, "SUV", "Innova Crysta")
	require.NoError(t, err)

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.hotelRepo.On("FindByIDForOrg", ctx, orgID, hotel.ID).Return(hotel, nil)
	m.transportRepo.On("FindByIDForOrg", ctx, orgID, transport.ID).Return(transport, nil)
	m.itineraryRepo.On("SaveVersioned", ctx, mock.AnythingOfType("*quote.Itinerary"), "QRY-007").
		Return(quote.SaveCreated, nil)
	m.queryRepo.On("Save", ctx, query).Return(nil)
	m.activityLog.On("Append", ctx, mock.Anything).Return(nil)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{
		Hotels: []HotelSelectionInput{{
			HotelID:       hotel.ID,
			Nights:        4,
			Rooms:         2,
			PricePerNight: decimal.NewFromInt(4500),
		}},
		Transports: []TransportSelectionInput{{
			TransportID: transport.ID,
			Days:        5,
			Quantity:    1,
			Amount:      decimal.NewFromInt(12000),
		}},
		MarkupPercent:  decimal.NewFromInt(10),
		DiscountAmount: decimal.NewFromInt(1000),
	})

	require.NoError(t, err)
	// 4*2*4500 = 36000 hotel, 12000 transport, base 48000, markup 4800
	assert.True(t, result.Itinerary.Costs.HotelCost.Equal(decimal.NewFromInt(36000)))
	assert.True(t, result.Itinerary.Costs.TransportCost.Equal(decimal.NewFromInt(12000)))
	assert.True(t, result.Itinerary.Costs.MarkupAmount.Equal(decimal.NewFromInt(4800)))
	assert.True(t, result.Itinerary.TotalCost.Equal(decimal.NewFromInt(51800)))
	assert.Equal(t, "QRY-007-01", result.Itinerary.QuoteNumber)
	assert.Equal(t, "created", result.Outcome)
	assert.Empty(t, result.Warnings)

	// snapshot taken from the catalog
	require.Len(t, result.Itinerary.HotelSelections, 1)
	assert.Equal(t, "Tea Valley Resort", result.Itinerary.HotelSelections[0].HotelName)
	assert.Equal(t, "Munnar", result.Itinerary.HotelSelections[0].HotelLocation)

	// query promoted and total cached
	assert.Equal(t, crm.QueryStatusOngoing, query.Status)
	assert.True(t, query.QuoteTotal.Equal(decimal.NewFromInt(51800)))
}

func TestItineraryService_SaveQuote_ClampsExcessHotelNights(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 3)
	hotel, err := catalog.NewHotel(orgID, "Tea Valley Resort", "Munnar")
	require.NoError(t, err)

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.hotelRepo.On("FindByIDForOrg", ctx, orgID, hotel.ID).Return(hotel, nil)
	m.itineraryRepo.On("SaveVersioned", ctx, mock.Anything, "QRY-007").Return(quote.SaveCreated, nil)
	m.queryRepo.On("Save", ctx, query).Return(nil)
	m.activityLog.On("Append", ctx, mock.Anything).Return(nil)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{
		Hotels: []HotelSelectionInput{{
			HotelID:       hotel.ID,
			Nights:        5,
			Rooms:         1,
			PricePerNight: decimal.NewFromInt(4000),
		}},
	})

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 3, result.Itinerary.HotelSelections[0].Nights)
	assert.True(t, result.Itinerary.Costs.HotelCost.Equal(decimal.NewFromInt(12000)))
}

func TestItineraryService_SaveQuote_GeneratesDayPlans(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 2)
	route, err := catalog.NewRoute(orgID, "Munnar sightseeing")
	require.NoError(t, err)
	activity, err := catalog.NewActivity(orgID, "Eravikulam National Park")
	require.NoError(t, err)

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.routeRepo.On("FindByIDForOrg", ctx, orgID, route.ID).Return(route, nil)
	m.activityRepo.On("FindByIDsForOrg", ctx, orgID, []uuid.UUID{activity.ID}).
		Return([]catalog.Activity{*activity}, nil)
	m.itineraryRepo.On("SaveVersioned", ctx, mock.Anything, "QRY-007").Return(quote.SaveCreated, nil)
	m.queryRepo.On("Save", ctx, query).Return(nil)
	m.activityLog.On("Append", ctx, mock.Anything).Return(nil)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{
		DayPlans: []DayPlanInput{{
			Title:       "Arrival and tea gardens",
			RouteID:     &route.ID,
			ActivityIDs: []uuid.UUID{activity.ID},
		}},
	})

	require.NoError(t, err)
	// 2 nights means 3 days
	require.Len(t, result.Itinerary.DayPlans, 3)
	assert.Equal(t, "2026-10-12", result.Itinerary.DayPlans[0].Date)
	assert.Equal(t, "Munnar sightseeing", result.Itinerary.DayPlans[0].RouteTitle)
	require.Len(t, result.Itinerary.DayPlans[0].Activities, 1)
	assert.Equal(t, "Eravikulam National Park", result.Itinerary.DayPlans[0].Activities[0].Name)
	assert.Equal(t, "2026-10-14", result.Itinerary.DayPlans[2].Date)
	assert.Empty(t, result.Itinerary.DayPlans[2].Activities)
}

func TestItineraryService_SaveQuote_UndatedQueryLeavesDayDatesEmpty(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 2)
	query.TravelDate = nil

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.itineraryRepo.On("SaveVersioned", ctx, mock.Anything, "QRY-007").Return(quote.SaveCreated, nil)
	m.queryRepo.On("Save", ctx, query).Return(nil)
	m.activityLog.On("Append", ctx, mock.Anything).Return(nil)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{})

	require.NoError(t, err)
	require.Len(t, result.Itinerary.DayPlans, 3)
	for _, plan := range result.Itinerary.DayPlans {
		assert.Empty(t, plan.Date)
	}
	assert.Equal(t, 1, result.Itinerary.DayPlans[0].Day)
	assert.Equal(t, 3, result.Itinerary.DayPlans[2].Day)
}

func TestItineraryService_SaveQuote_UnknownHotel(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 4)
	unknown := uuid.New()

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.hotelRepo.On("FindByIDForOrg", ctx, orgID, unknown).Return(nil, shared.ErrNotFound)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{
		Hotels: []HotelSelectionInput{{HotelID: unknown, Nights: 1, Rooms: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	m.itineraryRepo.AssertNotCalled(t, "SaveVersioned", mock.Anything, mock.Anything, mock.Anything)
}

func TestItineraryService_SaveQuote_CancelledQueryRejected(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 4)
	require.NoError(t, query.TransitionTo(crm.QueryStatusCancelled, false))
	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestItineraryService_SaveQuote_FallsBackToCatalogPrice(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 2)
	hotel, err := catalog.NewHotel(orgID, "Tea Valley Resort", "Munnar")
	require.NoError(t, err)
	hotel.PricePerNight = decimal.NewFromInt(3800)

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.hotelRepo.On("FindByIDForOrg", ctx, orgID, hotel.ID).Return(hotel, nil)
	m.itineraryRepo.On("SaveVersioned", ctx, mock.Anything, "QRY-007").Return(quote.SaveCreated, nil)
	m.queryRepo.On("Save", ctx, query).Return(nil)
	m.activityLog.On("Append", ctx, mock.Anything).Return(nil)

	result, err := svc.SaveQuote(ctx, orgID, query.ID, testActor(), SaveItineraryInput{
		Hotels: []HotelSelectionInput{{HotelID: hotel.ID, Nights: 2, Rooms: 1}},
	})

	require.NoError(t, err)
	assert.True(t, result.Itinerary.HotelSelections[0].PricePerNight.Equal(decimal.NewFromInt(3800)))
}

func TestItineraryService_ConfirmQuote(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 4)
	itinerary := quote.NewItinerary(orgID, query.ID)
	itinerary.QuoteNumber = "QRY-007-02"
	itinerary.TotalCost = decimal.NewFromInt(51800)
	itinerary.Confirm()

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.itineraryRepo.On("ConfirmVersion", ctx, orgID, query.ID, itinerary.ID).Return(itinerary, nil)
	m.queryRepo.On("Save", ctx, query).Return(nil)
	m.activityLog.On("Append", ctx, mock.MatchedBy(func(e *crm.ActivityLog) bool {
		return e.Type == crm.ActivityQuote
	})).Return(nil)

	info, err := svc.ConfirmQuote(ctx, orgID, query.ID, itinerary.ID, testActor())

	require.NoError(t, err)
	assert.Equal(t, "confirmed", info.Status)
	assert.Equal(t, crm.QueryStatusConfirmed, query.Status)
	assert.True(t, query.QuoteTotal.Equal(decimal.NewFromInt(51800)))
}

func TestItineraryService_ConfirmQuote_CancelledQueryRejected(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 4)
	require.NoError(t, query.TransitionTo(crm.QueryStatusCancelled, false))
	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)

	info, err := svc.ConfirmQuote(ctx, orgID, query.ID, uuid.New(), testActor())

	require.Error(t, err)
	assert.Nil(t, info)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "QUERY_CANCELLED", domainErr.Code)
	// the cancelled query must stay cancelled
	assert.Equal(t, crm.QueryStatusCancelled, query.Status)
	m.itineraryRepo.AssertNotCalled(t, "ConfirmVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.queryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestItineraryService_ConfirmQuote_MissingVersion(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	query := newQuoteQuery(t, orgID, 4)
	missing := uuid.New()

	m.queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	m.itineraryRepo.On("ConfirmVersion", ctx, orgID, query.ID, missing).Return(nil, shared.ErrNotFound)

	info, err := svc.ConfirmQuote(ctx, orgID, query.ID, missing, testActor())

	require.Error(t, err)
	assert.Nil(t, info)
	m.queryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestItineraryService_ListVersions(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	queryID := uuid.New()
	v1 := quote.NewItinerary(orgID, queryID)
	v1.QuoteNumber = "QRY-007-01"
	v2 := quote.NewItinerary(orgID, queryID)
	v2.QuoteNumber = "QRY-007-02"

	m.itineraryRepo.On("FindByQueryForOrg", ctx, orgID, queryID).
		Return([]quote.Itinerary{*v2, *v1}, nil)

	infos, err := svc.ListVersions(ctx, orgID, queryID)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "QRY-007-02", infos[0].QuoteNumber)
}

func TestItineraryService_GetLatest_NotFound(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, m := newServiceWithMocks()

	queryID := uuid.New()
	m.itineraryRepo.On("FindLatestForQuery", ctx, orgID, queryID).Return(nil, shared.ErrNotFound)

	info, err := svc.GetLatest(ctx, orgID, queryID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, info)
}
