package document

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/travvip/backend/internal/domain/crm"
	"github.com/travvip/backend/internal/domain/identity"
	"github.com/travvip/backend/internal/domain/quote"
	"github.com/travvip/backend/internal/domain/shared"
	"github.com/travvip/backend/internal/infrastructure/pdf"
)

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

// MockItineraryRepository is a mock implementation of quote.ItineraryRepository
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
	return args.Get(0).(quote.SaveOutcome), args.Error(1)
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

// MockOrganizationRepository is a mock implementation of identity.OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Organization, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeRenderer records the request and returns canned bytes
type fakeRenderer struct {
	lastRequest *pdf.RenderRequest
	err         error
}

func (f *fakeRenderer) Render(_ context.Context, req *pdf.RenderRequest) (*pdf.RenderResult, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &pdf.RenderResult{PDFData: []byte("%PDF-1.4 fake"), RenderDuration: 120 * time.Millisecond}, nil
}

func (f *fakeRenderer) Close() error { return nil }

func newTestService() (*DocumentService, *MockQueryRepository, *MockItineraryRepository, *MockOrganizationRepository, *fakeRenderer) {
	queryRepo := new(MockQueryRepository)
	itineraryRepo := new(MockItineraryRepository)
	orgRepo := new(MockOrganizationRepository)
	renderer := &fakeRenderer{}
	svc := NewDocumentService(queryRepo, itineraryRepo, orgRepo, renderer, zap.NewNop())
	return svc, queryRepo, itineraryRepo, orgRepo, renderer
}

func newTestOrg(t *testing.T) *identity.Organization {
	t.Helper()
	org, err := identity.NewOrganization("Wander Trails", "Asha Nair", "asha@wandertrails.example")
	require.NoError(t, err)
	org.Phone = "+91 80 4000 1234"
	org.Email = "hello@wandertrails.example"
	org.Branding.PrimaryColor = "#0f766e"
	return org
}

func newTestQuery(t *testing.T, orgID uuid.UUID) *crm.Query {
	t.Helper()
	query, err := crm.NewQuery(orgID, "Rahul Sharma", "+91 98765 43210", 4, 2)
	require.NoError(t, err)
	query.QueryNumber = "QRY-007"
	query.Destination = "Munnar"
	travel := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	query.TravelDate = &travel
	return query
}

func newTestItinerary(orgID, queryID uuid.UUID) *quote.Itinerary {
	itinerary := quote.NewItinerary(orgID, queryID)
	itinerary.QuoteNumber = "QRY-007-02"
	itinerary.HotelSelections = []quote.HotelSelection{{
		HotelID:       uuid.New(),
		HotelName:     "Tea Valley Resort",
		HotelLocation: "Munnar",
		Nights:        4,
		Rooms:         2,
		PricePerNight: decimal.NewFromInt(4500),
	}}
	itinerary.Inclusions = []string{"Daily breakfast"}
	itinerary.Costs.DiscountAmount = decimal.NewFromInt(1000)
	itinerary.Recalculate()
	return itinerary
}

func TestDocumentService_GeneratePDF_LatestVersion(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, queryRepo, itineraryRepo, orgRepo, renderer := newTestService()

	org := newTestOrg(t)
	query := newTestQuery(t, orgID)
	itinerary := newTestItinerary(orgID, query.ID)

	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	orgRepo.On("FindByID", ctx, orgID).Return(org, nil)
	itineraryRepo.On("FindLatestForQuery", ctx, orgID, query.ID).Return(itinerary, nil)

	result, err := svc.GeneratePDF(ctx, orgID, GeneratePDFInput{QueryID: query.ID})

	require.NoError(t, err)
	assert.Equal(t, "itinerary_rahul_sharma.pdf", result.FileName)
	assert.NotEmpty(t, result.Data)

	require.NotNil(t, renderer.lastRequest)
	html := renderer.lastRequest.HTML
	assert.Contains(t, html, "Rahul Sharma")
	assert.Contains(t, html, "QRY-007-02")
	assert.Contains(t, html, "Tea Valley Resort")
	assert.Contains(t, html, "Wander Trails")
	assert.Contains(t, html, "#0f766e")
	assert.Contains(t, html, "12 Oct 2026")
}

func TestDocumentService_GeneratePDF_NoSavedQuote(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, queryRepo, itineraryRepo, orgRepo, renderer := newTestService()

	org := newTestOrg(t)
	query := newTestQuery(t, orgID)

	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	orgRepo.On("FindByID", ctx, orgID).Return(org, nil)
	itineraryRepo.On("FindLatestForQuery", ctx, orgID, query.ID).Return(nil, shared.ErrNotFound)

	result, err := svc.GeneratePDF(ctx, orgID, GeneratePDFInput{QueryID: query.ID})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	// document falls back to the query number and skips selection tables
	html := renderer.lastRequest.HTML
	assert.Contains(t, html, "QRY-007")
	assert.NotContains(t, html, "Tea Valley Resort")
}

func TestDocumentService_GeneratePDF_SpecificVersion(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, queryRepo, itineraryRepo, orgRepo, _ := newTestService()

	org := newTestOrg(t)
	query := newTestQuery(t, orgID)
	itinerary := newTestItinerary(orgID, query.ID)

	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	orgRepo.On("FindByID", ctx, orgID).Return(org, nil)
	itineraryRepo.On("FindByIDForOrg", ctx, orgID, itinerary.ID).Return(itinerary, nil)

	result, err := svc.GeneratePDF(ctx, orgID, GeneratePDFInput{QueryID: query.ID, ItineraryID: &itinerary.ID})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Data)
	itineraryRepo.AssertNotCalled(t, "FindLatestForQuery", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_GeneratePDF_VersionFromOtherQuery(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, queryRepo, itineraryRepo, orgRepo, _ := newTestService()

	org := newTestOrg(t)
	query := newTestQuery(t, orgID)
	foreign := newTestItinerary(orgID, uuid.New())

	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	orgRepo.On("FindByID", ctx, orgID).Return(org, nil)
	itineraryRepo.On("FindByIDForOrg", ctx, orgID, foreign.ID).Return(foreign, nil)

	result, err := svc.GeneratePDF(ctx, orgID, GeneratePDFInput{QueryID: query.ID, ItineraryID: &foreign.ID})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "QUOTE_NOT_FOUND", domainErr.Code)
}

func TestDocumentService_GeneratePDF_QueryNotFound(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, queryRepo, _, _, _ := newTestService()

	missing := uuid.New()
	queryRepo.On("FindByIDForOrg", ctx, orgID, missing).Return(nil, shared.ErrNotFound)

	result, err := svc.GeneratePDF(ctx, orgID, GeneratePDFInput{QueryID: missing})

	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, result)
}

func TestDocumentService_GeneratePDF_RenderTimeout(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()
	svc, queryRepo, itineraryRepo, orgRepo, renderer := newTestService()

	renderer.err = pdf.NewRenderError(pdf.ErrCodeRenderTimeout, "render timed out", context.DeadlineExceeded)

	org := newTestOrg(t)
	query := newTestQuery(t, orgID)

	queryRepo.On("FindByIDForOrg", ctx, orgID, query.ID).Return(query, nil)
	orgRepo.On("FindByID", ctx, orgID).Return(org, nil)
	itineraryRepo.On("FindLatestForQuery", ctx, orgID, query.ID).Return(nil, shared.ErrNotFound)

	result, err := svc.GeneratePDF(ctx, orgID, GeneratePDFInput{QueryID: query.ID})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PDF_TIMEOUT", domainErr.Code)
}

func TestBuildDocumentData_TermsFallThrough(t *testing.T) {
	orgID := uuid.New()
	org := newTestOrg(t)
	query := newTestQuery(t, orgID)

	t.Run("CustomTerms", func(t *testing.T) {
		org.TermsAndConditions = "Advance of 50% is required.\n\nBalance due before travel."
		data := BuildDocumentData(org, query, nil)
		assert.Equal(t, []string{"Advance of 50% is required.", "Balance due before travel."}, data.Terms)
	})

	t.Run("DefaultsWhenEmpty", func(t *testing.T) {
		org.TermsAndConditions = "   "
		data := BuildDocumentData(org, query, nil)
		assert.Empty(t, data.Terms)

		html, err := pdf.RenderDocument(data)
		require.NoError(t, err)
		assert.Contains(t, html, pdf.DefaultTerms[0])
	})
}

func TestDocumentFileName(t *testing.T) {
	assert.Equal(t, "itinerary_rahul_sharma.pdf", DocumentFileName("Rahul Sharma"))
	assert.Equal(t, "itinerary_anne_marie.pdf", DocumentFileName("  Anne-Marie  "))
	assert.Equal(t, "itinerary_customer.pdf", DocumentFileName("???"))
	assert.Equal(t, "itinerary_customer.pdf", DocumentFileName(""))
}

func TestDocumentFileName_StripsUnicode(t *testing.T) {
	name := DocumentFileName("Søren Ødegård")
	assert.True(t, strings.HasPrefix(name, "itinerary_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, "ø")
}
