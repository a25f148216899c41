package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockFinanceRequestRepository struct {
	saveFunc         func(ctx context.Context, req model.FinanceRequest) error
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (model.FinanceRequest, error)
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID) ([]model.FinanceRequest, error)
	findAllFunc      func(ctx context.Context) ([]model.FinanceRequest, error)
	saved            []model.FinanceRequest
}

func (m *mockFinanceRequestRepository) Save(ctx context.Context, req model.FinanceRequest) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, req)
	}
	m.saved = append(m.saved, req)
	return nil
}

func (m *mockFinanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (model.FinanceRequest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.FinanceRequest{}, port.ErrNotFound
}

func (m *mockFinanceRequestRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.FinanceRequest, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockFinanceRequestRepository) FindAll(ctx context.Context) ([]model.FinanceRequest, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

type savedOfferPair struct {
	offer   model.Offer
	request model.FinanceRequest
}

type mockOfferRepository struct {
	saveFunc            func(ctx context.Context, offer model.Offer) error
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (model.Offer, error)
	findByRequestIDFunc func(ctx context.Context, requestID uuid.UUID) ([]model.Offer, error)
	findAllFunc         func(ctx context.Context) ([]model.Offer, error)
	saveWithRequestFunc func(ctx context.Context, offer model.Offer, req model.FinanceRequest) error
	saved               []model.Offer
	savedPairs          []savedOfferPair
}

func (m *mockOfferRepository) Save(ctx context.Context, offer model.Offer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, offer)
	}
	m.saved = append(m.saved, offer)
	return nil
}

func (m *mockOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Offer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Offer{}, port.ErrNotFound
}

func (m *mockOfferRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]model.Offer, error) {
	if m.findByRequestIDFunc != nil {
		return m.findByRequestIDFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockOfferRepository) FindAll(ctx context.Context) ([]model.Offer, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockOfferRepository) SaveWithRequest(ctx context.Context, offer model.Offer, req model.FinanceRequest) error {
	if m.saveWithRequestFunc != nil {
		return m.saveWithRequestFunc(ctx, offer, req)
	}
	m.savedPairs = append(m.savedPairs, savedOfferPair{offer: offer, request: req})
	return nil
}

type mockPackageRepository struct {
	saveFunc     func(ctx context.Context, pkg model.FinancePackage) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.FinancePackage, error)
	findAllFunc  func(ctx context.Context, activeOnly bool) ([]model.FinancePackage, error)
	deleteFunc   func(ctx context.Context, id uuid.UUID) error
	saved        []model.FinancePackage
	deleted      []uuid.UUID
}

func (m *mockPackageRepository) Save(ctx context.Context, pkg model.FinancePackage) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, pkg)
	}
	m.saved = append(m.saved, pkg)
	return nil
}

func (m *mockPackageRepository) FindByID(ctx context.Context, id uuid.UUID) (model.FinancePackage, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.FinancePackage{}, port.ErrNotFound
}

func (m *mockPackageRepository) FindAll(ctx context.Context, activeOnly bool) ([]model.FinancePackage, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockPackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockVehicleCatalog struct {
	vehicles map[string]model.Vehicle
	lookups  int
}

func (m *mockVehicleCatalog) FindVehicle(_ context.Context, id string) (model.Vehicle, error) {
	m.lookups++
	v, ok := m.vehicles[id]
	if !ok {
		return model.Vehicle{}, port.ErrNotFound
	}
	return v, nil
}

func (m *mockVehicleCatalog) ListVehicles(_ context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		out = append(out, v)
	}
	return out, nil
}

type mockDealershipDirectory struct {
	findByIDFunc        func(ctx context.Context, id string) (model.Dealership, error)
	findByZipFunc       func(ctx context.Context, zip string) ([]model.Dealership, error)
	findByCityStateFunc func(ctx context.Context, city, state string) ([]model.Dealership, error)
	searchFunc          func(ctx context.Context, query string) ([]model.Dealership, error)
}

func (m *mockDealershipDirectory) FindByID(ctx context.Context, id string) (model.Dealership, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Dealership{ID: id}, nil
}

func (m *mockDealershipDirectory) FindByZip(ctx context.Context, zip string) ([]model.Dealership, error) {
	if m.findByZipFunc != nil {
		return m.findByZipFunc(ctx, zip)
	}
	return nil, nil
}

func (m *mockDealershipDirectory) FindByCityState(ctx context.Context, city, state string) ([]model.Dealership, error) {
	if m.findByCityStateFunc != nil {
		return m.findByCityStateFunc(ctx, city, state)
	}
	return nil, nil
}

func (m *mockDealershipDirectory) Search(ctx context.Context, query string) ([]model.Dealership, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

type mockQuoteCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func (m *mockQuoteCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mockQuoteCache) Set(_ context.Context, key string, value []byte) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = value
	m.sets++
	return nil
}

type mockNotificationFeed struct {
	pushFunc func(ctx context.Context, n model.Notification) error
	listFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error)
	pushed   []model.Notification
}

func (m *mockNotificationFeed) Push(ctx context.Context, n model.Notification) error {
	if m.pushFunc != nil {
		return m.pushFunc(ctx, n)
	}
	m.pushed = append(m.pushed, n)
	return nil
}

func (m *mockNotificationFeed) List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, limit)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Fixtures ---

var (
	civic = model.Vehicle{ID: "civic-2024-ex", Make: "Honda", Model: "Civic", Year: 2024, Trim: "EX", BasePrice: decimal.NewFromInt(25900)}
	rav4  = model.Vehicle{ID: "rav4-2024-xle", Make: "Toyota", Model: "RAV4", Year: 2024, Trim: "XLE", BasePrice: decimal.NewFromInt(32000)}
)

func newCatalog() *mockVehicleCatalog {
	return &mockVehicleCatalog{vehicles: map[string]model.Vehicle{civic.ID: civic, rav4.ID: rav4}}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// existingRequest rebuilds a stored request for the given customer and status.
func existingRequest(t *testing.T, userID uuid.UUID, carID string, plan valueobject.PlanType, status valueobject.FinanceRequestStatus) model.FinanceRequest {
	t.Helper()
	credit, err := valueobject.NewCreditProfile(720, d("85000"))
	require.NoError(t, err)
	created := time.Now().UTC().Add(-48 * time.Hour)
	return model.ReconstructFinanceRequest(uuid.New(), model.FinanceApplication{
		UserID:       userID,
		CarID:        carID,
		DealershipID: model.DefaultDealershipID,
		FinanceType:  plan,
		Credit:       credit,
		TermMonths:   60,
		DownPayment:  d("2000"),
	}, d("467.63"), status, "", 1, created, created)
}

// existingOffer rebuilds a stored active offer on the request.
func existingOffer(fr model.FinanceRequest, validUntil time.Time) model.Offer {
	created := time.Now().UTC().Add(-24 * time.Hour)
	return model.ReconstructOffer(uuid.New(), fr.ID(), fr.UserID(), uuid.New(), model.OfferTerms{
		MonthlyPayment: d("455.10"),
		DownPayment:    d("2500"),
		TermMonths:     60,
		InterestRate:   d("5.9"),
		TotalCost:      d("29806.00"),
	}, valueobject.OfferStatusActive, validUntil, created, created)
}
