package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
)

// ErrNotFound is returned by adapters when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by adapters when a write lost a concurrent update.
var ErrConflict = errors.New("conflict")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// FinanceRequestRepository persists and retrieves finance requests.
type FinanceRequestRepository interface {
	Save(ctx context.Context, req model.FinanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (model.FinanceRequest, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.FinanceRequest, error)
	FindAll(ctx context.Context) ([]model.FinanceRequest, error)
}

// OfferRepository persists and retrieves dealer counter-offers.
type OfferRepository interface {
	Save(ctx context.Context, offer model.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Offer, error)
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]model.Offer, error)
	FindAll(ctx context.Context) ([]model.Offer, error)
	// SaveWithRequest stores an offer and its finance request atomically.
	SaveWithRequest(ctx context.Context, offer model.Offer, req model.FinanceRequest) error
}

// PackageRepository persists and retrieves finance packages.
type PackageRepository interface {
	Save(ctx context.Context, pkg model.FinancePackage) error
	FindByID(ctx context.Context, id uuid.UUID) (model.FinancePackage, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.FinancePackage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Catalog ports
// ---------------------------------------------------------------------------

// VehicleCatalog resolves catalog vehicles.
type VehicleCatalog interface {
	FindVehicle(ctx context.Context, id string) (model.Vehicle, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
}

// DealershipDirectory looks up dealerships.
type DealershipDirectory interface {
	FindByID(ctx context.Context, id string) (model.Dealership, error)
	FindByZip(ctx context.Context, zip string) ([]model.Dealership, error)
	FindByCityState(ctx context.Context, city, state string) ([]model.Dealership, error)
	Search(ctx context.Context, query string) ([]model.Dealership, error)
}

// ---------------------------------------------------------------------------
// Cache and feed ports
// ---------------------------------------------------------------------------

// QuoteCache stores serialized quotes by normalized input key.
type QuoteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// NotificationFeed keeps the most recent notifications per user.
type NotificationFeed interface {
	Push(ctx context.Context, n model.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]model.Notification, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
