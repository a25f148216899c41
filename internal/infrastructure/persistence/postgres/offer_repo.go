package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
	pgutil "github.com/dealerfin/dealerfin/pkg/postgres"
)

const offerColumns = `
	id, finance_request_id, customer_id, dealer_user_id, monthly_payment, down_payment,
	term_months, interest_rate, total_cost, status, notes, valid_until, created_at, updated_at`

// ErrOfferSettled is returned when saving over an offer that is no longer active.
var ErrOfferSettled = fmt.Errorf("%w: offer already settled", port.ErrConflict)

// OfferRepo implements port.OfferRepository.
type OfferRepo struct {
	pool *pgxpool.Pool
}

// NewOfferRepo creates a new PostgreSQL-backed offer repository.
func NewOfferRepo(pool *pgxpool.Pool) *OfferRepo {
	return &OfferRepo{pool: pool}
}

// Save persists an offer (upsert).
func (r *OfferRepo) Save(ctx context.Context, o model.Offer) error {
	return saveOffer(ctx, r.pool, o)
}

// SaveWithRequest stores the offer and its finance request in one transaction.
func (r *OfferRepo) SaveWithRequest(ctx context.Context, o model.Offer, fr model.FinanceRequest) error {
	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := saveFinanceRequest(ctx, tx, fr); err != nil {
			return err
		}
		return saveOffer(ctx, tx, o)
	})
}

// saveOffer inserts a new offer or moves a stored one out of active. A stored
// offer that has already left active is never overwritten.
func saveOffer(ctx context.Context, q pgutil.Querier, o model.Offer) error {
	query := `
		INSERT INTO finance_offers (` + offerColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		WHERE finance_offers.status = 'active'
	`
	tag, err := q.Exec(ctx, query,
		o.ID(), o.FinanceRequestID(), o.CustomerID(), o.DealerUserID(),
		o.MonthlyPayment(), o.DownPayment(), o.TermMonths(), o.InterestRate(), o.TotalCost(),
		o.Status().String(), o.Notes(), o.ValidUntil(), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOfferSettled
	}
	return nil
}

// FindByID retrieves an offer by ID.
func (r *OfferRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM finance_offers WHERE id = $1`
	o, err := scanOffer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Offer{}, notFound("offer", err)
	}
	return o, nil
}

// FindByRequestID lists the offers on a request, newest first.
func (r *OfferRepo) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]model.Offer, error) {
	query := `SELECT ` + offerColumns + `
		FROM finance_offers WHERE finance_request_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	return collect(rows, scanOffer)
}

// FindAll lists every offer ordered by request then newest first.
func (r *OfferRepo) FindAll(ctx context.Context) ([]model.Offer, error) {
	query := `SELECT ` + offerColumns + `
		FROM finance_offers ORDER BY finance_request_id, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	return collect(rows, scanOffer)
}

func scanOffer(s scannable) (model.Offer, error) {
	var (
		id, requestID, customerID, dealerID uuid.UUID
		monthly, down, rate, total          decimal.Decimal
		termMonths                          int
		statusStr, notes                    string
		validUntil, createdAt, updatedAt    time.Time
	)
	err := s.Scan(
		&id, &requestID, &customerID, &dealerID, &monthly, &down,
		&termMonths, &rate, &total, &statusStr, &notes, &validUntil, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Offer{}, err
	}

	status, err := valueobject.NewOfferStatus(statusStr)
	if err != nil {
		return model.Offer{}, fmt.Errorf("parse offer status: %w", err)
	}

	return model.ReconstructOffer(id, requestID, customerID, dealerID, model.OfferTerms{
		MonthlyPayment: monthly,
		DownPayment:    down,
		TermMonths:     termMonths,
		InterestRate:   rate,
		TotalCost:      total,
		Notes:          notes,
	}, status, validUntil, createdAt, updatedAt), nil
}
