package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
	pgutil "github.com/dealerfin/dealerfin/pkg/postgres"
)

// ErrVersionConflict is returned when a concurrent writer already advanced
// the stored version of a finance request.
var ErrVersionConflict = fmt.Errorf("%w: optimistic locking on finance request", port.ErrConflict)

const financeRequestColumns = `
	id, user_id, car_id, dealership_id, finance_type, credit_score, annual_income,
	term_months, annual_mileage, down_payment, monthly_payment, status, dealer_notes,
	version, created_at, updated_at`

// FinanceRequestRepo implements port.FinanceRequestRepository.
type FinanceRequestRepo struct {
	pool *pgxpool.Pool
}

// NewFinanceRequestRepo creates a new repository backed by PostgreSQL.
func NewFinanceRequestRepo(pool *pgxpool.Pool) *FinanceRequestRepo {
	return &FinanceRequestRepo{pool: pool}
}

// Save persists a finance request (upsert by ID with optimistic locking).
func (r *FinanceRequestRepo) Save(ctx context.Context, fr model.FinanceRequest) error {
	return saveFinanceRequest(ctx, r.pool, fr)
}

func saveFinanceRequest(ctx context.Context, q pgutil.Querier, fr model.FinanceRequest) error {
	query := `
		INSERT INTO finance_requests (` + financeRequestColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO UPDATE SET
			status          = EXCLUDED.status,
			dealer_notes    = EXCLUDED.dealer_notes,
			monthly_payment = EXCLUDED.monthly_payment,
			version         = finance_requests.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE finance_requests.version = $14
	`
	var mileage *int
	if miles, ok := fr.AnnualMileage(); ok {
		mileage = &miles
	}
	tag, err := q.Exec(ctx, query,
		fr.ID(), fr.UserID(), fr.CarID(), fr.DealershipID(), fr.FinanceType().String(),
		fr.Credit().Score(), fr.Credit().AnnualIncome(),
		fr.TermMonths(), mileage, fr.DownPayment(), fr.MonthlyPayment(),
		fr.Status().String(), fr.DealerNotes(),
		fr.Version(), fr.CreatedAt(), fr.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save finance request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

// FindByID retrieves a single finance request.
func (r *FinanceRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (model.FinanceRequest, error) {
	query := `SELECT ` + financeRequestColumns + ` FROM finance_requests WHERE id = $1`
	fr, err := scanFinanceRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.FinanceRequest{}, notFound("finance request", err)
	}
	return fr, nil
}

// FindByUserID lists a customer's requests, newest first.
func (r *FinanceRequestRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.FinanceRequest, error) {
	query := `SELECT ` + financeRequestColumns + `
		FROM finance_requests WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query finance requests: %w", err)
	}
	return collect(rows, scanFinanceRequest)
}

// FindAll lists every request, newest first.
func (r *FinanceRequestRepo) FindAll(ctx context.Context) ([]model.FinanceRequest, error) {
	query := `SELECT ` + financeRequestColumns + ` FROM finance_requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query finance requests: %w", err)
	}
	return collect(rows, scanFinanceRequest)
}

func scanFinanceRequest(s scannable) (model.FinanceRequest, error) {
	var (
		id, userID                   uuid.UUID
		carID, dealershipID, planStr string
		creditScore, termMonths      int
		annualIncome, down, monthly  decimal.Decimal
		annualMileage                *int
		statusStr, notes             string
		version                      int
		createdAt, updatedAt         time.Time
	)
	err := s.Scan(
		&id, &userID, &carID, &dealershipID, &planStr, &creditScore, &annualIncome,
		&termMonths, &annualMileage, &down, &monthly, &statusStr, &notes,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.FinanceRequest{}, err
	}

	planType, err := valueobject.NewPlanType(planStr)
	if err != nil {
		return model.FinanceRequest{}, fmt.Errorf("parse finance type: %w", err)
	}
	status, err := valueobject.NewFinanceRequestStatus(statusStr)
	if err != nil {
		return model.FinanceRequest{}, fmt.Errorf("parse status: %w", err)
	}
	credit, err := valueobject.NewCreditProfile(creditScore, annualIncome)
	if err != nil {
		return model.FinanceRequest{}, fmt.Errorf("parse credit profile: %w", err)
	}

	return model.ReconstructFinanceRequest(id, model.FinanceApplication{
		UserID:        userID,
		CarID:         carID,
		DealershipID:  dealershipID,
		FinanceType:   planType,
		Credit:        credit,
		TermMonths:    termMonths,
		AnnualMileage: annualMileage,
		DownPayment:   down,
	}, monthly, status, notes, version, createdAt, updatedAt), nil
}
