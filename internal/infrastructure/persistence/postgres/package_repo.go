package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

const packageColumns = `
	id, name, description, price, features, plan_type, applies_to_type, applies_to_value,
	term_months, rate, down_payment, mileage, is_active, created_at, updated_at`

// PackageRepo implements port.PackageRepository.
type PackageRepo struct {
	pool *pgxpool.Pool
}

// NewPackageRepo creates a new PostgreSQL-backed package repository.
func NewPackageRepo(pool *pgxpool.Pool) *PackageRepo {
	return &PackageRepo{pool: pool}
}

// Save persists a package (upsert). Features are stored as a JSON array.
func (r *PackageRepo) Save(ctx context.Context, p model.FinancePackage) error {
	featuresJSON, err := json.Marshal(nonNil(p.Features()))
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	var mileage *int
	if miles, ok := p.Mileage(); ok {
		mileage = &miles
	}

	query := `
		INSERT INTO finance_packages (` + packageColumns + `
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			name             = EXCLUDED.name,
			description      = EXCLUDED.description,
			price            = EXCLUDED.price,
			features         = EXCLUDED.features,
			plan_type        = EXCLUDED.plan_type,
			applies_to_type  = EXCLUDED.applies_to_type,
			applies_to_value = EXCLUDED.applies_to_value,
			term_months      = EXCLUDED.term_months,
			rate             = EXCLUDED.rate,
			down_payment     = EXCLUDED.down_payment,
			mileage          = EXCLUDED.mileage,
			is_active        = EXCLUDED.is_active,
			updated_at       = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query,
		p.ID(), p.Name(), p.Description(), p.Price(), featuresJSON,
		p.PlanType().String(), p.AppliesTo().Kind(), p.AppliesTo().Value(),
		p.TermMonths(), p.Rate(), p.DownPayment(), mileage, p.IsActive(),
		p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save package: %w", err)
	}
	return nil
}

// FindByID retrieves a package by ID.
func (r *PackageRepo) FindByID(ctx context.Context, id uuid.UUID) (model.FinancePackage, error) {
	query := `SELECT ` + packageColumns + ` FROM finance_packages WHERE id = $1`
	p, err := scanPackage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.FinancePackage{}, notFound("package", err)
	}
	return p, nil
}

// FindAll lists packages in creation order, optionally only active ones.
func (r *PackageRepo) FindAll(ctx context.Context, activeOnly bool) ([]model.FinancePackage, error) {
	query := `SELECT ` + packageColumns + `
		FROM finance_packages WHERE (NOT $1::boolean OR is_active) ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query packages: %w", err)
	}
	return collect(rows, scanPackage)
}

// Delete removes a package permanently.
func (r *PackageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM finance_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("package %s: %w", id, port.ErrNotFound)
	}
	return nil
}

func scanPackage(s scannable) (model.FinancePackage, error) {
	var (
		id                                 uuid.UUID
		name, description                  string
		price, rate, down                  decimal.Decimal
		featuresJSON                       []byte
		planStr, appliesKind, appliesValue string
		termMonths                         int
		mileage                            *int
		isActive                           bool
		createdAt, updatedAt               time.Time
	)
	err := s.Scan(
		&id, &name, &description, &price, &featuresJSON, &planStr, &appliesKind, &appliesValue,
		&termMonths, &rate, &down, &mileage, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.FinancePackage{}, err
	}

	var features []string
	if err := json.Unmarshal(featuresJSON, &features); err != nil {
		return model.FinancePackage{}, fmt.Errorf("unmarshal features: %w", err)
	}
	planType, err := valueobject.NewPlanType(planStr)
	if err != nil {
		return model.FinancePackage{}, fmt.Errorf("parse plan type: %w", err)
	}
	appliesTo, err := valueobject.NewAppliesTo(appliesKind, appliesValue)
	if err != nil {
		return model.FinancePackage{}, fmt.Errorf("parse applies to: %w", err)
	}

	return model.ReconstructFinancePackage(id, model.PackageTerms{
		Name:        name,
		Description: description,
		Price:       price,
		Features:    features,
		PlanType:    planType,
		AppliesTo:   appliesTo,
		TermMonths:  termMonths,
		Rate:        rate,
		DownPayment: down,
		Mileage:     mileage,
	}, isActive, createdAt, updatedAt), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
