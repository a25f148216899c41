package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// FinancePackage – dealer-curated finance or lease offer template
// ---------------------------------------------------------------------------

// FinancePackage is an immutable catalog aggregate managed by admins and read
// by the package matcher.
type FinancePackage struct {
	id          uuid.UUID
	name        string
	description string
	price       decimal.Decimal
	features    []string
	planType    valueobject.PlanType
	appliesTo   valueobject.AppliesTo
	termMonths  int
	rate        decimal.Decimal
	downPayment decimal.Decimal
	mileage     *int
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// PackageTerms is the editable content of a package.
type PackageTerms struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Features    []string
	PlanType    valueobject.PlanType
	AppliesTo   valueobject.AppliesTo
	TermMonths  int
	Rate        decimal.Decimal
	DownPayment decimal.Decimal
	Mileage     *int
}

func (t PackageTerms) validate() error {
	if t.Name == "" {
		return valueobject.Invalid("package name is required")
	}
	if t.PlanType.IsZero() {
		return valueobject.Invalid("package plan type is required")
	}
	if t.TermMonths <= 0 {
		return valueobject.Invalid("package term months must be positive")
	}
	if t.Rate.IsNegative() {
		return valueobject.Invalid("package rate must not be negative")
	}
	if t.DownPayment.IsNegative() {
		return valueobject.Invalid("package down payment must not be negative")
	}
	if t.Price.IsNegative() {
		return valueobject.Invalid("package price must not be negative")
	}
	if t.Mileage != nil && *t.Mileage < 0 {
		return valueobject.Invalid("package mileage must not be negative")
	}
	return nil
}

// NewFinancePackage creates an active package.
func NewFinancePackage(terms PackageTerms, now time.Time) (FinancePackage, error) {
	if err := terms.validate(); err != nil {
		return FinancePackage{}, err
	}
	p := FinancePackage{id: uuid.New(), isActive: true, createdAt: now, updatedAt: now}
	return p.apply(terms), nil
}

// ReconstructFinancePackage rebuilds a package from persistence.
func ReconstructFinancePackage(
	id uuid.UUID,
	terms PackageTerms,
	isActive bool,
	createdAt, updatedAt time.Time,
) FinancePackage {
	p := FinancePackage{id: id, isActive: isActive, createdAt: createdAt, updatedAt: updatedAt}
	return p.apply(terms)
}

// Update replaces the editable content and returns the new version.
func (p FinancePackage) Update(terms PackageTerms, now time.Time) (FinancePackage, error) {
	if err := terms.validate(); err != nil {
		return p, err
	}
	next := p.apply(terms)
	next.updatedAt = now
	return next, nil
}

// Deactivate soft-deletes the package; it stays stored but is never matched.
func (p FinancePackage) Deactivate(now time.Time) FinancePackage {
	next := p
	next.isActive = false
	next.updatedAt = now
	return next
}

// Activate restores a soft-deleted package.
func (p FinancePackage) Activate(now time.Time) FinancePackage {
	next := p
	next.isActive = true
	next.updatedAt = now
	return next
}

// AppliesToVehicle resolves the package target against a catalog vehicle.
func (p FinancePackage) AppliesToVehicle(v Vehicle) bool {
	return p.appliesTo.Resolves(v.ID, v.Model, v.Trim)
}

func (p FinancePackage) apply(t PackageTerms) FinancePackage {
	p.name = t.Name
	p.description = t.Description
	p.price = t.Price
	p.features = append([]string(nil), t.Features...)
	p.planType = t.PlanType
	p.appliesTo = t.AppliesTo
	if p.appliesTo.Kind() == "" {
		p.appliesTo = valueobject.AppliesToEveryVehicle
	}
	p.termMonths = t.TermMonths
	p.rate = t.Rate
	p.downPayment = t.DownPayment
	if t.Mileage != nil {
		m := *t.Mileage
		p.mileage = &m
	} else {
		p.mileage = nil
	}
	return p
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p FinancePackage) ID() uuid.UUID                    { return p.id }
func (p FinancePackage) Name() string                     { return p.name }
func (p FinancePackage) Description() string              { return p.description }
func (p FinancePackage) Price() decimal.Decimal           { return p.price }
func (p FinancePackage) Features() []string               { return append([]string(nil), p.features...) }
func (p FinancePackage) PlanType() valueobject.PlanType   { return p.planType }
func (p FinancePackage) AppliesTo() valueobject.AppliesTo { return p.appliesTo }
func (p FinancePackage) TermMonths() int                  { return p.termMonths }
func (p FinancePackage) Rate() decimal.Decimal            { return p.rate }
func (p FinancePackage) DownPayment() decimal.Decimal     { return p.downPayment }
func (p FinancePackage) IsActive() bool                   { return p.isActive }
func (p FinancePackage) CreatedAt() time.Time             { return p.createdAt }
func (p FinancePackage) UpdatedAt() time.Time             { return p.updatedAt }

// Mileage returns the annual mileage allowance and whether one is set.
func (p FinancePackage) Mileage() (int, bool) {
	if p.mileage == nil {
		return 0, false
	}
	return *p.mileage, true
}

// Terms returns the editable content, e.g. to seed an update.
func (p FinancePackage) Terms() PackageTerms {
	t := PackageTerms{
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		Features:    p.Features(),
		PlanType:    p.planType,
		AppliesTo:   p.appliesTo,
		TermMonths:  p.termMonths,
		Rate:        p.rate,
		DownPayment: p.downPayment,
	}
	if m, ok := p.Mileage(); ok {
		t.Mileage = &m
	}
	return t
}
