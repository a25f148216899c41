package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LeaseBreakdown is the monthly payment and cost summary of a closed-end lease.
type LeaseBreakdown struct {
	Strategy              string
	MonthlyPayment        decimal.Decimal
	DepreciationPerMonth  decimal.Decimal
	FinanceChargePerMonth decimal.Decimal
	TotalOfPayments       decimal.Decimal
	TotalCost             decimal.Decimal
	TotalFinanceCharges   decimal.Decimal
	ResidualValue         decimal.Decimal
	CapitalizedCost       decimal.Decimal
	DepreciationTotal     decimal.Decimal
	MoneyFactor           decimal.Decimal
	TermMonths            int
}

// LeaseStrategy computes lease payments. Two strategies exist and produce
// different numbers for the same inputs; callers pick one by name.
type LeaseStrategy interface {
	Name() string
	LeaseDetails(vehiclePrice decimal.Decimal, termMonths int, annualRatePercent, downPayment decimal.Decimal) (LeaseBreakdown, error)
}

const (
	LeaseStrategyStandard  = "standard"
	LeaseStrategyEstimator = "estimator"
)

var moneyFactorDivisor = decimal.NewFromInt(2400)

// MoneyFactor converts an APR in percent to the lease money factor (apr / 2400).
func MoneyFactor(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(moneyFactorDivisor)
}

// LeaseStrategyByName resolves a named strategy, defaulting to the standard one.
func LeaseStrategyByName(name string) LeaseStrategy {
	if name == LeaseStrategyEstimator {
		return EstimatorLease{}
	}
	return StandardLease{}
}

func validateLeaseInputs(price decimal.Decimal, termMonths int, apr, down decimal.Decimal) error {
	if termMonths <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTerm, termMonths)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, price)
	}
	if apr.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeRate, apr)
	}
	if down.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeDownPayment, down)
	}
	return nil
}

// ---------------------------------------------------------------------------
// StandardLease – residual table lookup
// ---------------------------------------------------------------------------

// StandardLease uses the residual value table and the full term.
//
//	residual     = price * residualFraction(term)
//	cap          = price - down
//	depreciation = (cap - residual) / term
//	finance      = (cap + residual) * apr / 2400
//	monthly      = depreciation + finance
type StandardLease struct{}

func (StandardLease) Name() string { return LeaseStrategyStandard }

// LeaseDetails computes the standard lease breakdown.
func (StandardLease) LeaseDetails(
	vehiclePrice decimal.Decimal,
	termMonths int,
	annualRatePercent, downPayment decimal.Decimal,
) (LeaseBreakdown, error) {
	if err := validateLeaseInputs(vehiclePrice, termMonths, annualRatePercent, downPayment); err != nil {
		return LeaseBreakdown{}, err
	}

	residual := ResidualValue(vehiclePrice, termMonths)
	capCost := vehiclePrice.Sub(downPayment)
	depreciation := capCost.Sub(residual).Div(decimal.NewFromInt(int64(termMonths)))

	b := buildLeaseBreakdown(capCost, residual, depreciation, MoneyFactor(annualRatePercent), termMonths, downPayment)
	b.Strategy = LeaseStrategyStandard
	return b, nil
}

// ---------------------------------------------------------------------------
// EstimatorLease – heuristic residual curve
// ---------------------------------------------------------------------------

const (
	estimatorMinTerm       = 24
	estimatorMaxTerm       = 60
	estimatorResidualPivot = 24
)

var (
	estimatorResidualStart = decimal.RequireFromString("0.6")
	estimatorResidualDecay = decimal.RequireFromString("0.003")
	estimatorResidualFloor = decimal.RequireFromString("0.45")
)

// EstimatorResidualRate is max(0.45, 0.6 - max(0, term-24) * 0.003).
func EstimatorResidualRate(termMonths int) decimal.Decimal {
	extra := termMonths - estimatorResidualPivot
	if extra < 0 {
		extra = 0
	}
	rate := estimatorResidualStart.Sub(estimatorResidualDecay.Mul(decimal.NewFromInt(int64(extra))))
	return decimal.Max(rate, estimatorResidualFloor)
}

// ClampLeaseTerm bounds a term to the [24, 60] month window used by the
// estimator.
func ClampLeaseTerm(termMonths int) int {
	switch {
	case termMonths < estimatorMinTerm:
		return estimatorMinTerm
	case termMonths > estimatorMaxTerm:
		return estimatorMaxTerm
	default:
		return termMonths
	}
}

// EstimatorLease is the quick estimator variant: the residual follows a
// heuristic curve on the price, the capitalized cost is floored at zero,
// depreciation is never negative and the term divisor is clamped to [24, 60].
type EstimatorLease struct{}

func (EstimatorLease) Name() string { return LeaseStrategyEstimator }

// LeaseDetails computes the estimator lease breakdown with cap = price - down.
func (e EstimatorLease) LeaseDetails(
	vehiclePrice decimal.Decimal,
	termMonths int,
	annualRatePercent, downPayment decimal.Decimal,
) (LeaseBreakdown, error) {
	if err := validateLeaseInputs(vehiclePrice, termMonths, annualRatePercent, downPayment); err != nil {
		return LeaseBreakdown{}, err
	}
	capCost := decimal.Max(decimal.Zero, vehiclePrice.Sub(downPayment))
	return e.withCapitalizedCost(vehiclePrice, capCost, termMonths, annualRatePercent, downPayment), nil
}

// withCapitalizedCost runs the estimator formula against an already computed
// capitalized cost, so fees and credits can be folded in by the caller.
func (EstimatorLease) withCapitalizedCost(
	msrp, capCost decimal.Decimal,
	termMonths int,
	annualRatePercent, downPayment decimal.Decimal,
) LeaseBreakdown {
	term := ClampLeaseTerm(termMonths)
	residual := msrp.Mul(EstimatorResidualRate(termMonths))
	depreciation := decimal.Max(decimal.Zero, capCost.Sub(residual)).Div(decimal.NewFromInt(int64(term)))

	b := buildLeaseBreakdown(capCost, residual, depreciation, MoneyFactor(annualRatePercent), term, downPayment)
	b.Strategy = LeaseStrategyEstimator
	return b
}

func buildLeaseBreakdown(
	capCost, residual, depreciation, moneyFactor decimal.Decimal,
	termMonths int,
	downPayment decimal.Decimal,
) LeaseBreakdown {
	n := decimal.NewFromInt(int64(termMonths))
	financeCharge := capCost.Add(residual).Mul(moneyFactor)
	monthly := depreciation.Add(financeCharge)
	totalOfPayments := monthly.Mul(n)

	return LeaseBreakdown{
		MonthlyPayment:        monthly,
		DepreciationPerMonth:  depreciation,
		FinanceChargePerMonth: financeCharge,
		TotalOfPayments:       totalOfPayments,
		TotalCost:             totalOfPayments.Add(downPayment),
		TotalFinanceCharges:   financeCharge.Mul(n),
		ResidualValue:         residual,
		CapitalizedCost:       capCost,
		DepreciationTotal:     depreciation.Mul(n),
		MoneyFactor:           moneyFactor,
		TermMonths:            termMonths,
	}
}
