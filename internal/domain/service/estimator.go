package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Estimator – quick finance and lease estimate from MSRP
// ---------------------------------------------------------------------------

var (
	// DestinationFee is the delivery, processing and handling charge added to MSRP.
	DestinationFee = decimal.NewFromInt(1095)
	// LocalOfferCredit is the regional incentive applied when the customer qualifies.
	LocalOfferCredit = decimal.NewFromInt(500)
)

// EstimateInput holds the estimator form values.
type EstimateInput struct {
	MSRP        decimal.Decimal
	CreditScore int
	TermMonths  int
	CashDown    decimal.Decimal
	TradeIn     decimal.Decimal
	LocalOffer  bool
}

// Estimate shows finance and lease payments side by side for the same inputs.
type Estimate struct {
	APR             decimal.Decimal
	CapitalizedCost decimal.Decimal
	FinanceMonthly  decimal.Decimal
	Lease           LeaseBreakdown
	LeaseTermMonths int
}

// Estimator prices a vehicle with the estimator rate table and the estimator
// lease strategy.
type Estimator struct {
	rates RateTable
	lease EstimatorLease
}

// NewEstimator returns an estimator bound to the estimator rate table.
func NewEstimator() *Estimator {
	return &Estimator{rates: EstimatorRateTable}
}

// CapitalizedCost is max(0, msrp + destination fee - cash down - trade-in - local offer).
// Negative cash down and trade-in values count as zero.
func CapitalizedCost(in EstimateInput) decimal.Decimal {
	credits := decimal.Max(decimal.Zero, in.CashDown).Add(decimal.Max(decimal.Zero, in.TradeIn))
	if in.LocalOffer {
		credits = credits.Add(LocalOfferCredit)
	}
	return decimal.Max(decimal.Zero, in.MSRP.Add(DestinationFee).Sub(credits))
}

// Estimate computes both payment options.
func (e *Estimator) Estimate(in EstimateInput) (Estimate, error) {
	if in.TermMonths <= 0 {
		return Estimate{}, fmt.Errorf("%w: %d", ErrInvalidTerm, in.TermMonths)
	}
	if in.MSRP.IsNegative() {
		return Estimate{}, fmt.Errorf("%w: %s", ErrNegativePrice, in.MSRP)
	}

	apr := e.rates.RateFor(in.CreditScore)
	capCost := CapitalizedCost(in)

	financeMonthly, err := MonthlyPayment(capCost, apr, in.TermMonths)
	if err != nil {
		return Estimate{}, fmt.Errorf("finance estimate: %w", err)
	}

	down := decimal.Max(decimal.Zero, in.CashDown)
	lease := e.lease.withCapitalizedCost(in.MSRP, capCost, in.TermMonths, apr, down)

	return Estimate{
		APR:             apr,
		CapitalizedCost: capCost,
		FinanceMonthly:  financeMonthly,
		Lease:           lease,
		LeaseTermMonths: lease.TermMonths,
	}, nil
}
