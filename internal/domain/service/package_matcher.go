package service

import (
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// PackageMatcher – weighted-deviation package recommendation
// ---------------------------------------------------------------------------

// CustomerPreferences are the customer's desired terms.
type CustomerPreferences struct {
	TermMonths    int
	DownPayment   decimal.Decimal
	CreditScore   int
	AnnualMileage int
}

// MatchWeights scale each deviation in the package score.
type MatchWeights struct {
	Term    decimal.Decimal
	Down    decimal.Decimal
	Rate    decimal.Decimal
	Mileage decimal.Decimal
}

// DefaultMatchWeights: term 1, down payment 0.5, rate 10, mileage 0.05.
var DefaultMatchWeights = MatchWeights{
	Term:    decimal.NewFromInt(1),
	Down:    decimal.RequireFromString("0.5"),
	Rate:    decimal.NewFromInt(10),
	Mileage: decimal.RequireFromString("0.05"),
}

// PackageMatcher selects the package closest to a customer's preferences.
type PackageMatcher struct {
	rates   RateTable
	weights MatchWeights
}

// NewPackageMatcher uses the estimator rate table to derive the customer's rate.
func NewPackageMatcher() *PackageMatcher {
	return &PackageMatcher{rates: EstimatorRateTable, weights: DefaultMatchWeights}
}

// Eligible keeps active packages of the requested plan type whose target
// resolves against the vehicle, preserving input order.
func (m *PackageMatcher) Eligible(
	packages []model.FinancePackage,
	vehicle model.Vehicle,
	planType valueobject.PlanType,
) []model.FinancePackage {
	var out []model.FinancePackage
	for _, p := range packages {
		if !p.IsActive() || !p.PlanType().Equal(planType) || !p.AppliesToVehicle(vehicle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Score is the weighted deviation of a package from the preferences, less the
// specificity bonus. Lower is better. A lease package without a mileage
// allowance adds no mileage deviation.
func (m *PackageMatcher) Score(
	pkg model.FinancePackage,
	prefs CustomerPreferences,
	planType valueobject.PlanType,
) decimal.Decimal {
	customerRate := m.rates.RateFor(prefs.CreditScore)

	score := m.weights.Term.Mul(absInt(prefs.TermMonths - pkg.TermMonths())).
		Add(m.weights.Down.Mul(prefs.DownPayment.Sub(pkg.DownPayment()).Abs())).
		Add(m.weights.Rate.Mul(pkg.Rate().Sub(customerRate).Abs()))

	if planType.IsLease() {
		if miles, ok := pkg.Mileage(); ok {
			score = score.Add(m.weights.Mileage.Mul(absInt(prefs.AnnualMileage - miles)))
		}
	}

	return score.Sub(decimal.NewFromInt(int64(pkg.AppliesTo().Specificity())))
}

// BestMatch returns the eligible package with the strictly lowest score; the
// earlier package wins ties. ok is false when nothing is eligible.
func (m *PackageMatcher) BestMatch(
	packages []model.FinancePackage,
	vehicle model.Vehicle,
	prefs CustomerPreferences,
	planType valueobject.PlanType,
) (best model.FinancePackage, ok bool) {
	var bestScore decimal.Decimal
	for _, p := range m.Eligible(packages, vehicle, planType) {
		s := m.Score(p, prefs, planType)
		if !ok || s.LessThan(bestScore) {
			best, bestScore, ok = p, s, true
		}
	}
	return best, ok
}

func absInt(v int) decimal.Decimal {
	if v < 0 {
		v = -v
	}
	return decimal.NewFromInt(int64(v))
}
