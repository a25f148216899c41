package service

import "github.com/shopspring/decimal"

// ---------------------------------------------------------------------------
// RateTable – credit score to annual percentage rate
// ---------------------------------------------------------------------------

// RateTable maps a credit score to an annual percentage rate (APR, in percent).
// Implementations are pure and total: every integer score yields a rate.
type RateTable interface {
	Name() string
	RateFor(creditScore int) decimal.Decimal
}

// rateTier is one step of a descending threshold table.
type rateTier struct {
	minScore int
	apr      decimal.Decimal
}

// TieredRateTable resolves a score against tiers ordered by descending minimum
// score. The first tier whose minimum is met wins; otherwise the floor rate
// applies.
type TieredRateTable struct {
	name  string
	tiers []rateTier
	floor decimal.Decimal
}

// Name identifies the table in quotes and logs.
func (t TieredRateTable) Name() string { return t.name }

// RateFor returns the APR for the given score.
func (t TieredRateTable) RateFor(creditScore int) decimal.Decimal {
	for _, tier := range t.tiers {
		if creditScore >= tier.minScore {
			return tier.apr
		}
	}
	return t.floor
}

const (
	RateTableStandard  = "standard"
	RateTableEstimator = "estimator"
)

// StandardRateTable is the fine-grained table used by the general calculator.
//
//	>=800 3.5%   >=740 4.5%   >=670 6.5%
//	>=580 9.5%   >=500 13.5%  otherwise 18.0%
var StandardRateTable = TieredRateTable{
	name: RateTableStandard,
	tiers: []rateTier{
		{minScore: 800, apr: decimal.RequireFromString("3.5")},
		{minScore: 740, apr: decimal.RequireFromString("4.5")},
		{minScore: 670, apr: decimal.RequireFromString("6.5")},
		{minScore: 580, apr: decimal.RequireFromString("9.5")},
		{minScore: 500, apr: decimal.RequireFromString("13.5")},
	},
	floor: decimal.RequireFromString("18.0"),
}

// EstimatorRateTable is the coarse table used by the payment estimator and
// by package matching.
//
//	>=760 2.9%   >=700 3.9%   >=640 5.9%   otherwise 9.9%
var EstimatorRateTable = TieredRateTable{
	name: RateTableEstimator,
	tiers: []rateTier{
		{minScore: 760, apr: decimal.RequireFromString("2.9")},
		{minScore: 700, apr: decimal.RequireFromString("3.9")},
		{minScore: 640, apr: decimal.RequireFromString("5.9")},
	},
	floor: decimal.RequireFromString("9.9"),
}

// RateTableByName resolves a named strategy. Unknown or empty names fall back
// to the standard table.
func RateTableByName(name string) RateTable {
	if name == RateTableEstimator {
		return EstimatorRateTable
	}
	return StandardRateTable
}
