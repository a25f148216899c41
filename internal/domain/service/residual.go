package service

import "github.com/shopspring/decimal"

// DefaultResidualFraction applies to any term not present in the residual table.
var DefaultResidualFraction = decimal.RequireFromString("0.50")

var residualFractions = map[int]decimal.Decimal{
	24: decimal.RequireFromString("0.65"),
	36: decimal.RequireFromString("0.55"),
	48: decimal.RequireFromString("0.45"),
	60: decimal.RequireFromString("0.35"),
}

// ResidualFraction returns the share of the vehicle price expected to remain at
// lease end for the given term.
func ResidualFraction(termMonths int) decimal.Decimal {
	if f, ok := residualFractions[termMonths]; ok {
		return f
	}
	return DefaultResidualFraction
}

// ResidualValue is price × ResidualFraction(term).
func ResidualValue(price decimal.Decimal, termMonths int) decimal.Decimal {
	return price.Mul(ResidualFraction(termMonths))
}
