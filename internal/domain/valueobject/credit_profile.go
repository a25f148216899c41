package valueobject

import "github.com/shopspring/decimal"

// Application limits enforced on customer-submitted finance requests.
const (
	MinCreditScore = 300
	MaxCreditScore = 850
	MinTermMonths  = 12
	MaxTermMonths  = 84
)

// MinAnnualIncome is the lowest annual income accepted on a finance request.
var MinAnnualIncome = decimal.NewFromInt(1000)

// CreditProfile is the self-reported credit data attached to a finance request.
type CreditProfile struct {
	score        int
	annualIncome decimal.Decimal
}

// NewCreditProfile validates the score range and the income floor.
func NewCreditProfile(score int, annualIncome decimal.Decimal) (CreditProfile, error) {
	if score < MinCreditScore || score > MaxCreditScore {
		return CreditProfile{}, Invalid("credit score must be between %d and %d, got %d", MinCreditScore, MaxCreditScore, score)
	}
	if annualIncome.LessThan(MinAnnualIncome) {
		return CreditProfile{}, Invalid("annual income must be at least %s", MinAnnualIncome)
	}
	return CreditProfile{score: score, annualIncome: annualIncome}, nil
}

func (c CreditProfile) Score() int                    { return c.score }
func (c CreditProfile) AnnualIncome() decimal.Decimal { return c.annualIncome }
