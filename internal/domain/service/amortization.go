package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTerm is returned when a term is zero or negative.
	ErrInvalidTerm = errors.New("term months must be positive")
	// ErrNegativePrice is returned when a vehicle price is below zero.
	ErrNegativePrice = errors.New("price must not be negative")
	// ErrNegativeRate is returned when an annual rate is below zero.
	ErrNegativeRate = errors.New("annual rate must not be negative")
	// ErrNegativeDownPayment is returned when a down payment is below zero.
	ErrNegativeDownPayment = errors.New("down payment must not be negative")
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage rate into a monthly decimal rate:
// apr / 100 / 12.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

// MonthlyPayment computes the level payment of a fixed-rate amortizing loan.
//
//	r       = apr / 100 / 12
//	payment = P / n                          when r = 0
//	payment = P * r * (1+r)^n / ((1+r)^n - 1) otherwise
//
// The loan amount itself is not range checked; a negative amount yields a
// negative payment. No rounding is applied.
func MonthlyPayment(loanAmount, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidTerm, termMonths)
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeRate, annualRatePercent)
	}

	n := decimal.NewFromInt(int64(termMonths))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return loanAmount.Div(n), nil
	}

	// The power term is evaluated in float64 and brought back into decimal for
	// the monetary arithmetic.
	factor := decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(termMonths)))
	return loanAmount.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1))), nil
}

// ---------------------------------------------------------------------------
// Finance summary
// ---------------------------------------------------------------------------

// FinanceBreakdown is the cost summary of a retail installment contract.
type FinanceBreakdown struct {
	AmountFinanced  decimal.Decimal
	MonthlyPayment  decimal.Decimal
	TotalOfPayments decimal.Decimal
	TotalCost       decimal.Decimal
	TotalInterest   decimal.Decimal
	AnnualRate      decimal.Decimal
	TermMonths      int
}

// FinanceDetails amortizes (price - downPayment) and summarizes the contract.
// totalCost = monthly * term + downPayment.
func FinanceDetails(price, downPayment, annualRatePercent decimal.Decimal, termMonths int) (FinanceBreakdown, error) {
	if price.IsNegative() {
		return FinanceBreakdown{}, fmt.Errorf("%w: %s", ErrNegativePrice, price)
	}
	if downPayment.IsNegative() {
		return FinanceBreakdown{}, fmt.Errorf("%w: %s", ErrNegativeDownPayment, downPayment)
	}

	financed := price.Sub(downPayment)
	monthly, err := MonthlyPayment(financed, annualRatePercent, termMonths)
	if err != nil {
		return FinanceBreakdown{}, err
	}

	totalOfPayments := monthly.Mul(decimal.NewFromInt(int64(termMonths)))
	return FinanceBreakdown{
		AmountFinanced:  financed,
		MonthlyPayment:  monthly,
		TotalOfPayments: totalOfPayments,
		TotalCost:       totalOfPayments.Add(downPayment),
		TotalInterest:   totalOfPayments.Sub(financed),
		AnnualRate:      annualRatePercent,
		TermMonths:      termMonths,
	}, nil
}

// ---------------------------------------------------------------------------
// Amortization schedule
// ---------------------------------------------------------------------------

// AmortizationEntry is one period of an amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// AmortizationSchedule lays out a fixed-payment schedule rounded to cents. The
// first payment is due one month after startDate and the last period absorbs
// rounding so the balance reaches exactly zero.
func AmortizationSchedule(
	principal, annualRatePercent decimal.Decimal,
	termMonths int,
	startDate time.Time,
) ([]AmortizationEntry, error) {
	monthlyPayment, err := MonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}
	if !principal.IsPositive() {
		return nil, nil
	}
	monthlyPayment = monthlyPayment.Round(2)
	rate := MonthlyRate(annualRatePercent)

	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := monthlyPayment.Sub(interest)

		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule, nil
}
