// Package emi computes equated monthly instalments and amortization
// schedules for fixed-rate loans.
package emi

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"loan-portal/internal/domain/apperr"
)

// Result holds the EMI figures rounded to 2 decimal places.
type Result struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// Entry is one period of an amortization schedule.
type Entry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

func validate(principal, annualRatePct decimal.Decimal, months int) error {
	switch {
	case months <= 0:
		return apperr.Validation("term must be a positive number of months")
	case principal.IsNegative():
		return apperr.Validation("principal must not be negative")
	case annualRatePct.IsNegative():
		return apperr.Validation("interest rate must not be negative")
	}
	return nil
}

// monthly returns the unrounded instalment:
//
//	m = r/100/12
//	P*m*(1+m)^n / ((1+m)^n - 1), or P/n when r == 0
func monthly(principal, annualRatePct decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if annualRatePct.IsZero() {
		return principal.Div(n)
	}
	m := annualRatePct.InexactFloat64() / 100 / 12
	factor := math.Pow(1+m, float64(months))
	return decimal.NewFromFloat(principal.InexactFloat64() * m * factor / (factor - 1))
}

// Calculate returns the monthly payment, total payment and total interest.
// The total is derived from the unrounded monthly figure before rounding.
func Calculate(principal, annualRatePct decimal.Decimal, months int) (Result, error) {
	if err := validate(principal, annualRatePct, months); err != nil {
		return Result{}, err
	}
	pm := monthly(principal, annualRatePct, months)
	total := pm.Mul(decimal.NewFromInt(int64(months))).Round(2)
	return Result{
		MonthlyPayment: pm.Round(2),
		TotalPayment:   total,
		TotalInterest:  total.Sub(principal).Round(2),
	}, nil
}

// Schedule builds the amortization table; the first instalment is due one
// month after start. The last period absorbs rounding so the remaining
// balance ends at exactly zero.
func Schedule(principal, annualRatePct decimal.Decimal, months int, start time.Time) ([]Entry, error) {
	if err := validate(principal, annualRatePct, months); err != nil {
		return nil, err
	}
	payment := monthly(principal, annualRatePct, months).Round(2)
	rate := annualRatePct.Div(hundred).Div(twelve)

	out := make([]Entry, 0, months)
	remaining := principal
	for period := 1; period <= months; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)
		if period == months || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		out = append(out, Entry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}
	return out, nil
}
