package emi

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-portal/internal/domain/apperr"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_ZeroRate(t *testing.T) {
	got, err := Calculate(dec("10000"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.Equal(t, "833.33", got.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "10000.00", got.TotalPayment.StringFixed(2))
	assert.Equal(t, "0.00", got.TotalInterest.StringFixed(2))
}

func TestCalculate_ClosedForm(t *testing.T) {
	got, err := Calculate(dec("25000"), dec("8.5"), 36)
	require.NoError(t, err)

	m := 8.5 / 100 / 12
	f := math.Pow(1+m, 36)
	want := 25000 * m * f / (f - 1)

	assert.Equal(t, decimal.NewFromFloat(want).StringFixed(2), got.MonthlyPayment.StringFixed(2))
	assert.InDelta(t, want*36, got.TotalPayment.InexactFloat64(), 0.01)
	assert.True(t, got.TotalInterest.Equal(got.TotalPayment.Sub(dec("25000"))))
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		months    int
	}{
		{"zero term", "1000", "5", 0},
		{"negative term", "1000", "5", -3},
		{"negative principal", "-1", "5", 12},
		{"negative rate", "1000", "-0.5", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(dec(tt.principal), dec(tt.rate), tt.months)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSchedule_SettlesToZero(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	rows, err := Schedule(dec("15000"), dec("8.99"), 36, start)
	require.NoError(t, err)
	require.Len(t, rows, 36)

	sum := decimal.Zero
	for i, r := range rows {
		assert.Equal(t, i+1, r.Period)
		assert.True(t, r.Total.Equal(r.Principal.Add(r.Interest)))
		sum = sum.Add(r.Principal)
	}
	assert.True(t, sum.Equal(dec("15000")), "principal sum = %s", sum)
	assert.True(t, rows[35].RemainingBalance.IsZero())
	assert.Equal(t, start.AddDate(0, 1, 0), rows[0].DueDate)
	assert.Equal(t, start.AddDate(0, 36, 0), rows[35].DueDate)
}

func TestSchedule_ZeroRate(t *testing.T) {
	rows, err := Schedule(dec("1000"), decimal.Zero, 3, time.Now())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "333.33", rows[0].Total.StringFixed(2))
	assert.Equal(t, "333.34", rows[2].Total.StringFixed(2))
	assert.True(t, rows[2].RemainingBalance.IsZero())
}

func TestSchedule_InvalidInput(t *testing.T) {
	_, err := Schedule(dec("1000"), dec("5"), 0, time.Now())
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
