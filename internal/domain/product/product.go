package product

import (
	"github.com/shopspring/decimal"

	"loan-portal/internal/domain/loan"
)

// Product is the offer behind a loan type: allowed amount range and the
// default annual interest rate in percent.
type Product struct {
	Type          loan.Type       `json:"type"`
	MinAmount     decimal.Decimal `json:"min_amount"`
	MaxAmount     decimal.Decimal `json:"max_amount"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
	Rate          decimal.Decimal `json:"rate"`
}

var catalog = map[loan.Type]Product{
	loan.TypePersonal: {loan.TypePersonal, decimal.NewFromInt(1_000), decimal.NewFromInt(50_000), decimal.NewFromInt(15_000), decimal.RequireFromString("8.99")},
	loan.TypeBusiness: {loan.TypeBusiness, decimal.NewFromInt(10_000), decimal.NewFromInt(500_000), decimal.NewFromInt(100_000), decimal.RequireFromString("9.50")},
	loan.TypeHome:     {loan.TypeHome, decimal.NewFromInt(50_000), decimal.NewFromInt(1_000_000), decimal.NewFromInt(250_000), decimal.RequireFromString("5.25")},
	loan.TypeAuto:     {loan.TypeAuto, decimal.NewFromInt(5_000), decimal.NewFromInt(100_000), decimal.NewFromInt(25_000), decimal.RequireFromString("6.75")},
}

// Lookup returns the product for t.
func Lookup(t loan.Type) (Product, bool) {
	p, ok := catalog[t]
	return p, ok
}

// All returns every product in loan.Types order.
func All() []Product {
	out := make([]Product, 0, len(loan.Types))
	for _, t := range loan.Types {
		out = append(out, catalog[t])
	}
	return out
}

// InRange reports whether amount is within [MinAmount, MaxAmount].
func (p Product) InRange(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount)
}
