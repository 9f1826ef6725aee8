package transaction

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	ListByLoan(ctx context.Context, loanID uint64) ([]Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	// SumByLoan returns the total amount and row count for a loan.
	SumByLoan(ctx context.Context, loanID uint64) (decimal.Decimal, int64, error)
}
