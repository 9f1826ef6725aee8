package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	// Save persists lifecycle fields (status, rejection reason, due date, late flag).
	Save(ctx context.Context, l *Loan) error
	// ApplyPayment moves paid_amount from expectedPaid to l.PaidAmount; it fails
	// when another writer changed paid_amount in between.
	ApplyPayment(ctx context.Context, l *Loan, expectedPaid decimal.Decimal) error
	// MarkOverdue flags accepted loans whose next payment is past due.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	UsersWithLateLoans(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]Stats, error)
}
