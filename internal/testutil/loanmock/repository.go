package loanmock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "loan-portal/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error, reads to context.Canceled.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListByUserFn           func(ctx context.Context, userID string) ([]domain.Loan, error)
	ListByStatusFn         func(ctx context.Context, status domain.Status) ([]domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	ApplyPaymentFn         func(ctx context.Context, l *domain.Loan, expectedPaid decimal.Decimal) error
	MarkOverdueFn          func(ctx context.Context, now time.Time) (int64, error)
	UsersWithLateLoansFn   func(ctx context.Context) ([]string, error)
	StatsFn                func(ctx context.Context) ([]domain.Stats, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ApplyPayment(ctx context.Context, l *domain.Loan, expectedPaid decimal.Decimal) error {
	if m.ApplyPaymentFn != nil {
		return m.ApplyPaymentFn(ctx, l, expectedPaid)
	}
	return nil
}

func (m *Repo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkOverdueFn != nil {
		return m.MarkOverdueFn(ctx, now)
	}
	return 0, context.Canceled
}

func (m *Repo) UsersWithLateLoans(ctx context.Context) ([]string, error) {
	if m.UsersWithLateLoansFn != nil {
		return m.UsersWithLateLoansFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Stats(ctx context.Context) ([]domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return nil, context.Canceled
}
