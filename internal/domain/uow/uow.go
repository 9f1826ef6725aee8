package uow

import (
	"context"

	"loan-portal/internal/domain/creditscore"
	"loan-portal/internal/domain/decision"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/transaction"
)

// Repos are bound to one database transaction.
type Repos struct {
	Loans        loan.Repository
	Decisions    decision.Repository
	Transactions transaction.Repository
	Scores       creditscore.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
