package uowmock

import (
	"context"
	"errors"
	"testing"

	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/uow"
	"loan-portal/internal/testutil/decisionmock"
	"loan-portal/internal/testutil/loanmock"
)

func TestUoW_Unimplemented(t *testing.T) {
	m := &UoW{}
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx: want errUnimplemented, got %v", err)
	}
	if err := m.WithinLoanTx(context.Background(), "x", func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_WithinTx(t *testing.T) {
	loans := &loanmock.Repo{}
	decisions := &decisionmock.Repo{}
	m := Passthrough(uow.Repos{Loans: loans, Decisions: decisions})

	innerCalled := false
	err := m.WithinTx(context.Background(), func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Decisions != decisions {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil || !innerCalled {
		t.Fatalf("WithinTx: err=%v called=%v", err, innerCalled)
	}
}

func TestPassthrough_WithinLoanTx(t *testing.T) {
	want := &loan.Loan{ID: 7, LoanID: "LN-7"}
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, loanID string) (*loan.Loan, error) {
			if loanID != "LN-7" {
				return nil, errors.New("no rows")
			}
			return want, nil
		},
	}
	m := Passthrough(uow.Repos{Loans: loans})

	var got *loan.Loan
	if err := m.WithinLoanTx(context.Background(), "LN-7", func(_ uow.Repos, l *loan.Loan) error {
		got = l
		return nil
	}); err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if got != want {
		t.Fatalf("WithinLoanTx: loan not forwarded")
	}

	called := false
	err := m.WithinLoanTx(context.Background(), "missing", func(uow.Repos, *loan.Loan) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("WithinLoanTx missing: err=%v called=%v", err, called)
	}
}
