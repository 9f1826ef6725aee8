package decisionmock

import (
	"context"
	"errors"
	"testing"

	domain "loan-portal/internal/domain/decision"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	d := &domain.Decision{DecisionID: "DEC-1", LoanID: 123}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Decision) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("ctx mismatch")
			}
			if got != d {
				t.Fatalf("arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, d); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, d); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByLoanID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Decision{DecisionID: "DEC-2", LoanID: 456}

	m := &Repo{
		GetByLoanIDFn: func(_ context.Context, id uint64) (*domain.Decision, error) {
			if id != 456 {
				t.Fatalf("loanNumericID mismatch: got %d", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByLoanID(ctx, 456)
	if err != nil || got != want {
		t.Fatalf("GetByLoanID: got %+v, %v", got, err)
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	got, err = m.GetByLoanID(ctx, 999)
	if err != context.Canceled {
		t.Fatalf("GetByLoanID default: want context.Canceled, got %v", err)
	}
	if got != nil {
		t.Fatalf("GetByLoanID default: want nil, got %+v", got)
	}
}
