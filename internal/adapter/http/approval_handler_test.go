package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"loan-portal/internal/domain/apperr"
	"loan-portal/internal/domain/decision"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/notification"
	"loan-portal/internal/domain/uow"
	"loan-portal/internal/testutil/decisionmock"
	"loan-portal/internal/testutil/loanmock"
	"loan-portal/internal/testutil/uowmock"
	"loan-portal/internal/usecase/approval"
)

type rejectedNotes struct{ n int }

func (r *rejectedNotes) Rejected(context.Context, string, string, decimal.Decimal, string) *notification.Notification {
	r.n++
	return &notification.Notification{}
}

func newApprovalHandler(status loan.Status, notes *rejectedNotes) (*ApprovalHandler, *int) {
	saves := 0
	loans := &loanmock.Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, id string) (*loan.Loan, error) {
			return &loan.Loan{ID: 9, LoanID: id, UserID: customerID, Status: status, LoanAmount: decimal.NewFromInt(15000)}, nil
		},
		SaveFn: func(context.Context, *loan.Loan) error { saves++; return nil },
	}
	decisions := &decisionmock.Repo{
		GetByLoanIDFn: func(context.Context, uint64) (*decision.Decision, error) {
			return nil, fmt.Errorf("%w: record not found", apperr.ErrNotFound)
		},
		CreateFn: func(context.Context, *decision.Decision) error { return nil },
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Decisions: decisions})
	return NewApprovalHandler(approval.NewUsecase(tx, notes, nil, nop), nop), &saves
}

var pendingID = strings.Repeat("c", 32)

func TestApproveLoan(t *testing.T) {
	e := newEchoWithValidator()

	t.Run("waiting loan is accepted", func(t *testing.T) {
		h, saves := newApprovalHandler(loan.StatusWaiting, nil)
		c, rec := newCtx(e, http.MethodPost, "/staff/loans/"+pendingID+"/approve", nil, staff, "loan_id", pendingID)
		if err := h.Approve(c); err != nil {
			t.Fatalf("Approve error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
		}
		dto := decode[approval.DecisionDTO](t, rec)
		if dto.Status != loan.StatusAccepted || dto.NextPaymentDue == nil || dto.LoanID != pendingID {
			t.Fatalf("unexpected dto: %+v", dto)
		}
		if *saves != 1 {
			t.Fatalf("loan saved %d times, want 1", *saves)
		}
	})

	t.Run("already decided", func(t *testing.T) {
		h, saves := newApprovalHandler(loan.StatusRejected, nil)
		c, rec := newCtx(e, http.MethodPost, "/", nil, staff, "loan_id", pendingID)
		if err := h.Approve(c); err != nil {
			t.Fatalf("Approve error: %v", err)
		}
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		if *saves != 0 {
			t.Fatalf("no mutation expected, saved %d times", *saves)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		h, _ := newApprovalHandler(loan.StatusWaiting, nil)
		c, rec := newCtx(e, http.MethodPost, "/", nil, staff, "loan_id", "xyz")
		if err := h.Approve(c); err != nil {
			t.Fatalf("Approve error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestRejectLoan(t *testing.T) {
	e := newEchoWithValidator()

	tests := []struct {
		name      string
		body      any
		want      int
		wantNotes int
	}{
		{"missing reason", map[string]any{}, http.StatusUnprocessableEntity, 0},
		{"blank reason", map[string]any{"reason": "   "}, http.StatusUnprocessableEntity, 0},
		{"with reason", map[string]any{"reason": "insufficient income"}, http.StatusOK, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &rejectedNotes{}
			h, saves := newApprovalHandler(loan.StatusWaiting, notes)
			c, rec := newCtx(e, http.MethodPost, "/", tt.body, staff, "loan_id", pendingID)
			if err := h.Reject(c); err != nil {
				t.Fatalf("Reject error: %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d, body=%s", rec.Code, tt.want, rec.Body.String())
			}
			if notes.n != tt.wantNotes || *saves != tt.wantNotes {
				t.Fatalf("notes=%d saves=%d, want %d", notes.n, *saves, tt.wantNotes)
			}
		})
	}
}
