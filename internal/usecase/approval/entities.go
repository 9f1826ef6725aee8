package approval

import (
	"time"

	"loan-portal/internal/domain/loan"
)

type ApproveInput struct {
	LoanID     string
	ReviewerID string
}

type RejectInput struct {
	LoanID     string
	ReviewerID string
	Reason     string
}

type DecisionDTO struct {
	DecisionID     string      `json:"decision_id"`
	LoanID         string      `json:"loan_id"`
	Status         loan.Status `json:"status"`
	Reason         string      `json:"reason,omitempty"`
	NextPaymentDue *time.Time  `json:"next_payment_due,omitempty"`
	DecidedAt      time.Time   `json:"decided_at"`
}
