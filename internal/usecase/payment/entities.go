package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/transaction"
)

type PayInput struct {
	UserID      string
	LoanID      string
	Amount      decimal.Decimal
	PaymentType transaction.PaymentType
}

type Receipt struct {
	Transaction    transaction.Transaction `json:"transaction"`
	LoanID         string                  `json:"loan_id"`
	Status         loan.Status             `json:"status"`
	PaidAmount     decimal.Decimal         `json:"paid_amount"`
	Outstanding    decimal.Decimal         `json:"outstanding"`
	NextPaymentDue *time.Time              `json:"next_payment_due,omitempty"`
}

type Reconciliation struct {
	LoanID           string          `json:"loan_id"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	TransactionSum   decimal.Decimal `json:"transaction_sum"`
	TransactionCount int64           `json:"transaction_count"`
	Balanced         bool            `json:"balanced"`
}
