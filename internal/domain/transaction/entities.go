package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentPartial PaymentType = "partial"
	PaymentFull    PaymentType = "full"
)

func (p PaymentType) Valid() bool {
	return p == PaymentPartial || p == PaymentFull
}

// Table: transactions. Rows are append-only.
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string          `gorm:"size:32;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	LoanID        uint64          `gorm:"not null;index:idx_transactions_loan" json:"-"`
	UserID        string          `gorm:"size:36;not null;index:idx_transactions_user" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaymentType   PaymentType     `gorm:"size:16;not null" json:"payment_type"`
	IsLate        bool            `json:"is_late"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// PublicLoanID is filled by list queries for API responses.
	PublicLoanID string `gorm:"->;-:migration;column:public_loan_id" json:"loan_id,omitempty"`
}

func (Transaction) TableName() string { return "transactions" }
