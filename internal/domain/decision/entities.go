package decision

import (
	"time"

	"loan-portal/internal/domain/loan"
)

// Table: loan_decisions
type Decision struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	DecisionID string `gorm:"column:decision_id;size:32;not null;uniqueIndex:ux_decisions_decision_id" json:"decision_id"`
	// FK to loan_applications.id; at most one decision per loan
	LoanID     uint64      `gorm:"column:loan_id;not null;uniqueIndex:ux_decisions_loan" json:"-"`
	ReviewerID string      `gorm:"column:reviewer_id;size:36;not null" json:"reviewer_id"`
	Outcome    loan.Status `gorm:"column:decision;size:16;not null" json:"decision"`
	Reason     string      `gorm:"column:reason;type:text" json:"reason,omitempty"`
	DecidedAt  time.Time   `gorm:"column:decided_at;not null" json:"decided_at"`
}

func (Decision) TableName() string { return "loan_decisions" }
