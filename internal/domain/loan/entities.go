package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

type Type string

const (
	TypePersonal Type = "personal"
	TypeBusiness Type = "business"
	TypeHome     Type = "home"
	TypeAuto     Type = "auto"
)

// Types lists every loan type in display order.
var Types = []Type{TypePersonal, TypeBusiness, TypeHome, TypeAuto}

func (t Type) Valid() bool {
	switch t {
	case TypePersonal, TypeBusiness, TypeHome, TypeAuto:
		return true
	}
	return false
}

// Applicant is the snapshot of the customer's details taken at submission.
type Applicant struct {
	FirstName        string          `gorm:"size:100" json:"first_name"`
	LastName         string          `gorm:"size:100" json:"last_name"`
	Email            string          `gorm:"size:255" json:"email"`
	Phone            string          `gorm:"size:32" json:"phone"`
	Address          string          `gorm:"size:255" json:"address"`
	City             string          `gorm:"size:100" json:"city"`
	State            string          `gorm:"size:100" json:"state"`
	ZipCode          string          `gorm:"size:16" json:"zip_code"`
	EmploymentStatus string          `gorm:"size:32" json:"employment_status"`
	EmployerName     string          `gorm:"size:255" json:"employer_name"`
	MonthlyIncome    decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_income"`
	YearsEmployed    int             `json:"years_employed"`
}

// Table: loan_applications
type Loan struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID          string          `gorm:"size:36;index:idx_loans_user" json:"user_id"`
	LoanType        Type            `gorm:"size:16" json:"loan_type"`
	LoanAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"loan_amount"`
	TermMonths      int             `json:"term_months"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	Purpose         string          `gorm:"type:text" json:"purpose"`
	Applicant       Applicant       `gorm:"embedded" json:"applicant"`
	Status          Status          `gorm:"size:16;index:idx_loans_status" json:"status"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"paid_amount"`
	IsLate          bool            `gorm:"index:idx_loans_late" json:"is_late"`
	NextPaymentDue  *time.Time      `json:"next_payment_due,omitempty"`
	SubmittedAt     time.Time       `gorm:"<-:create" json:"submitted_at"`
	StatusUpdatedAt time.Time       `json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loan_applications" }

// Outstanding is loan_amount - paid_amount.
func (l *Loan) Outstanding() decimal.Decimal {
	return l.LoanAmount.Sub(l.PaidAmount)
}

// CanTransition reports whether the lifecycle allows from -> to.
//
//	waiting  -> accepted | rejected
//	accepted -> accepted | paid   (payment ledger only)
func CanTransition(from, to Status) bool {
	switch from {
	case StatusWaiting:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted:
		return to == StatusAccepted || to == StatusPaid
	}
	return false
}

// Stats is the staff report aggregate for one status.
type Stats struct {
	Status      Status          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}
