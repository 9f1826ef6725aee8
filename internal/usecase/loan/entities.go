package loan

import (
	"github.com/shopspring/decimal"

	"loan-portal/internal/domain/loan"
)

type SubmitInput struct {
	UserID     string
	LoanType   loan.Type
	LoanAmount decimal.Decimal
	TermMonths int
	// InterestRate defaults to the product rate when nil.
	InterestRate *decimal.Decimal
	Purpose      string
	Applicant    loan.Applicant
}

// LoanDTO is a loan with its derived figures.
type LoanDTO struct {
	loan.Loan
	Outstanding    decimal.Decimal `json:"outstanding"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

type Report struct {
	ByStatus          []loan.Stats    `json:"by_status"`
	TotalApplications int64           `json:"total_applications"`
	Waiting           int64           `json:"waiting"`
	Accepted          int64           `json:"accepted"`
	Rejected          int64           `json:"rejected"`
	Paid              int64           `json:"paid"`
	TotalRequested    decimal.Decimal `json:"total_requested"`
	TotalDisbursed    decimal.Decimal `json:"total_disbursed"`
	TotalRepaid       decimal.Decimal `json:"total_repaid"`
}
