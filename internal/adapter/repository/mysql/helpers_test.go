package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loanDomain "loan-portal/internal/domain/loan"
	"loan-portal/internal/testutil/testdb"
	"loan-portal/pkg/id"
)

const (
	userA = "0f8fad5b-d9cb-469f-a165-70867728950e"
	userB = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testdb.Open(t)
}

func makeLoan(userID string, status loanDomain.Status) *loanDomain.Loan {
	now := time.Now().UTC()
	return &loanDomain.Loan{
		LoanID:          id.NewID32(),
		UserID:          userID,
		LoanType:        loanDomain.TypePersonal,
		LoanAmount:      decimal.NewFromInt(10_000),
		TermMonths:      12,
		InterestRate:    decimal.RequireFromString("8.99"),
		Purpose:         "car repair",
		Applicant:       loanDomain.Applicant{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Status:          status,
		PaidAmount:      decimal.Zero,
		SubmittedAt:     now,
		StatusUpdatedAt: now,
	}
}

func mustCreateLoan(t *testing.T, db *gorm.DB, l *loanDomain.Loan) *loanDomain.Loan {
	t.Helper()
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}
