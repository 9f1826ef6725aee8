package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	txDomain "loan-portal/internal/domain/transaction"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	return classify(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TransactionRepository) ListByLoan(ctx context.Context, loanID uint64) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.withPublicLoanID(ctx).
		Where("transactions.loan_id = ?", loanID).
		Order("transactions.created_at ASC, transactions.id ASC").
		Find(&out)
	return out, classify(res.Error)
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.withPublicLoanID(ctx).
		Where("transactions.user_id = ?", userID).
		Order("transactions.created_at DESC, transactions.id DESC").
		Find(&out)
	return out, classify(res.Error)
}

// SumByLoan adds amounts in decimal so the result compares exactly with
// the loan's paid_amount.
func (r *TransactionRepository) SumByLoan(ctx context.Context, loanID uint64) (decimal.Decimal, int64, error) {
	var amounts []decimal.Decimal
	res := r.db.WithContext(ctx).
		Model(&txDomain.Transaction{}).
		Where("loan_id = ?", loanID).
		Pluck("amount", &amounts)
	if res.Error != nil {
		return decimal.Zero, 0, classify(res.Error)
	}
	return decimal.Sum(decimal.Zero, amounts...), int64(len(amounts)), nil
}

func (r *TransactionRepository) withPublicLoanID(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&txDomain.Transaction{}).
		Select("transactions.*, loan_applications.loan_id AS public_loan_id").
		Joins("JOIN loan_applications ON loan_applications.id = transactions.loan_id")
}
