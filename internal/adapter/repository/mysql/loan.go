package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loan-portal/internal/domain/apperr"
	loanDomain "loan-portal/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return classify(r.db.WithContext(ctx).Create(l).Error)
}

// lifecycleColumns are the only columns Save may touch; paid_amount moves
// through ApplyPayment.
var lifecycleColumns = []string{"status", "rejection_reason", "next_payment_due", "is_late", "status_updated_at"}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return classify(r.db.WithContext(ctx).Model(l).Select(lifecycleColumns).Updates(l).Error)
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, classify(res.Error)
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, classify(res.Error)
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC, id DESC").
		Find(&out)
	return out, classify(res.Error)
}

// ListByStatus returns the review queue, oldest first. An empty status
// lists every loan.
func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []loanDomain.Loan
	res := q.Order("submitted_at ASC, id ASC").Find(&out)
	return out, classify(res.Error)
}

func (r *LoanRepository) ApplyPayment(ctx context.Context, l *loanDomain.Loan, expectedPaid decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND paid_amount = ?", l.ID, expectedPaid).
		Updates(map[string]any{
			"paid_amount":       l.PaidAmount,
			"status":            l.Status,
			"next_payment_due":  l.NextPaymentDue,
			"is_late":           l.IsLate,
			"status_updated_at": l.StatusUpdatedAt,
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Transient(errConcurrentUpdate)
	}
	return nil
}

func (r *LoanRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("status = ? AND is_late = ? AND next_payment_due < ?", loanDomain.StatusAccepted, false, now).
		Update("is_late", true)
	return res.RowsAffected, classify(res.Error)
}

func (r *LoanRepository) UsersWithLateLoans(ctx context.Context) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("is_late = ?", true).
		Distinct().
		Order("user_id").
		Pluck("user_id", &out)
	return out, classify(res.Error)
}

func (r *LoanRepository) Stats(ctx context.Context) ([]loanDomain.Stats, error) {
	var out []loanDomain.Stats
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(loan_amount), 0) AS total_amount, COALESCE(SUM(paid_amount), 0) AS total_paid").
		Group("status").
		Order("status").
		Scan(&out)
	return out, classify(res.Error)
}
