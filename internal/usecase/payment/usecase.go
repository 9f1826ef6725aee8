package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
	"loan-portal/internal/domain/event"
	"loan-portal/internal/domain/identity"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/notification"
	"loan-portal/internal/domain/transaction"
	"loan-portal/internal/domain/uow"
	"loan-portal/pkg/id"
)

// FundsSource reports how much the payer can spend. Optional.
type FundsSource interface {
	Available(ctx context.Context, userID string) (decimal.Decimal, error)
}

type Notifier interface {
	PaymentReceived(ctx context.Context, userID, loanID string, amount, remaining decimal.Decimal) *notification.Notification
}

type ScoreNudger interface {
	Nudge(ctx context.Context, userID string) (int, error)
}

type Usecase struct {
	uow      uow.UnitOfWork
	loans    loan.Repository
	txs      transaction.Repository
	notifier Notifier
	scores   ScoreNudger
	funds    FundsSource
	pub      event.Publisher
	log      *zap.Logger

	maxRetries int
	backoff    time.Duration
	locks      keyedMutex
	now        func() time.Time
}

type Option func(*Usecase)

func WithFunds(f FundsSource) Option         { return func(u *Usecase) { u.funds = f } }
func WithPublisher(p event.Publisher) Option { return func(u *Usecase) { u.pub = p } }
func WithMaxRetries(n int) Option            { return func(u *Usecase) { u.maxRetries = n } }

func NewUsecase(tx uow.UnitOfWork, loans loan.Repository, txs transaction.Repository, n Notifier, s ScoreNudger, log *zap.Logger, opts ...Option) *Usecase {
	u := &Usecase{
		uow:        tx,
		loans:      loans,
		txs:        txs,
		notifier:   n,
		scores:     s,
		pub:        event.NopPublisher{},
		log:        log.Named("payment"),
		maxRetries: 3,
		backoff:    50 * time.Millisecond,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func validatePay(in PayInput) error {
	if !in.PaymentType.Valid() {
		return apperr.Validation("payment_type must be partial or full")
	}
	if in.PaymentType == transaction.PaymentFull {
		return nil
	}
	switch {
	case !in.Amount.IsPositive():
		return apperr.Validation("amount must be positive")
	case !in.Amount.Equal(in.Amount.Round(2)):
		return apperr.Validation("amount must have at most 2 decimal places")
	}
	return nil
}

// Pay applies one payment to an accepted loan owned by the caller. The
// balance update, the ledger row and the reconciliation check commit
// together; notification, score nudge and events follow best effort.
func (u *Usecase) Pay(ctx context.Context, in PayInput) (*Receipt, error) {
	if err := validatePay(in); err != nil {
		return nil, err
	}

	unlock, err := u.locks.Lock(ctx, in.LoanID)
	if err != nil {
		return nil, apperr.Transient(fmt.Errorf("wait for loan %s: %w", in.LoanID, err))
	}
	defer unlock()

	var rc *Receipt
	for attempt := 0; ; attempt++ {
		rc, err = u.payOnce(ctx, in)
		if err == nil || !apperr.IsTransient(err) || attempt >= u.maxRetries || ctx.Err() != nil {
			break
		}
		u.log.Warn("payment retry", zap.String("loan_id", in.LoanID), zap.Int("attempt", attempt+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, apperr.Transient(ctx.Err())
		case <-time.After(u.backoff * time.Duration(attempt+1)):
		}
	}
	if err != nil {
		return nil, err
	}

	u.afterCommit(ctx, in.UserID, rc)
	return rc, nil
}

func (u *Usecase) payOnce(ctx context.Context, in PayInput) (*Receipt, error) {
	var rc *Receipt
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if l.UserID != in.UserID {
			return fmt.Errorf("%w: loan %s belongs to another customer", apperr.ErrForbidden, l.LoanID)
		}
		if l.Status != loan.StatusAccepted {
			return apperr.Transition("loan %s is %s; payments require an accepted loan", l.LoanID, l.Status)
		}

		outstanding := l.Outstanding()
		amount := in.Amount
		if in.PaymentType == transaction.PaymentFull {
			amount = outstanding
		}
		if amount.GreaterThan(outstanding) {
			return fmt.Errorf("%w: amount %s exceeds outstanding %s",
				apperr.ErrInsufficientOutstanding, amount.StringFixed(2), outstanding.StringFixed(2))
		}
		if u.funds != nil {
			avail, err := u.funds.Available(ctx, in.UserID)
			if err != nil {
				return err
			}
			if avail.LessThan(amount) {
				return fmt.Errorf("%w: available %s, required %s",
					apperr.ErrInsufficientFunds, avail.StringFixed(2), amount.StringFixed(2))
			}
		}

		now := u.now()
		late := l.IsLate || (l.NextPaymentDue != nil && now.After(*l.NextPaymentDue))

		expected := l.PaidAmount
		l.PaidAmount = l.PaidAmount.Add(amount)
		l.IsLate = false
		if l.PaidAmount.Equal(l.LoanAmount) && loan.CanTransition(l.Status, loan.StatusPaid) {
			l.Status = loan.StatusPaid
			l.StatusUpdatedAt = now
			l.NextPaymentDue = nil
		} else {
			base := now
			if l.NextPaymentDue != nil {
				base = *l.NextPaymentDue
			}
			next := base.AddDate(0, 1, 0)
			l.NextPaymentDue = &next
		}

		t := &transaction.Transaction{
			TransactionID: id.NewID32(),
			LoanID:        l.ID,
			UserID:        l.UserID,
			Amount:        amount,
			PaymentType:   in.PaymentType,
			IsLate:        late,
			CreatedAt:     now,
			PublicLoanID:  l.LoanID,
		}
		if err := r.Transactions.Create(ctx, t); err != nil {
			return err
		}
		if err := r.Loans.ApplyPayment(ctx, l, expected); err != nil {
			return err
		}
		if err := u.verify(ctx, r.Transactions, l); err != nil {
			return err
		}

		rc = &Receipt{
			Transaction:    *t,
			LoanID:         l.LoanID,
			Status:         l.Status,
			PaidAmount:     l.PaidAmount,
			Outstanding:    l.Outstanding(),
			NextPaymentDue: l.NextPaymentDue,
		}
		return nil
	})
	return rc, err
}

// verify enforces sum(transactions) == paid_amount before commit.
func (u *Usecase) verify(ctx context.Context, txs transaction.Repository, l *loan.Loan) error {
	sum, n, err := txs.SumByLoan(ctx, l.ID)
	if err != nil {
		return err
	}
	if !sum.Equal(l.PaidAmount) {
		u.log.Error("reconciliation mismatch",
			zap.String("loan_id", l.LoanID),
			zap.String("paid_amount", l.PaidAmount.String()),
			zap.String("transaction_sum", sum.String()),
			zap.Int64("transaction_count", n))
		return fmt.Errorf("%w: loan %s paid_amount %s, transactions sum %s",
			apperr.ErrReconciliation, l.LoanID, l.PaidAmount.StringFixed(2), sum.StringFixed(2))
	}
	return nil
}

func (u *Usecase) afterCommit(ctx context.Context, userID string, rc *Receipt) {
	u.log.Info("payment applied",
		zap.String("loan_id", rc.LoanID),
		zap.String("transaction_id", rc.Transaction.TransactionID),
		zap.String("amount", rc.Transaction.Amount.String()),
		zap.String("status", string(rc.Status)))

	if u.notifier != nil {
		u.notifier.PaymentReceived(ctx, userID, rc.LoanID, rc.Transaction.Amount, rc.Outstanding)
	}
	if u.scores != nil {
		if _, err := u.scores.Nudge(ctx, userID); err != nil {
			u.log.Warn("credit score nudge failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if err := u.pub.Publish(ctx, userID, event.KindTransactionCreated, rc.Transaction); err != nil {
		u.log.Debug("transaction publish failed", zap.Error(err))
	}
	if err := u.pub.Publish(ctx, userID, event.KindLoanUpdated, rc); err != nil {
		u.log.Debug("loan publish failed", zap.Error(err))
	}
}

// Reconcile compares a loan's paid_amount with its ledger. A mismatch is
// reported, never corrected.
func (u *Usecase) Reconcile(ctx context.Context, loanID string) (*Reconciliation, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	sum, n, err := u.txs.SumByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	rec := &Reconciliation{
		LoanID:           l.LoanID,
		PaidAmount:       l.PaidAmount,
		TransactionSum:   sum,
		TransactionCount: n,
		Balanced:         sum.Equal(l.PaidAmount),
	}
	if !rec.Balanced {
		u.log.Error("reconciliation mismatch",
			zap.String("loan_id", l.LoanID),
			zap.String("paid_amount", l.PaidAmount.String()),
			zap.String("transaction_sum", sum.String()))
		return rec, fmt.Errorf("%w: loan %s", apperr.ErrReconciliation, l.LoanID)
	}
	return rec, nil
}

// ListTransactions returns a loan's ledger if the caller may see the loan.
func (u *Usecase) ListTransactions(ctx context.Context, s identity.Session, loanID string) ([]transaction.Transaction, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.CanAccess(l.UserID) {
		return nil, apperr.ErrNotFound
	}
	return u.txs.ListByLoan(ctx, l.ID)
}

func (u *Usecase) ListMine(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	return u.txs.ListByUser(ctx, userID)
}
