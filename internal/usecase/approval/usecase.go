package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
	"loan-portal/internal/domain/decision"
	"loan-portal/internal/domain/event"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/notification"
	"loan-portal/internal/domain/uow"
	"loan-portal/pkg/id"
)

// Notifier tells the applicant about a rejection.
type Notifier interface {
	Rejected(ctx context.Context, userID, loanID string, amount decimal.Decimal, reason string) *notification.Notification
}

type Usecase struct {
	uow      uow.UnitOfWork
	notifier Notifier
	pub      event.Publisher
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, n Notifier, pub event.Publisher, log *zap.Logger) *Usecase {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &Usecase{uow: tx, notifier: n, pub: pub, log: log.Named("approval"), now: func() time.Time { return time.Now().UTC() }}
}

// decide moves a waiting loan to outcome and records the decision in the
// same transaction, with the loan row locked.
func (u *Usecase) decide(ctx context.Context, loanID, reviewerID string, outcome loan.Status, reason string) (*DecisionDTO, *loan.Loan, error) {
	if u.uow == nil {
		return nil, nil, apperr.Transition("no unit of work configured")
	}
	var (
		dto     *DecisionDTO
		decided loan.Loan
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		// State guard: only waiting -> accepted | rejected
		if l.Status != loan.StatusWaiting || !loan.CanTransition(l.Status, outcome) {
			return apperr.Transition("loan %s is %s; only waiting applications can be %s", l.LoanID, l.Status, outcome)
		}

		_, err := r.Decisions.GetByLoanID(ctx, l.ID)
		switch {
		case err == nil:
			return apperr.Transition("loan %s already has a decision", l.LoanID)
		case !errors.Is(err, apperr.ErrNotFound):
			// real query error → surface upward
			return err
		}

		now := u.now()
		d := &decision.Decision{
			DecisionID: id.NewID32(),
			LoanID:     l.ID,
			ReviewerID: reviewerID,
			Outcome:    outcome,
			Reason:     reason,
			DecidedAt:  now,
		}
		if err := r.Decisions.Create(ctx, d); err != nil {
			return err
		}

		l.Status = outcome
		l.StatusUpdatedAt = now
		switch outcome {
		case loan.StatusAccepted:
			due := now.AddDate(0, 1, 0)
			l.NextPaymentDue = &due
		case loan.StatusRejected:
			l.RejectionReason = &reason
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		decided = *l
		dto = &DecisionDTO{
			DecisionID:     d.DecisionID,
			LoanID:         l.LoanID,
			Status:         outcome,
			Reason:         reason,
			NextPaymentDue: l.NextPaymentDue,
			DecidedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if err := u.pub.Publish(ctx, decided.UserID, event.KindLoanUpdated, dto); err != nil {
		u.log.Debug("loan event publish failed", zap.String("loan_id", decided.LoanID), zap.Error(err))
	}
	return dto, &decided, nil
}

func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*DecisionDTO, error) {
	dto, l, err := u.decide(ctx, in.LoanID, in.ReviewerID, loan.StatusAccepted, "")
	if err != nil {
		return nil, err
	}
	u.log.Info("loan approved", zap.String("loan_id", l.LoanID), zap.String("reviewer_id", in.ReviewerID))
	return dto, nil
}

// Reject requires a non-blank reason; it is checked before any state is read.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*DecisionDTO, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, apperr.Validation("rejection reason is required")
	}
	dto, l, err := u.decide(ctx, in.LoanID, in.ReviewerID, loan.StatusRejected, reason)
	if err != nil {
		return nil, err
	}
	u.log.Info("loan rejected", zap.String("loan_id", l.LoanID), zap.String("reviewer_id", in.ReviewerID))
	if u.notifier != nil {
		u.notifier.Rejected(ctx, l.UserID, l.LoanID, l.LoanAmount, reason)
	}
	return dto, nil
}
