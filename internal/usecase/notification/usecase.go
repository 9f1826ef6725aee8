package notification

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/event"
	domain "loan-portal/internal/domain/notification"
	"loan-portal/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	pub  event.Publisher
	log  *zap.Logger
}

func NewUsecase(repo domain.Repository, pub event.Publisher, log *zap.Logger) *Usecase {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &Usecase{repo: repo, pub: pub, log: log.Named("notification")}
}

// Emit records a notification and pushes it to the user's stream. Failures
// are logged and swallowed; the triggering operation has already committed.
func (u *Usecase) Emit(ctx context.Context, userID, title, message string, loanID string) *domain.Notification {
	n := &domain.Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Title:          title,
		Message:        message,
	}
	if loanID != "" {
		n.LoanID = &loanID
	}
	if err := u.repo.Create(ctx, n); err != nil {
		u.log.Warn("notification write failed",
			zap.String("user_id", userID), zap.String("title", title), zap.Error(err))
		return nil
	}
	if err := u.pub.Publish(ctx, userID, event.KindNotificationCreated, n); err != nil {
		u.log.Debug("notification publish failed", zap.String("notification_id", n.NotificationID), zap.Error(err))
	}
	return n
}

// Rejected notifies the owner that their application was declined.
func (u *Usecase) Rejected(ctx context.Context, userID, loanID string, amount decimal.Decimal, reason string) *domain.Notification {
	return u.Emit(ctx, userID, "Loan application rejected",
		fmt.Sprintf("Your loan application for %s was rejected. Reason: %s", amount.StringFixed(2), reason),
		loanID)
}

// PaymentReceived notifies the owner of a successful payment.
func (u *Usecase) PaymentReceived(ctx context.Context, userID, loanID string, amount, remaining decimal.Decimal) *domain.Notification {
	msg := fmt.Sprintf("Payment of %s received. Remaining balance: %s", amount.StringFixed(2), remaining.StringFixed(2))
	if remaining.IsZero() {
		msg = fmt.Sprintf("Payment of %s received. Full payment completed, your loan is paid off.", amount.StringFixed(2))
	}
	return u.Emit(ctx, userID, "Payment successful", msg, loanID)
}

func (u *Usecase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return u.repo.ListByUser(ctx, userID)
}

func (u *Usecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return u.repo.CountUnread(ctx, userID)
}

func (u *Usecase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return u.repo.MarkRead(ctx, userID, notificationID)
}

func (u *Usecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return u.repo.MarkAllRead(ctx, userID)
}
