package mysql

import (
	"context"

	"gorm.io/gorm"

	notifDomain "loan-portal/internal/domain/notification"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notifDomain.Notification) error {
	return classify(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]notifDomain.Notification, error) {
	var out []notifDomain.Notification
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, classify(res.Error)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&notifDomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n)
	return n, classify(res.Error)
}

// MarkRead is idempotent; marking an already read notification succeeds.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	var n notifDomain.Notification
	res := r.db.WithContext(ctx).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&n)
	if res.Error != nil {
		return classify(res.Error)
	}
	if n.Read {
		return nil
	}
	return classify(r.db.WithContext(ctx).Model(&n).Update("is_read", true).Error)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&notifDomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, classify(res.Error)
}
