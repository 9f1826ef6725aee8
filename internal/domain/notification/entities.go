package notification

import "time"

// Table: notifications. Only Read is mutable.
type Notification struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string    `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string    `gorm:"size:36;not null;index:idx_notifications_user" json:"user_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	Read           bool      `gorm:"column:is_read;not null" json:"read"`
	LoanID         *string   `gorm:"size:32" json:"loan_id,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
