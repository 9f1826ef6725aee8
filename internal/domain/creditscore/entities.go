package creditscore

import (
	"context"
	"time"
)

// Table: credit_scores. One row per user, upserted on user_id.
type CreditScore struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:ux_credit_scores_user" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CreditScore) TableName() string { return "credit_scores" }

type Repository interface {
	// Get reports gorm.ErrRecordNotFound when the user has no score yet.
	Get(ctx context.Context, userID string) (*CreditScore, error)
	Upsert(ctx context.Context, s *CreditScore) error
	// Adjust applies delta atomically against the stored value so
	// concurrent adjustments all land.
	Adjust(ctx context.Context, userID string, delta, base, lo, hi int, at time.Time) (int, error)
}
