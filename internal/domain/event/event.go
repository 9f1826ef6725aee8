package event

import (
	"context"
	"encoding/json"
	"time"
)

type Kind string

const (
	KindNotificationCreated Kind = "notification.created"
	KindTransactionCreated  Kind = "transaction.created"
	KindLoanUpdated         Kind = "loan.updated"
)

// Event is a realtime change pushed to one user's stream.
type Event struct {
	Kind    Kind            `json:"kind"`
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

// Publisher pushes changes to subscribers. Delivery is best effort and
// nothing may depend on it for correctness.
type Publisher interface {
	Publish(ctx context.Context, userID string, kind Kind, payload any) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Kind, any) error { return nil }
