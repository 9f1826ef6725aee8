package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"loan-portal/internal/domain/event"
)

const channelPrefix = "events:user:"

func Channel(userID string) string { return channelPrefix + userID }

// Bus publishes and subscribes to per-user Redis pub/sub channels.
type Bus struct {
	rdb *redis.Client
	log *zap.Logger
}

var _ event.Publisher = (*Bus)(nil)

func NewBus(rdb *redis.Client, log *zap.Logger) *Bus {
	return &Bus{rdb: rdb, log: log.Named("events")}
}

func (b *Bus) Publish(ctx context.Context, userID string, kind event.Kind, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	msg, err := json.Marshal(event.Event{Kind: kind, UserID: userID, Payload: raw, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, Channel(userID), msg).Err()
}

// Subscribe streams events for userID until ctx is done or the returned
// close func is called. Malformed messages are logged and skipped.
func (b *Bus) Subscribe(ctx context.Context, userID string) (<-chan event.Event, func() error, error) {
	ps := b.rdb.Subscribe(ctx, Channel(userID))
	// wait for the subscription to be confirmed so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, err
	}

	out := make(chan event.Event, 16)
	go func() {
		defer close(out)
		in := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				var ev event.Event
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.log.Warn("drop malformed event", zap.String("channel", m.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, ps.Close, nil
}
