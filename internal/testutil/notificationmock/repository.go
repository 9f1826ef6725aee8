package notificationmock

import (
	"context"
	"sync"

	domain "loan-portal/internal/domain/notification"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. When
// CreateFn is nil, Create records the notification in Created.
type Repo struct {
	CreateFn      func(ctx context.Context, n *domain.Notification) error
	ListByUserFn  func(ctx context.Context, userID string) ([]domain.Notification, error)
	CountUnreadFn func(ctx context.Context, userID string) (int64, error)
	MarkReadFn    func(ctx context.Context, userID, notificationID string) error
	MarkAllReadFn func(ctx context.Context, userID string) (int64, error)

	mu      sync.Mutex
	Created []*domain.Notification
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, n)
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) CountUnread(ctx context.Context, userID string) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, userID)
	}
	return 0, context.Canceled
}

func (m *Repo) MarkRead(ctx context.Context, userID, notificationID string) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, userID, notificationID)
	}
	return context.Canceled
}

func (m *Repo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, userID)
	}
	return 0, context.Canceled
}
