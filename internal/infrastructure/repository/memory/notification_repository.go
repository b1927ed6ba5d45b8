package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/notification"
)

type NotificationRepository struct {
	mu    sync.Mutex
	items []notification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateBatch(_ context.Context, items []notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		copied := item
		if item.ReadAt != nil {
			readAt := *item.ReadAt
			copied.ReadAt = &readAt
		}
		r.items = append(r.items, copied)
	}
	return nil
}

func (r *NotificationRepository) ListUnread(_ context.Context, userID string) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]notification.Notification, 0)
	for _, n := range r.items {
		if n.UserID == userID && n.ReadAt == nil {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, n := range r.items {
		if n.UserID == userID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkReadUpTo(_ context.Context, userID string, cursor time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	marked := 0
	for i := range r.items {
		n := &r.items[i]
		if n.UserID != userID || n.ReadAt != nil || n.CreatedAt.After(cursor) {
			continue
		}
		readAt := now
		n.ReadAt = &readAt
		marked++
	}
	return marked, nil
}

func (r *NotificationRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, n := range r.items {
		if n.UserID != userID && n.FromUserID != userID {
			kept = append(kept, n)
		}
	}
	r.items = kept
	return nil
}
