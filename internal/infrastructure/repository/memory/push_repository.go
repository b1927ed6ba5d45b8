package memory

import (
	"context"
	"sync"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/push"
)

type PushSubscriptionRepository struct {
	mu    sync.RWMutex
	items map[string]push.Subscription
}

func NewPushSubscriptionRepository() *PushSubscriptionRepository {
	return &PushSubscriptionRepository{items: make(map[string]push.Subscription)}
}

func (r *PushSubscriptionRepository) GetByUser(_ context.Context, userID string) (push.Subscription, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[userID]
	if !ok {
		return push.Subscription{}, false, nil
	}
	s.Subscription = append([]byte(nil), s.Subscription...)
	return s, true, nil
}

func (r *PushSubscriptionRepository) Upsert(_ context.Context, s push.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.Subscription = append([]byte(nil), s.Subscription...)
	r.items[s.UserID] = s
	return nil
}

func (r *PushSubscriptionRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}
