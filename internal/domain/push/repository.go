package push

import (
	"context"
	"errors"
)

// ErrSubscriptionGone marks a delivery rejected because the browser endpoint
// no longer exists. Callers should drop the stored subscription.
var ErrSubscriptionGone = errors.New("push subscription gone")

type Repository interface {
	GetByUser(ctx context.Context, userID string) (Subscription, bool, error)
	Upsert(ctx context.Context, s Subscription) error
	Delete(ctx context.Context, userID string) error
}

// Publisher hands a message to the external delivery relay.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
