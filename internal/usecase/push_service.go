package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/radiogagalight/f1-together/internal/domain/push"
)

const maxSubscriptionPayload = 8 << 10

type SubscribePushInput struct {
	UserID string
	// Payload is the browser's PushSubscription JSON, stored opaquely.
	Payload []byte
}

type PushService struct {
	pushRepo push.Repository
	now      func() time.Time
}

func NewPushService(pushRepo push.Repository) *PushService {
	return &PushService{
		pushRepo: pushRepo,
		now:      time.Now,
	}
}

// Subscribe stores the browser subscription, replacing any previous one for
// the user. The payload is opaque except for the endpoint, which must be
// present.
func (s *PushService) Subscribe(ctx context.Context, input SubscribePushInput) error {
	ctx, span := startUsecaseSpan(ctx, "PushService.Subscribe")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if len(input.Payload) == 0 {
		return fmt.Errorf("%w: subscription payload is required", ErrInvalidInput)
	}
	if len(input.Payload) > maxSubscriptionPayload {
		return fmt.Errorf("%w: subscription payload too large", ErrInvalidInput)
	}

	var decoded struct {
		Endpoint string `json:"endpoint"`
	}
	if err := sonic.Unmarshal(input.Payload, &decoded); err != nil {
		return fmt.Errorf("%w: subscription payload is not valid JSON", ErrInvalidInput)
	}
	endpoint := strings.TrimSpace(decoded.Endpoint)
	if endpoint == "" {
		return fmt.Errorf("%w: subscription endpoint is required", ErrInvalidInput)
	}

	sub := push.Subscription{
		UserID:       input.UserID,
		Endpoint:     endpoint,
		Subscription: input.Payload,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.pushRepo.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}
	return nil
}

// Unsubscribe drops the user's stored subscription. Removing a subscription
// that does not exist is not an error.
func (s *PushService) Unsubscribe(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "PushService.Unsubscribe")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	if err := s.pushRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
