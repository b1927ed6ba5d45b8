package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/memory"
)

func TestPushServiceSubscribe(t *testing.T) {
	repo := memory.NewPushSubscriptionRepository()
	svc := NewPushService(repo)
	fixedNow := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	payload := []byte(`{"endpoint":"https://push.example.com/abc","keys":{"p256dh":"k1","auth":"k2"}}`)
	if err := svc.Subscribe(context.Background(), SubscribePushInput{UserID: "id-max", Payload: payload}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sub, exists, err := repo.GetByUser(context.Background(), "id-max")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if !exists {
		t.Fatalf("expected stored subscription")
	}
	if sub.Endpoint != "https://push.example.com/abc" {
		t.Fatalf("unexpected endpoint: %q", sub.Endpoint)
	}
	if !bytes.Equal(sub.Subscription, payload) {
		t.Fatalf("expected payload stored verbatim")
	}
	if !sub.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected created at: %v", sub.CreatedAt)
	}

	// Resubscribing replaces the stored row.
	replacement := []byte(`{"endpoint":"https://push.example.com/new"}`)
	if err := svc.Subscribe(context.Background(), SubscribePushInput{UserID: "id-max", Payload: replacement}); err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	sub, _, err = repo.GetByUser(context.Background(), "id-max")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if sub.Endpoint != "https://push.example.com/new" {
		t.Fatalf("expected replaced endpoint, got %q", sub.Endpoint)
	}
}

func TestPushServiceSubscribe_Validation(t *testing.T) {
	svc := NewPushService(memory.NewPushSubscriptionRepository())

	tests := []struct {
		name  string
		input SubscribePushInput
	}{
		{"missing user", SubscribePushInput{Payload: []byte(`{"endpoint":"https://x"}`)}},
		{"empty payload", SubscribePushInput{UserID: "id-max"}},
		{"payload too large", SubscribePushInput{UserID: "id-max", Payload: bytes.Repeat([]byte("x"), maxSubscriptionPayload+1)}},
		{"invalid json", SubscribePushInput{UserID: "id-max", Payload: []byte(`{not json`)}},
		{"missing endpoint", SubscribePushInput{UserID: "id-max", Payload: []byte(`{"keys":{}}`)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Subscribe(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPushServiceUnsubscribe(t *testing.T) {
	repo := memory.NewPushSubscriptionRepository()
	svc := NewPushService(repo)

	if err := svc.Subscribe(context.Background(), SubscribePushInput{
		UserID:  "id-max",
		Payload: []byte(`{"endpoint":"https://push.example.com/abc"}`),
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := svc.Unsubscribe(context.Background(), "id-max"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if _, exists, err := repo.GetByUser(context.Background(), "id-max"); err != nil {
		t.Fatalf("get subscription: %v", err)
	} else if exists {
		t.Fatalf("expected subscription removed")
	}

	// Unsubscribing again is a no-op.
	if err := svc.Unsubscribe(context.Background(), "id-max"); err != nil {
		t.Fatalf("second unsubscribe: %v", err)
	}
}
