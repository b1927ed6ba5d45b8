package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/notification"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/push"
	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/memory"
	idgen "github.com/radiogagalight/f1-together/internal/platform/id"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
)

type failingNotificationRepo struct {
	notification.Repository
}

func (r *failingNotificationRepo) CreateBatch(context.Context, []notification.Notification) error {
	return errors.New("notification store down")
}

type recordingPublisher struct {
	mu        sync.Mutex
	delivered []push.Message
	err       error
	expected  int
	done      chan struct{}
}

func newRecordingPublisher(expected int) *recordingPublisher {
	p := &recordingPublisher{done: make(chan struct{})}
	if expected == 0 {
		close(p.done)
	}
	p.expected = expected
	return p
}

func (p *recordingPublisher) Publish(_ context.Context, msg push.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delivered = append(p.delivered, msg)
	if p.expected > 0 && len(p.delivered) == p.expected {
		close(p.done)
	}
	return p.err
}

func (p *recordingPublisher) wait(t *testing.T) []push.Message {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for push deliveries")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]push.Message(nil), p.delivered...)
}

type commentFixture struct {
	svc         *CommentService
	profileRepo *memory.ProfileRepository
	notifRepo   notification.Repository
	pushRepo    *memory.PushSubscriptionRepository
	publisher   *recordingPublisher
}

func newCommentFixture(t *testing.T, notifRepo notification.Repository, publisher *recordingPublisher) commentFixture {
	t.Helper()

	profileRepo := memory.NewProfileRepository()
	pushRepo := memory.NewPushSubscriptionRepository()
	seasonRepo := memory.NewSeasonRepository(memory.SeedRaces(), memory.SeedDrivers(), memory.SeedConstructors())

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedProfiles := []profile.Profile{
		{ID: "id-max", DisplayName: "Max Verstappen", CreatedAt: base},
		{ID: "id-lando", DisplayName: "Lando Norris", CreatedAt: base.Add(time.Minute)},
		{ID: "id-oscar", DisplayName: "Oscar Piastri", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, p := range seedProfiles {
		if err := profileRepo.Upsert(context.Background(), p); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	var pub push.Publisher
	if publisher != nil {
		pub = publisher
	}
	svc, err := NewCommentService(
		memory.NewCommentRepository(),
		notifRepo,
		profileRepo,
		seasonRepo,
		pushRepo,
		pub,
		NewMentionService(),
		idgen.NewRandomGenerator(),
		logging.NewNop(),
		2,
	)
	if err != nil {
		t.Fatalf("create comment service: %v", err)
	}
	t.Cleanup(svc.Close)

	return commentFixture{
		svc:         svc,
		profileRepo: profileRepo,
		notifRepo:   notifRepo,
		pushRepo:    pushRepo,
		publisher:   publisher,
	}
}

func TestCommentServicePost_FansOutMentions(t *testing.T) {
	notifRepo := memory.NewNotificationRepository()
	fx := newCommentFixture(t, notifRepo, nil)

	posted, recipients, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-oscar",
		Round:   1,
		Content: "@max and @lando fighting for the win again",
	})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}
	if posted.ID == "" {
		t.Fatalf("expected generated comment id")
	}
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %v", recipients)
	}

	for _, recipient := range []string{"id-max", "id-lando"} {
		unread, err := notifRepo.ListUnread(context.Background(), recipient)
		if err != nil {
			t.Fatalf("list unread: %v", err)
		}
		if len(unread) != 1 {
			t.Fatalf("expected 1 unread notification for %s, got %d", recipient, len(unread))
		}
		n := unread[0]
		if n.FromUserID != "id-oscar" || n.CommentID != posted.ID || n.Round != 1 {
			t.Fatalf("unexpected notification: %+v", n)
		}
		if n.ReadAt != nil {
			t.Fatalf("expected unread notification")
		}
	}
}

func TestCommentServicePost_NoSelfMention(t *testing.T) {
	notifRepo := memory.NewNotificationRepository()
	fx := newCommentFixture(t, notifRepo, nil)

	_, recipients, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-max",
		Round:   1,
		Content: "@max checking in",
	})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}
	if len(recipients) != 0 {
		t.Fatalf("expected no recipients, got %v", recipients)
	}
}

func TestCommentServicePost_NotificationFailureDoesNotFailPost(t *testing.T) {
	fx := newCommentFixture(t, &failingNotificationRepo{}, nil)

	posted, recipients, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-oscar",
		Round:   1,
		Content: "@lando unlucky today",
	})
	if err != nil {
		t.Fatalf("expected post to succeed despite notification failure, got %v", err)
	}
	if posted.ID == "" {
		t.Fatalf("expected posted comment")
	}
	if len(recipients) != 1 {
		t.Fatalf("expected resolved recipients to be reported, got %v", recipients)
	}

	thread, err := fx.svc.Thread(context.Background(), 1)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(thread) != 1 {
		t.Fatalf("expected comment in thread, got %d", len(thread))
	}
}

func TestCommentServicePost_PushDelivery(t *testing.T) {
	notifRepo := memory.NewNotificationRepository()
	publisher := newRecordingPublisher(1)
	fx := newCommentFixture(t, notifRepo, publisher)

	if err := fx.pushRepo.Upsert(context.Background(), push.Subscription{
		UserID:       "id-lando",
		Endpoint:     "https://push.example.com/lando",
		Subscription: []byte(`{"endpoint":"https://push.example.com/lando"}`),
	}); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	if _, _, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-oscar",
		Round:   1,
		Content: "@lando mega stint",
	}); err != nil {
		t.Fatalf("post comment: %v", err)
	}

	delivered := publisher.wait(t)
	if len(delivered) != 1 {
		t.Fatalf("expected one delivery, got %d", len(delivered))
	}
	msg := delivered[0]
	if msg.UserID != "id-lando" {
		t.Fatalf("unexpected delivery recipient: %s", msg.UserID)
	}
	if !strings.Contains(msg.Title, "Oscar Piastri") {
		t.Fatalf("expected sender name in title, got %q", msg.Title)
	}
	if msg.URL != "/races/1" {
		t.Fatalf("unexpected delivery url: %s", msg.URL)
	}
}

func TestCommentServicePost_StaleSubscriptionDeleted(t *testing.T) {
	notifRepo := memory.NewNotificationRepository()
	publisher := newRecordingPublisher(1)
	publisher.err = push.ErrSubscriptionGone
	fx := newCommentFixture(t, notifRepo, publisher)

	if err := fx.pushRepo.Upsert(context.Background(), push.Subscription{
		UserID:       "id-lando",
		Endpoint:     "https://push.example.com/stale",
		Subscription: []byte(`{"endpoint":"https://push.example.com/stale"}`),
	}); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	if _, _, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-oscar",
		Round:   1,
		Content: "@lando p2!",
	}); err != nil {
		t.Fatalf("post comment: %v", err)
	}
	publisher.wait(t)

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, exists, err := fx.pushRepo.GetByUser(context.Background(), "id-lando")
		if err != nil {
			t.Fatalf("get subscription: %v", err)
		}
		if !exists {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected stale subscription to be deleted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCommentServicePost_Validation(t *testing.T) {
	fx := newCommentFixture(t, memory.NewNotificationRepository(), nil)

	tests := []struct {
		name  string
		input PostCommentInput
		want  error
	}{
		{
			name:  "missing user",
			input: PostCommentInput{Round: 1, Content: "hello"},
			want:  ErrInvalidInput,
		},
		{
			name:  "blank content",
			input: PostCommentInput{UserID: "id-max", Round: 1, Content: "   "},
			want:  ErrInvalidInput,
		},
		{
			name:  "content too long",
			input: PostCommentInput{UserID: "id-max", Round: 1, Content: strings.Repeat("x", 501)},
			want:  ErrInvalidInput,
		},
		{
			name:  "multi-byte content over the rune limit",
			input: PostCommentInput{UserID: "id-max", Round: 1, Content: strings.Repeat("ü", 501)},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown round",
			input: PostCommentInput{UserID: "id-max", Round: 99, Content: "hello"},
			want:  ErrNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := fx.svc.Post(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCommentServicePost_CountsContentInRunes(t *testing.T) {
	fx := newCommentFixture(t, memory.NewNotificationRepository(), nil)

	// 500 runes but 1000 bytes. The byte length must not matter.
	content := strings.Repeat("ü", 500)
	posted, _, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-max",
		Round:   1,
		Content: content,
	})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}
	if posted.Content != content {
		t.Fatalf("content changed on the way through: %q", posted.Content)
	}
}

func TestCommentServiceThread_ResolvesSpans(t *testing.T) {
	fx := newCommentFixture(t, memory.NewNotificationRepository(), nil)

	if _, _, err := fx.svc.Post(context.Background(), PostCommentInput{
		UserID:  "id-oscar",
		Round:   1,
		Content: "@max that defence into turn 4",
	}); err != nil {
		t.Fatalf("post comment: %v", err)
	}

	thread, err := fx.svc.Thread(context.Background(), 1)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(thread) != 1 {
		t.Fatalf("expected one thread entry, got %d", len(thread))
	}
	view := thread[0]
	if view.AuthorDisplayName != "Oscar Piastri" {
		t.Fatalf("unexpected author name: %s", view.AuthorDisplayName)
	}
	if len(view.Mentions) != 1 || view.Mentions[0].UserID != "id-max" {
		t.Fatalf("unexpected mention spans: %+v", view.Mentions)
	}
}
