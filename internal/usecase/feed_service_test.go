package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/comment"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/racepick"
	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/memory"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
)

type stubSeasonPickSource struct {
	seasonpick.Repository
	updates []seasonpick.Update
	err     error
}

func (s *stubSeasonPickSource) ListRecentUpdates(_ context.Context, limit int) ([]seasonpick.Update, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.updates) > limit {
		return s.updates[:limit], nil
	}
	return s.updates, nil
}

type stubRacePickSource struct {
	racepick.Repository
	updates []racepick.Update
	err     error
}

func (s *stubRacePickSource) ListRecentUpdates(_ context.Context, limit int) ([]racepick.Update, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.updates) > limit {
		return s.updates[:limit], nil
	}
	return s.updates, nil
}

type stubCommentSource struct {
	comment.Repository
	comments []comment.Comment
	err      error
}

func (s *stubCommentSource) ListRecent(_ context.Context, limit int) ([]comment.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.comments) > limit {
		return s.comments[:limit], nil
	}
	return s.comments, nil
}

func feedTestProfiles(t *testing.T) *memory.ProfileRepository {
	t.Helper()
	repo := memory.NewProfileRepository()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []profile.Profile{
		{ID: "id-max", DisplayName: "Max Verstappen"},
		{ID: "id-lando", DisplayName: "Lando Norris"},
		{ID: "id-oscar", DisplayName: "Oscar Piastri"},
	} {
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Upsert(context.Background(), p); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}
	return repo
}

func TestFeedServiceActivity_MergesAndSorts(t *testing.T) {
	at := func(h int) time.Time {
		return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC)
	}

	svc := NewFeedService(
		&stubSeasonPickSource{updates: []seasonpick.Update{
			{UserID: "id-max", UpdatedAt: at(9)},
		}},
		&stubRacePickSource{updates: []racepick.Update{
			{UserID: "id-lando", Round: 2, UpdatedAt: at(11)},
		}},
		&stubCommentSource{comments: []comment.Comment{
			{ID: "c1", UserID: "id-oscar", Round: 1, Content: "what a race", CreatedAt: at(10)},
		}},
		feedTestProfiles(t),
		memory.NewSeasonRepository(memory.SeedRaces(), nil, nil),
		logging.NewNop(),
	)

	items, err := svc.Activity(context.Background())
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	if items[0].UserID != "id-lando" || items[1].UserID != "id-oscar" || items[2].UserID != "id-max" {
		t.Fatalf("unexpected order: %s, %s, %s", items[0].UserID, items[1].UserID, items[2].UserID)
	}
	if items[0].Label != "updated their Chinese Grand Prix picks" {
		t.Fatalf("unexpected race pick label: %q", items[0].Label)
	}
	if items[0].Round != 2 {
		t.Fatalf("unexpected race pick round: %d", items[0].Round)
	}
	if items[1].Label != "posted a comment about the Australian Grand Prix" {
		t.Fatalf("unexpected comment label: %q", items[1].Label)
	}
	if items[2].Label != "updated their season predictions" {
		t.Fatalf("unexpected season pick label: %q", items[2].Label)
	}
	if items[2].DisplayName != "Max Verstappen" {
		t.Fatalf("unexpected display name: %q", items[2].DisplayName)
	}
}

func TestFeedServiceActivity_CapsAtDisplayLimit(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	seasonUpdates := make([]seasonpick.Update, 0, feedSeasonPickFetchCap)
	for i := 0; i < feedSeasonPickFetchCap; i++ {
		seasonUpdates = append(seasonUpdates, seasonpick.Update{
			UserID:    "id-max",
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	comments := make([]comment.Comment, 0, feedCommentFetchCap)
	for i := 0; i < feedCommentFetchCap; i++ {
		comments = append(comments, comment.Comment{
			ID:        "c",
			UserID:    "id-oscar",
			Round:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	svc := NewFeedService(
		&stubSeasonPickSource{updates: seasonUpdates},
		&stubRacePickSource{},
		&stubCommentSource{comments: comments},
		feedTestProfiles(t),
		memory.NewSeasonRepository(memory.SeedRaces(), nil, nil),
		logging.NewNop(),
	)

	items, err := svc.Activity(context.Background())
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(items) != feedDisplayCap {
		t.Fatalf("expected %d items, got %d", feedDisplayCap, len(items))
	}
}

func TestFeedServiceActivity_FailedSourceDegrades(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := NewFeedService(
		&stubSeasonPickSource{err: errors.New("season pick store down")},
		&stubRacePickSource{},
		&stubCommentSource{comments: []comment.Comment{
			{ID: "c1", UserID: "id-oscar", Round: 1, Content: "still here", CreatedAt: at},
		}},
		feedTestProfiles(t),
		memory.NewSeasonRepository(memory.SeedRaces(), nil, nil),
		logging.NewNop(),
	)

	items, err := svc.Activity(context.Background())
	if err != nil {
		t.Fatalf("expected degraded feed, got error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item from surviving source, got %d", len(items))
	}
	if items[0].UserID != "id-oscar" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestFeedServiceActivity_UnknownRoundAndUserFallbacks(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := NewFeedService(
		&stubSeasonPickSource{},
		&stubRacePickSource{updates: []racepick.Update{
			{UserID: "id-ghost", Round: 99, UpdatedAt: at},
		}},
		&stubCommentSource{},
		feedTestProfiles(t),
		memory.NewSeasonRepository(memory.SeedRaces(), nil, nil),
		logging.NewNop(),
	)

	items, err := svc.Activity(context.Background())
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Label != "updated their round 99 picks" {
		t.Fatalf("unexpected fallback label: %q", items[0].Label)
	}
	if items[0].DisplayName != "" {
		t.Fatalf("expected empty display name for unknown user, got %q", items[0].DisplayName)
	}
}
