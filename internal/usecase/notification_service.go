package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/notification"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/season"
)

// NotificationView is one unread mention with resolved display data.
type NotificationView struct {
	Notification    notification.Notification
	FromDisplayName string
	RaceName        string
}

type NotificationService struct {
	notifRepo   notification.Repository
	profileRepo profile.Repository
	seasonRepo  season.Repository
	now         func() time.Time
}

func NewNotificationService(
	notifRepo notification.Repository,
	profileRepo profile.Repository,
	seasonRepo season.Repository,
) *NotificationService {
	return &NotificationService{
		notifRepo:   notifRepo,
		profileRepo: profileRepo,
		seasonRepo:  seasonRepo,
		now:         time.Now,
	}
}

// UnreadAndMarkRead returns the viewer's unread mentions and marks exactly
// those rows read: the mark is bounded by a cursor taken at fetch time, so a
// notification written during the call stays unread for the next fetch.
func (s *NotificationService) UnreadAndMarkRead(ctx context.Context, userID string) ([]NotificationView, error) {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.UnreadAndMarkRead")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	cursor := s.now().UTC()
	unread, err := s.notifRepo.ListUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}

	views, err := s.buildViews(ctx, unread)
	if err != nil {
		return nil, err
	}

	if len(unread) > 0 {
		if _, err := s.notifRepo.MarkReadUpTo(ctx, userID, cursor); err != nil {
			return nil, fmt.Errorf("mark notifications read: %w", err)
		}
	}

	return views, nil
}

// CountUnread peeks at the unread badge count without marking anything read.
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.CountUnread")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationService) buildViews(ctx context.Context, items []notification.Notification) ([]NotificationView, error) {
	if len(items) == 0 {
		return nil, nil
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles for notifications: %w", err)
	}
	dir := profile.NewDirectory(profiles)

	races, err := s.seasonRepo.ListRaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races for notifications: %w", err)
	}
	raceNames := make(map[int]string, len(races))
	for _, r := range races {
		raceNames[r.Round] = r.Name
	}

	views := make([]NotificationView, 0, len(items))
	for _, n := range items {
		views = append(views, NotificationView{
			Notification:    n,
			FromDisplayName: displayNameFor(dir, n.FromUserID),
			RaceName:        raceLabel(raceNames, n.Round),
		})
	}
	return views, nil
}
