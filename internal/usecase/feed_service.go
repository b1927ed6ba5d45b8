package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/radiogagalight/f1-together/internal/domain/comment"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/racepick"
	"github.com/radiogagalight/f1-together/internal/domain/season"
	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
)

const (
	feedSeasonPickFetchCap = 20
	feedRacePickFetchCap   = 10
	feedCommentFetchCap    = 15
	feedDisplayCap         = 25
)

// ActivityItem is one row of the merged activity feed.
type ActivityItem struct {
	UserID      string
	DisplayName string
	Label       string
	Timestamp   time.Time
	// Round is the navigation target for race-scoped items, 0 otherwise.
	Round int
}

type FeedService struct {
	seasonPickRepo seasonpick.Repository
	racePickRepo   racepick.Repository
	commentRepo    comment.Repository
	profileRepo    profile.Repository
	seasonRepo     season.Repository
	logger         *logging.Logger
}

func NewFeedService(
	seasonPickRepo seasonpick.Repository,
	racePickRepo racepick.Repository,
	commentRepo comment.Repository,
	profileRepo profile.Repository,
	seasonRepo season.Repository,
	logger *logging.Logger,
) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FeedService{
		seasonPickRepo: seasonPickRepo,
		racePickRepo:   racePickRepo,
		commentRepo:    commentRepo,
		profileRepo:    profileRepo,
		seasonRepo:     seasonRepo,
		logger:         logger,
	}
}

// Activity merges the three activity sources into one reverse-chronological
// list. The sources are fetched concurrently; a failed source degrades to an
// empty slice instead of failing the feed.
func (s *FeedService) Activity(ctx context.Context) ([]ActivityItem, error) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Activity")
	defer span.End()

	var (
		seasonUpdates []seasonpick.Update
		raceUpdates   []racepick.Update
		comments      []comment.Comment
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		items, err := s.seasonPickRepo.ListRecentUpdates(ctx, feedSeasonPickFetchCap)
		if err != nil {
			s.logger.WarnContext(ctx, "feed season pick source failed", "error", err)
			return
		}
		seasonUpdates = items
	})
	wg.Go(func() {
		items, err := s.racePickRepo.ListRecentUpdates(ctx, feedRacePickFetchCap)
		if err != nil {
			s.logger.WarnContext(ctx, "feed race pick source failed", "error", err)
			return
		}
		raceUpdates = items
	})
	wg.Go(func() {
		items, err := s.commentRepo.ListRecent(ctx, feedCommentFetchCap)
		if err != nil {
			s.logger.WarnContext(ctx, "feed comment source failed", "error", err)
			return
		}
		comments = items
	})
	wg.Wait()

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles for feed: %w", err)
	}
	dir := profile.NewDirectory(profiles)

	raceNames, err := s.raceNamesByRound(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(seasonUpdates)+len(raceUpdates)+len(comments))
	for _, u := range seasonUpdates {
		items = append(items, ActivityItem{
			UserID:      u.UserID,
			DisplayName: displayNameFor(dir, u.UserID),
			Label:       "updated their season predictions",
			Timestamp:   u.UpdatedAt,
		})
	}
	for _, u := range raceUpdates {
		items = append(items, ActivityItem{
			UserID:      u.UserID,
			DisplayName: displayNameFor(dir, u.UserID),
			Label:       fmt.Sprintf("updated their %s picks", raceLabel(raceNames, u.Round)),
			Timestamp:   u.UpdatedAt,
			Round:       u.Round,
		})
	}
	for _, c := range comments {
		items = append(items, ActivityItem{
			UserID:      c.UserID,
			DisplayName: displayNameFor(dir, c.UserID),
			Label:       fmt.Sprintf("posted a comment about the %s", raceLabel(raceNames, c.Round)),
			Timestamp:   c.CreatedAt,
			Round:       c.Round,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > feedDisplayCap {
		items = items[:feedDisplayCap]
	}
	return items, nil
}

func (s *FeedService) raceNamesByRound(ctx context.Context) (map[int]string, error) {
	races, err := s.seasonRepo.ListRaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races for feed: %w", err)
	}
	names := make(map[int]string, len(races))
	for _, r := range races {
		names[r.Round] = r.Name
	}
	return names, nil
}

func raceLabel(names map[int]string, round int) string {
	if name, ok := names[round]; ok {
		return name
	}
	return fmt.Sprintf("round %d", round)
}

func displayNameFor(dir *profile.Directory, userID string) string {
	if p, ok := dir.Get(userID); ok {
		return p.DisplayName
	}
	return ""
}
