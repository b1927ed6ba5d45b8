package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/radiogagalight/f1-together/internal/domain/comment"
	"github.com/radiogagalight/f1-together/internal/domain/notification"
	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/push"
	"github.com/radiogagalight/f1-together/internal/domain/racepick"
	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
)

// AccountService owns the settings-page data wipe. The wipe walks every store
// that holds rows for the user; the first failure aborts so a retry can
// finish the job.
type AccountService struct {
	profileRepo   profile.Repository
	commentRepo   comment.Repository
	notifRepo     notification.Repository
	seasonRepo    seasonpick.Repository
	midseasonRepo seasonpick.MidseasonRepository
	racePickRepo  racepick.Repository
	pushRepo      push.Repository
	logger        *logging.Logger
}

func NewAccountService(
	profileRepo profile.Repository,
	commentRepo comment.Repository,
	notifRepo notification.Repository,
	seasonRepo seasonpick.Repository,
	midseasonRepo seasonpick.MidseasonRepository,
	racePickRepo racepick.Repository,
	pushRepo push.Repository,
	logger *logging.Logger,
) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountService{
		profileRepo:   profileRepo,
		commentRepo:   commentRepo,
		notifRepo:     notifRepo,
		seasonRepo:    seasonRepo,
		midseasonRepo: midseasonRepo,
		racePickRepo:  racePickRepo,
		pushRepo:      pushRepo,
		logger:        logger,
	}
}

func (s *AccountService) DeleteData(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "AccountService.DeleteData")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"push subscription", func(ctx context.Context) error { return s.pushRepo.Delete(ctx, userID) }},
		{"notifications", func(ctx context.Context) error { return s.notifRepo.DeleteByUser(ctx, userID) }},
		{"comments", func(ctx context.Context) error { return s.commentRepo.DeleteByUser(ctx, userID) }},
		{"race picks", func(ctx context.Context) error { return s.racePickRepo.DeleteByUser(ctx, userID) }},
		{"season picks", func(ctx context.Context) error { return s.seasonRepo.DeleteByUser(ctx, userID) }},
		{"midseason picks", func(ctx context.Context) error { return s.midseasonRepo.DeleteByUser(ctx, userID) }},
		{"profile", func(ctx context.Context) error { return s.profileRepo.Delete(ctx, userID) }},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return fmt.Errorf("delete %s: %w", step.name, err)
		}
	}

	s.logger.InfoContext(ctx, "account data wiped", "user_id", userID)
	return nil
}
