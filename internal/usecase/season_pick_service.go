package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/radiogagalight/f1-together/internal/domain/season"
	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
)

type SeasonPickService struct {
	pickRepo      seasonpick.Repository
	midseasonRepo seasonpick.MidseasonRepository
	seasonRepo    season.Repository
}

func NewSeasonPickService(
	pickRepo seasonpick.Repository,
	midseasonRepo seasonpick.MidseasonRepository,
	seasonRepo season.Repository,
) *SeasonPickService {
	return &SeasonPickService{
		pickRepo:      pickRepo,
		midseasonRepo: midseasonRepo,
		seasonRepo:    seasonRepo,
	}
}

// Get returns the user's season picks. A user with no picks yet gets an empty
// row rather than a not-found error.
func (s *SeasonPickService) Get(ctx context.Context, userID string) (seasonpick.Picks, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonPickService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return seasonpick.Picks{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	picks, exists, err := s.pickRepo.GetByUser(ctx, userID)
	if err != nil {
		return seasonpick.Picks{}, fmt.Errorf("get season picks: %w", err)
	}
	if !exists {
		return seasonpick.Picks{UserID: userID}, nil
	}
	return picks, nil
}

// Set writes a single category. A nil value clears it.
func (s *SeasonPickService) Set(ctx context.Context, userID string, category seasonpick.Category, value *string) (seasonpick.Picks, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonPickService.Set")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return seasonpick.Picks{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if !category.Valid() {
		return seasonpick.Picks{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	value, err := s.validatePickValue(ctx, value, category.IsConstructor())
	if err != nil {
		return seasonpick.Picks{}, err
	}

	if err := s.pickRepo.UpsertCategory(ctx, userID, category, value); err != nil {
		return seasonpick.Picks{}, fmt.Errorf("upsert season pick: %w", err)
	}

	picks, _, err := s.pickRepo.GetByUser(ctx, userID)
	if err != nil {
		return seasonpick.Picks{}, fmt.Errorf("get season picks after upsert: %w", err)
	}
	return picks, nil
}

func (s *SeasonPickService) GetMidseason(ctx context.Context, userID string) (seasonpick.MidseasonPicks, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonPickService.GetMidseason")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return seasonpick.MidseasonPicks{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	picks, exists, err := s.midseasonRepo.GetByUser(ctx, userID)
	if err != nil {
		return seasonpick.MidseasonPicks{}, fmt.Errorf("get midseason picks: %w", err)
	}
	if !exists {
		return seasonpick.MidseasonPicks{UserID: userID}, nil
	}
	return picks, nil
}

func (s *SeasonPickService) SetMidseason(ctx context.Context, userID string, category seasonpick.MidseasonCategory, value *string) (seasonpick.MidseasonPicks, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonPickService.SetMidseason")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return seasonpick.MidseasonPicks{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if !category.Valid() {
		return seasonpick.MidseasonPicks{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	isConstructor := category == seasonpick.MidseasonCategoryWCCWinner
	value, err := s.validatePickValue(ctx, value, isConstructor)
	if err != nil {
		return seasonpick.MidseasonPicks{}, err
	}

	if err := s.midseasonRepo.UpsertCategory(ctx, userID, category, value); err != nil {
		return seasonpick.MidseasonPicks{}, fmt.Errorf("upsert midseason pick: %w", err)
	}

	picks, _, err := s.midseasonRepo.GetByUser(ctx, userID)
	if err != nil {
		return seasonpick.MidseasonPicks{}, fmt.Errorf("get midseason picks after upsert: %w", err)
	}
	return picks, nil
}

func (s *SeasonPickService) validatePickValue(ctx context.Context, value *string, constructor bool) (*string, error) {
	if value == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}

	var exists bool
	var err error
	if constructor {
		_, exists, err = s.seasonRepo.GetConstructor(ctx, trimmed)
	} else {
		_, exists, err = s.seasonRepo.GetDriver(ctx, trimmed)
	}
	if err != nil {
		return nil, fmt.Errorf("validate pick value: %w", err)
	}
	if !exists {
		kind := "driver"
		if constructor {
			kind = "constructor"
		}
		return nil, fmt.Errorf("%w: unknown %s %s", ErrInvalidInput, kind, trimmed)
	}

	return &trimmed, nil
}
