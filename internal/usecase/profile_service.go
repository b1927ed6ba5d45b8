package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/profile"
	"github.com/radiogagalight/f1-together/internal/domain/season"
	"github.com/radiogagalight/f1-together/internal/domain/user"
)

const (
	maxDisplayNameLength = 60
	// UTC-12:00 .. UTC+14:00, in minutes.
	minTimezoneOffset = -720
	maxTimezoneOffset = 840
)

type UpdateProfileInput struct {
	UserID         string
	DisplayName    string
	FavTeams       []string
	FavDrivers     []string
	TimezoneOffset int
}

type ProfileService struct {
	profileRepo profile.Repository
	seasonRepo  season.Repository
	now         func() time.Time
}

func NewProfileService(profileRepo profile.Repository, seasonRepo season.Repository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		seasonRepo:  seasonRepo,
		now:         time.Now,
	}
}

// GetOrCreate returns the principal's profile, creating a default one on
// first fetch so every signed-in user is immediately part of the directory.
func (s *ProfileService) GetOrCreate(ctx context.Context, principal user.Principal) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.GetOrCreate")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	existing, exists, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if exists {
		return existing, nil
	}

	created := profile.Profile{
		ID:          userID,
		DisplayName: defaultDisplayName(principal.Email),
		CreatedAt:   s.now().UTC(),
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.profileRepo.Upsert(ctx, created); err != nil {
		return profile.Profile{}, fmt.Errorf("create default profile: %w", err)
	}

	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.Update")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.UserID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.DisplayName == "" {
		return profile.Profile{}, fmt.Errorf("%w: display_name is required", ErrInvalidInput)
	}
	if len(input.DisplayName) > maxDisplayNameLength {
		return profile.Profile{}, fmt.Errorf("%w: display_name exceeds %d characters", ErrInvalidInput, maxDisplayNameLength)
	}
	if input.TimezoneOffset < minTimezoneOffset || input.TimezoneOffset > maxTimezoneOffset {
		return profile.Profile{}, fmt.Errorf("%w: timezone_offset must be between %d and %d minutes", ErrInvalidInput, minTimezoneOffset, maxTimezoneOffset)
	}

	favTeams, err := s.validateFavorites(ctx, input.FavTeams, true)
	if err != nil {
		return profile.Profile{}, err
	}
	favDrivers, err := s.validateFavorites(ctx, input.FavDrivers, false)
	if err != nil {
		return profile.Profile{}, err
	}

	existing, exists, err := s.profileRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile before update: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile=%s", ErrNotFound, input.UserID)
	}

	updated := profile.Profile{
		ID:             existing.ID,
		DisplayName:    input.DisplayName,
		FavTeams:       favTeams,
		FavDrivers:     favDrivers,
		TimezoneOffset: input.TimezoneOffset,
		CreatedAt:      existing.CreatedAt,
		UpdatedAt:      s.now().UTC(),
	}
	if err := s.profileRepo.Upsert(ctx, updated); err != nil {
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	return updated, nil
}

// Members lists every profile in creation order for the members page.
func (s *ProfileService) Members(ctx context.Context) ([]profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "ProfileService.Members")
	defer span.End()

	members, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *ProfileService) validateFavorites(ctx context.Context, ids []string, constructors bool) ([]string, error) {
	kind := "driver"
	if constructors {
		kind = "team"
	}
	if len(ids) > profile.MaxFavorites {
		return nil, fmt.Errorf("%w: at most %d favorite %ss", ErrInvalidInput, profile.MaxFavorites, kind)
	}

	cleaned := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: favorite %s id cannot be empty", ErrInvalidInput, kind)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate favorite %s %s", ErrInvalidInput, kind, id)
		}
		seen[id] = struct{}{}

		var exists bool
		var err error
		if constructors {
			_, exists, err = s.seasonRepo.GetConstructor(ctx, id)
		} else {
			_, exists, err = s.seasonRepo.GetDriver(ctx, id)
		}
		if err != nil {
			return nil, fmt.Errorf("validate favorite %s: %w", kind, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: unknown %s %s", ErrInvalidInput, kind, id)
		}

		cleaned = append(cleaned, id)
	}
	return cleaned, nil
}

func defaultDisplayName(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	if email != "" {
		return email
	}
	return "New member"
}
