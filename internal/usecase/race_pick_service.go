package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/racepick"
	"github.com/radiogagalight/f1-together/internal/domain/season"
)

type SaveRacePicksInput struct {
	UserID         string
	Round          int
	QualPole       *string
	QualP2         *string
	QualP3         *string
	RaceWinner     *string
	RaceP2         *string
	RaceP3         *string
	FastestLap     *string
	SafetyCar      *bool
	SprintQualPole *string
	SprintQualP2   *string
	SprintQualP3   *string
	SprintWinner   *string
	SprintP2       *string
	SprintP3       *string
}

// RoundStatus reports per-round completion for the predictions nav.
type RoundStatus struct {
	Round       int
	Sprint      bool
	FilledCount int
	FieldCount  int
}

type RacePickService struct {
	pickRepo   racepick.Repository
	seasonRepo season.Repository
	now        func() time.Time
}

func NewRacePickService(pickRepo racepick.Repository, seasonRepo season.Repository) *RacePickService {
	return &RacePickService{
		pickRepo:   pickRepo,
		seasonRepo: seasonRepo,
		now:        time.Now,
	}
}

func (s *RacePickService) Get(ctx context.Context, userID string, round int) (racepick.Picks, error) {
	ctx, span := startUsecaseSpan(ctx, "RacePickService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return racepick.Picks{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if _, exists, err := s.seasonRepo.GetRace(ctx, round); err != nil {
		return racepick.Picks{}, fmt.Errorf("get race: %w", err)
	} else if !exists {
		return racepick.Picks{}, fmt.Errorf("%w: round=%d", ErrNotFound, round)
	}

	picks, exists, err := s.pickRepo.GetByUserAndRound(ctx, userID, round)
	if err != nil {
		return racepick.Picks{}, fmt.Errorf("get race picks: %w", err)
	}
	if !exists {
		return racepick.Picks{UserID: userID, Round: round}, nil
	}
	return picks, nil
}

// Save upserts the full row for the round. Sprint fields are rejected on
// non-sprint rounds instead of silently dropped.
func (s *RacePickService) Save(ctx context.Context, input SaveRacePicksInput) (racepick.Picks, error) {
	ctx, span := startUsecaseSpan(ctx, "RacePickService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return racepick.Picks{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	race, exists, err := s.seasonRepo.GetRace(ctx, input.Round)
	if err != nil {
		return racepick.Picks{}, fmt.Errorf("get race: %w", err)
	}
	if !exists {
		return racepick.Picks{}, fmt.Errorf("%w: round=%d", ErrNotFound, input.Round)
	}

	picks := racepick.Picks{
		UserID:         input.UserID,
		Round:          input.Round,
		QualPole:       input.QualPole,
		QualP2:         input.QualP2,
		QualP3:         input.QualP3,
		RaceWinner:     input.RaceWinner,
		RaceP2:         input.RaceP2,
		RaceP3:         input.RaceP3,
		FastestLap:     input.FastestLap,
		SafetyCar:      input.SafetyCar,
		SprintQualPole: input.SprintQualPole,
		SprintQualP2:   input.SprintQualP2,
		SprintQualP3:   input.SprintQualP3,
		SprintWinner:   input.SprintWinner,
		SprintP2:       input.SprintP2,
		SprintP3:       input.SprintP3,
		UpdatedAt:      s.now().UTC(),
	}

	if !race.Sprint && picks.HasSprintPicks() {
		return racepick.Picks{}, fmt.Errorf("%w: round %d is not a sprint weekend", ErrInvalidInput, input.Round)
	}

	if err := s.validateDriverFields(ctx, picks); err != nil {
		return racepick.Picks{}, err
	}

	if err := s.pickRepo.Upsert(ctx, picks); err != nil {
		return racepick.Picks{}, fmt.Errorf("save race picks: %w", err)
	}
	return picks, nil
}

// Status maps every round to its filled-field count, counting sprint fields
// only on sprint rounds.
func (s *RacePickService) Status(ctx context.Context, userID string) ([]RoundStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "RacePickService.Status")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	races, err := s.seasonRepo.ListRaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races for status: %w", err)
	}

	picksByRound := make(map[int]racepick.Picks)
	userPicks, err := s.pickRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list race picks for status: %w", err)
	}
	for _, p := range userPicks {
		picksByRound[p.Round] = p
	}

	out := make([]RoundStatus, 0, len(races))
	for _, race := range races {
		fieldCount := baseRacePickFieldCount
		if race.Sprint {
			fieldCount += sprintRacePickFieldCount
		}
		out = append(out, RoundStatus{
			Round:       race.Round,
			Sprint:      race.Sprint,
			FilledCount: picksByRound[race.Round].FilledCount(race.Sprint),
			FieldCount:  fieldCount,
		})
	}
	return out, nil
}

const (
	baseRacePickFieldCount   = 8
	sprintRacePickFieldCount = 6
)

func (s *RacePickService) validateDriverFields(ctx context.Context, picks racepick.Picks) error {
	fields := map[string]*string{
		"qual_pole":        picks.QualPole,
		"qual_p2":          picks.QualP2,
		"qual_p3":          picks.QualP3,
		"race_winner":      picks.RaceWinner,
		"race_p2":          picks.RaceP2,
		"race_p3":          picks.RaceP3,
		"fastest_lap":      picks.FastestLap,
		"sprint_qual_pole": picks.SprintQualPole,
		"sprint_qual_p2":   picks.SprintQualP2,
		"sprint_qual_p3":   picks.SprintQualP3,
		"sprint_winner":    picks.SprintWinner,
		"sprint_p2":        picks.SprintP2,
		"sprint_p3":        picks.SprintP3,
	}
	for field, value := range fields {
		if value == nil {
			continue
		}
		id := strings.TrimSpace(*value)
		if id == "" {
			return fmt.Errorf("%w: %s cannot be blank", ErrInvalidInput, field)
		}
		_, exists, err := s.seasonRepo.GetDriver(ctx, id)
		if err != nil {
			return fmt.Errorf("validate %s: %w", field, err)
		}
		if !exists {
			return fmt.Errorf("%w: unknown driver %s for %s", ErrInvalidInput, id, field)
		}
	}
	return nil
}
