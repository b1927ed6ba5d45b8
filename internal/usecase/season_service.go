package usecase

import (
	"context"
	"fmt"

	"github.com/radiogagalight/f1-together/internal/domain/season"
)

// SeasonService exposes the season catalog: calendar, drivers, constructors.
type SeasonService struct {
	seasonRepo season.Repository
}

func NewSeasonService(seasonRepo season.Repository) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo}
}

func (s *SeasonService) Races(ctx context.Context) ([]season.Race, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Races")
	defer span.End()

	races, err := s.seasonRepo.ListRaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	return races, nil
}

func (s *SeasonService) Drivers(ctx context.Context) ([]season.Driver, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Drivers")
	defer span.End()

	drivers, err := s.seasonRepo.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

func (s *SeasonService) Constructors(ctx context.Context) ([]season.Constructor, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Constructors")
	defer span.End()

	constructors, err := s.seasonRepo.ListConstructors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list constructors: %w", err)
	}
	return constructors, nil
}
