package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radiogagalight/f1-together/internal/infrastructure/repository/memory"
)

func newRacePickService() *RacePickService {
	return NewRacePickService(
		memory.NewRacePickRepository(),
		memory.NewSeasonRepository(memory.SeedRaces(), memory.SeedDrivers(), memory.SeedConstructors()),
	)
}

func TestRacePickServiceGet(t *testing.T) {
	svc := newRacePickService()

	t.Run("empty row for new user", func(t *testing.T) {
		picks, err := svc.Get(context.Background(), "id-max", 1)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if picks.UserID != "id-max" || picks.Round != 1 {
			t.Fatalf("unexpected empty row: %+v", picks)
		}
		if picks.RaceWinner != nil {
			t.Fatalf("expected unset fields, got %+v", picks)
		}
	})

	t.Run("unknown round", func(t *testing.T) {
		if _, err := svc.Get(context.Background(), "id-max", 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRacePickServiceSave(t *testing.T) {
	svc := newRacePickService()
	fixedNow := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	safetyCar := true
	saved, err := svc.Save(context.Background(), SaveRacePicksInput{
		UserID:     "id-max",
		Round:      1,
		QualPole:   strPtr("max-verstappen"),
		RaceWinner: strPtr("lando-norris"),
		RaceP2:     strPtr("oscar-piastri"),
		FastestLap: strPtr("max-verstappen"),
		SafetyCar:  &safetyCar,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.RaceWinner == nil || *saved.RaceWinner != "lando-norris" {
		t.Fatalf("unexpected race winner: %v", saved.RaceWinner)
	}
	if !saved.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected updated at: %v", saved.UpdatedAt)
	}

	got, err := svc.Get(context.Background(), "id-max", 1)
	if err != nil {
		t.Fatalf("get after save: %v", err)
	}
	if got.QualPole == nil || *got.QualPole != "max-verstappen" {
		t.Fatalf("unexpected qual pole after save: %v", got.QualPole)
	}
	if got.SafetyCar == nil || !*got.SafetyCar {
		t.Fatalf("unexpected safety car after save: %v", got.SafetyCar)
	}

	// Full-row upsert: a second save without the earlier fields clears them.
	if _, err := svc.Save(context.Background(), SaveRacePicksInput{
		UserID:     "id-max",
		Round:      1,
		RaceWinner: strPtr("max-verstappen"),
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = svc.Get(context.Background(), "id-max", 1)
	if err != nil {
		t.Fatalf("get after second save: %v", err)
	}
	if got.QualPole != nil {
		t.Fatalf("expected qual pole cleared by full-row save, got %v", got.QualPole)
	}
}

func TestRacePickServiceSave_SprintRules(t *testing.T) {
	svc := newRacePickService()

	t.Run("sprint fields rejected on non-sprint round", func(t *testing.T) {
		_, err := svc.Save(context.Background(), SaveRacePicksInput{
			UserID:       "id-max",
			Round:        1,
			SprintWinner: strPtr("max-verstappen"),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("sprint fields accepted on sprint round", func(t *testing.T) {
		saved, err := svc.Save(context.Background(), SaveRacePicksInput{
			UserID:       "id-max",
			Round:        2,
			SprintWinner: strPtr("max-verstappen"),
			SprintP2:     strPtr("lando-norris"),
		})
		if err != nil {
			t.Fatalf("save sprint picks: %v", err)
		}
		if saved.SprintWinner == nil || *saved.SprintWinner != "max-verstappen" {
			t.Fatalf("unexpected sprint winner: %v", saved.SprintWinner)
		}
	})
}

func TestRacePickServiceSave_Validation(t *testing.T) {
	svc := newRacePickService()

	tests := []struct {
		name  string
		input SaveRacePicksInput
		want  error
	}{
		{
			name:  "missing user",
			input: SaveRacePicksInput{Round: 1},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown round",
			input: SaveRacePicksInput{UserID: "id-max", Round: 99},
			want:  ErrNotFound,
		},
		{
			name:  "unknown driver",
			input: SaveRacePicksInput{UserID: "id-max", Round: 1, RaceWinner: strPtr("ayrton-senna")},
			want:  ErrInvalidInput,
		},
		{
			name:  "blank driver",
			input: SaveRacePicksInput{UserID: "id-max", Round: 1, RaceWinner: strPtr("  ")},
			want:  ErrInvalidInput,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Save(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRacePickServiceStatus(t *testing.T) {
	svc := newRacePickService()

	safetyCar := false
	if _, err := svc.Save(context.Background(), SaveRacePicksInput{
		UserID:     "id-max",
		Round:      1,
		QualPole:   strPtr("max-verstappen"),
		RaceWinner: strPtr("lando-norris"),
		SafetyCar:  &safetyCar,
	}); err != nil {
		t.Fatalf("save round 1: %v", err)
	}
	if _, err := svc.Save(context.Background(), SaveRacePicksInput{
		UserID:       "id-max",
		Round:        2,
		SprintWinner: strPtr("max-verstappen"),
	}); err != nil {
		t.Fatalf("save round 2: %v", err)
	}

	statuses, err := svc.Status(context.Background(), "id-max")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(statuses) != len(memory.SeedRaces()) {
		t.Fatalf("expected one status per round, got %d", len(statuses))
	}

	byRound := make(map[int]RoundStatus, len(statuses))
	for _, st := range statuses {
		byRound[st.Round] = st
	}

	if st := byRound[1]; st.FilledCount != 3 || st.FieldCount != 8 || st.Sprint {
		t.Fatalf("unexpected round 1 status: %+v", st)
	}
	if st := byRound[2]; st.FilledCount != 1 || st.FieldCount != 14 || !st.Sprint {
		t.Fatalf("unexpected round 2 status: %+v", st)
	}
	if st := byRound[3]; st.FilledCount != 0 || st.FieldCount != 8 {
		t.Fatalf("unexpected round 3 status: %+v", st)
	}
}
