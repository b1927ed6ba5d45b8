package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/racepick"
)

type RacePickRepository struct {
	mu    sync.RWMutex
	items map[string]racepick.Picks
}

func NewRacePickRepository() *RacePickRepository {
	return &RacePickRepository{items: make(map[string]racepick.Picks)}
}

func (r *RacePickRepository) GetByUserAndRound(_ context.Context, userID string, round int) (racepick.Picks, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[racePickKey(userID, round)]
	if !ok {
		return racepick.Picks{}, false, nil
	}
	return cloneRacePicks(p), true, nil
}

func (r *RacePickRepository) Upsert(_ context.Context, p racepick.Picks) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	r.items[racePickKey(p.UserID, p.Round)] = cloneRacePicks(p)
	return nil
}

func (r *RacePickRepository) ListByUser(_ context.Context, userID string) ([]racepick.Picks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]racepick.Picks, 0)
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, cloneRacePicks(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Round < out[j].Round
	})
	return out, nil
}

func (r *RacePickRepository) ListRecentUpdates(_ context.Context, limit int) ([]racepick.Update, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]racepick.Update, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, racepick.Update{UserID: p.UserID, Round: p.Round, UpdatedAt: p.UpdatedAt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *RacePickRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.items {
		if p.UserID == userID {
			delete(r.items, key)
		}
	}
	return nil
}

func racePickKey(userID string, round int) string {
	return fmt.Sprintf("%s::%d", userID, round)
}

func cloneRacePicks(p racepick.Picks) racepick.Picks {
	copied := p
	copied.QualPole = clonePtr(p.QualPole)
	copied.QualP2 = clonePtr(p.QualP2)
	copied.QualP3 = clonePtr(p.QualP3)
	copied.RaceWinner = clonePtr(p.RaceWinner)
	copied.RaceP2 = clonePtr(p.RaceP2)
	copied.RaceP3 = clonePtr(p.RaceP3)
	copied.FastestLap = clonePtr(p.FastestLap)
	copied.SafetyCar = clonePtr(p.SafetyCar)
	copied.SprintQualPole = clonePtr(p.SprintQualPole)
	copied.SprintQualP2 = clonePtr(p.SprintQualP2)
	copied.SprintQualP3 = clonePtr(p.SprintQualP3)
	copied.SprintWinner = clonePtr(p.SprintWinner)
	copied.SprintP2 = clonePtr(p.SprintP2)
	copied.SprintP3 = clonePtr(p.SprintP3)
	return copied
}
