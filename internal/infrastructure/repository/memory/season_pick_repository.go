package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/radiogagalight/f1-together/internal/domain/seasonpick"
)

type SeasonPickRepository struct {
	mu    sync.RWMutex
	items map[string]seasonpick.Picks
}

func NewSeasonPickRepository() *SeasonPickRepository {
	return &SeasonPickRepository{items: make(map[string]seasonpick.Picks)}
}

func (r *SeasonPickRepository) GetByUser(_ context.Context, userID string) (seasonpick.Picks, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	if !ok {
		return seasonpick.Picks{}, false, nil
	}
	return cloneSeasonPicks(p), true, nil
}

func (r *SeasonPickRepository) UpsertCategory(_ context.Context, userID string, category seasonpick.Category, value *string) error {
	if !category.Valid() {
		return fmt.Errorf("upsert season pick: unknown category %q", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.items[userID]
	p.UserID = userID
	v := clonePtr(value)
	switch category {
	case seasonpick.CategoryWDCWinner:
		p.WDCWinner = v
	case seasonpick.CategoryWCCWinner:
		p.WCCWinner = v
	case seasonpick.CategoryMostWins:
		p.MostWins = v
	case seasonpick.CategoryMostPoles:
		p.MostPoles = v
	case seasonpick.CategoryMostPodiums:
		p.MostPodiums = v
	case seasonpick.CategoryFirstDNFDriver:
		p.FirstDNFDriver = v
	case seasonpick.CategoryFirstDNFConstructor:
		p.FirstDNFConstructor = v
	}
	p.UpdatedAt = time.Now().UTC()
	r.items[userID] = p
	return nil
}

func (r *SeasonPickRepository) ListRecentUpdates(_ context.Context, limit int) ([]seasonpick.Update, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]seasonpick.Update, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, seasonpick.Update{UserID: p.UserID, UpdatedAt: p.UpdatedAt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SeasonPickRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

type MidseasonPickRepository struct {
	mu    sync.RWMutex
	items map[string]seasonpick.MidseasonPicks
}

func NewMidseasonPickRepository() *MidseasonPickRepository {
	return &MidseasonPickRepository{items: make(map[string]seasonpick.MidseasonPicks)}
}

func (r *MidseasonPickRepository) GetByUser(_ context.Context, userID string) (seasonpick.MidseasonPicks, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	if !ok {
		return seasonpick.MidseasonPicks{}, false, nil
	}
	p.WDCWinner = clonePtr(p.WDCWinner)
	p.WCCWinner = clonePtr(p.WCCWinner)
	return p, true, nil
}

func (r *MidseasonPickRepository) UpsertCategory(_ context.Context, userID string, category seasonpick.MidseasonCategory, value *string) error {
	if !category.Valid() {
		return fmt.Errorf("upsert midseason pick: unknown category %q", category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.items[userID]
	p.UserID = userID
	v := clonePtr(value)
	switch category {
	case seasonpick.MidseasonCategoryWDCWinner:
		p.WDCWinner = v
	case seasonpick.MidseasonCategoryWCCWinner:
		p.WCCWinner = v
	}
	p.UpdatedAt = time.Now().UTC()
	r.items[userID] = p
	return nil
}

func (r *MidseasonPickRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

func cloneSeasonPicks(p seasonpick.Picks) seasonpick.Picks {
	copied := p
	copied.WDCWinner = clonePtr(p.WDCWinner)
	copied.WCCWinner = clonePtr(p.WCCWinner)
	copied.MostWins = clonePtr(p.MostWins)
	copied.MostPoles = clonePtr(p.MostPoles)
	copied.MostPodiums = clonePtr(p.MostPodiums)
	copied.FirstDNFDriver = clonePtr(p.FirstDNFDriver)
	copied.FirstDNFConstructor = clonePtr(p.FirstDNFConstructor)
	return copied
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
