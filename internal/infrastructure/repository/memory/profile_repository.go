package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/radiogagalight/f1-together/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]profile.Profile)}
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return profile.Profile{}, false, nil
	}
	return cloneProfile(p), true, nil
}

func (r *ProfileRepository) List(_ context.Context) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	r.items[p.ID] = cloneProfile(p)
	return nil
}

func (r *ProfileRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func cloneProfile(p profile.Profile) profile.Profile {
	copied := p
	copied.FavTeams = append([]string(nil), p.FavTeams...)
	copied.FavDrivers = append([]string(nil), p.FavDrivers...)
	return copied
}
