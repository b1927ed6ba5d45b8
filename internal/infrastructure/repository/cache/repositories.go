package cache

import (
	"context"

	"github.com/radiogagalight/f1-together/internal/domain/profile"
	basecache "github.com/radiogagalight/f1-together/internal/platform/cache"
)

// ProfileRepository caches the profile directory reads that back mention
// resolution and the members page. Writes pass through and invalidate.
type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (profile.Profile, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, profileByIDKey(id), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: cloneProfile(item), exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cloneProfile(cached.value), cached.exists, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	v, err := r.cache.GetOrLoad(ctx, profileListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]profile.Profile, 0, len(items))
		for _, item := range items {
			out = append(out, cloneProfile(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]profile.Profile)
	out := make([]profile.Profile, 0, len(items))
	for _, item := range items {
		out = append(out, cloneProfile(item))
	}
	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileByIDKey(p.ID))
	r.cache.Delete(ctx, profileListKey)
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileByIDKey(id))
	r.cache.Delete(ctx, profileListKey)
	return nil
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

const profileListKey = "profile:list"

func profileByIDKey(id string) string {
	return "profile:id:" + id
}

func cloneProfile(p profile.Profile) profile.Profile {
	out := p
	out.FavTeams = append([]string(nil), p.FavTeams...)
	out.FavDrivers = append([]string(nil), p.FavDrivers...)
	return out
}
