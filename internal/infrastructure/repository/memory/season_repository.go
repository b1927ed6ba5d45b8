package memory

import (
	"context"
	"sync"

	"github.com/radiogagalight/f1-together/internal/domain/season"
)

// SeasonRepository serves the static season catalog: calendar, drivers and
// constructors. The data is seeded at startup and never mutated.
type SeasonRepository struct {
	mu           sync.RWMutex
	races        map[int]season.Race
	raceOrder    []int
	drivers      map[string]season.Driver
	driverOrder  []string
	constructors map[string]season.Constructor
	ctorOrder    []string
}

func NewSeasonRepository(races []season.Race, drivers []season.Driver, constructors []season.Constructor) *SeasonRepository {
	r := &SeasonRepository{
		races:        make(map[int]season.Race, len(races)),
		raceOrder:    make([]int, 0, len(races)),
		drivers:      make(map[string]season.Driver, len(drivers)),
		driverOrder:  make([]string, 0, len(drivers)),
		constructors: make(map[string]season.Constructor, len(constructors)),
		ctorOrder:    make([]string, 0, len(constructors)),
	}

	for _, item := range races {
		r.races[item.Round] = item
		r.raceOrder = append(r.raceOrder, item.Round)
	}
	for _, item := range drivers {
		r.drivers[item.ID] = item
		r.driverOrder = append(r.driverOrder, item.ID)
	}
	for _, item := range constructors {
		r.constructors[item.ID] = item
		r.ctorOrder = append(r.ctorOrder, item.ID)
	}

	return r
}

func (r *SeasonRepository) ListRaces(_ context.Context) ([]season.Race, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Race, 0, len(r.raceOrder))
	for _, round := range r.raceOrder {
		out = append(out, r.races[round])
	}
	return out, nil
}

func (r *SeasonRepository) GetRace(_ context.Context, round int) (season.Race, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.races[round]
	return item, ok, nil
}

func (r *SeasonRepository) ListDrivers(_ context.Context) ([]season.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Driver, 0, len(r.driverOrder))
	for _, id := range r.driverOrder {
		out = append(out, r.drivers[id])
	}
	return out, nil
}

func (r *SeasonRepository) GetDriver(_ context.Context, id string) (season.Driver, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.drivers[id]
	return item, ok, nil
}

func (r *SeasonRepository) ListConstructors(_ context.Context) ([]season.Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Constructor, 0, len(r.ctorOrder))
	for _, id := range r.ctorOrder {
		out = append(out, r.constructors[id])
	}
	return out, nil
}

func (r *SeasonRepository) GetConstructor(_ context.Context, id string) (season.Constructor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.constructors[id]
	return item, ok, nil
}
