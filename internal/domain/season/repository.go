package season

import "context"

type Repository interface {
	ListRaces(ctx context.Context) ([]Race, error)
	GetRace(ctx context.Context, round int) (Race, bool, error)
	ListDrivers(ctx context.Context) ([]Driver, error)
	GetDriver(ctx context.Context, id string) (Driver, bool, error)
	ListConstructors(ctx context.Context) ([]Constructor, error)
	GetConstructor(ctx context.Context, id string) (Constructor, bool, error)
}
