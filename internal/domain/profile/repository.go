package profile

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, bool, error)
	List(ctx context.Context) ([]Profile, error)
	Upsert(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
}
