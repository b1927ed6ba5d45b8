package comment

import "context"

type Repository interface {
	Create(ctx context.Context, c Comment) error
	ListByRound(ctx context.Context, round int) ([]Comment, error)
	ListRecent(ctx context.Context, limit int) ([]Comment, error)
	DeleteByUser(ctx context.Context, userID string) error
}
