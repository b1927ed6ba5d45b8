package racepick

import "context"

type Repository interface {
	GetByUserAndRound(ctx context.Context, userID string, round int) (Picks, bool, error)
	// Upsert writes the full row keyed on (user_id, round); last write wins.
	Upsert(ctx context.Context, p Picks) error
	ListByUser(ctx context.Context, userID string) ([]Picks, error)
	ListRecentUpdates(ctx context.Context, limit int) ([]Update, error)
	DeleteByUser(ctx context.Context, userID string) error
}
