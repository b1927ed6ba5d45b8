package seasonpick

import "context"

type Repository interface {
	GetByUser(ctx context.Context, userID string) (Picks, bool, error)
	// UpsertCategory writes a single category value, creating the row when the
	// user has no picks yet. A nil value clears the category.
	UpsertCategory(ctx context.Context, userID string, category Category, value *string) error
	ListRecentUpdates(ctx context.Context, limit int) ([]Update, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type MidseasonRepository interface {
	GetByUser(ctx context.Context, userID string) (MidseasonPicks, bool, error)
	UpsertCategory(ctx context.Context, userID string, category MidseasonCategory, value *string) error
	DeleteByUser(ctx context.Context, userID string) error
}
