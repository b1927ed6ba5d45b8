package notification

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBatch inserts all notifications in one statement so that a comment's
	// mention fan-out is atomic: either every recipient gets a row or none does.
	CreateBatch(ctx context.Context, items []Notification) error
	ListUnread(ctx context.Context, userID string) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkReadUpTo sets read_at on the user's unread notifications created at or
	// before the cursor. Rows written after the cursor stay unread.
	MarkReadUpTo(ctx context.Context, userID string, cursor time.Time) (int, error)
	DeleteByUser(ctx context.Context, userID string) error
}
