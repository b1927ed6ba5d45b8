package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/radiogagalight/f1-together/internal/domain/notification"
	qb "github.com/radiogagalight/f1-together/internal/platform/querybuilder"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateBatch writes every row in a single multi-row INSERT, so one comment's
// mention fan-out either lands whole or not at all.
func (r *NotificationRepository) CreateBatch(ctx context.Context, items []notification.Notification) error {
	if len(items) == 0 {
		return nil
	}

	query, args, err := insertNotificationsQuery(items)
	if err != nil {
		return fmt.Errorf("build insert notifications query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

// insertNotificationsQuery binds created_at from the model instead of
// leaving it to the column default, so the stored timestamp matches the
// one the service hands back to mark-read cursors.
func insertNotificationsQuery(items []notification.Notification) (string, []any, error) {
	builder := qb.InsertInto("notifications").
		Columns("id", "user_id", "from_user_id", "round", "comment_id", "created_at")
	for _, item := range items {
		builder.Values(item.ID, item.UserID, item.FromUserID, item.Round, item.CommentID, item.CreatedAt)
	}
	return builder.ToSQL()
}

func (r *NotificationRepository) ListUnread(ctx context.Context, userID string) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("read_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unread notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, notification.Notification{
			ID:         row.ID,
			UserID:     row.UserID,
			FromUserID: row.FromUserID,
			Round:      row.Round,
			CommentID:  row.CommentID,
			CreatedAt:  row.CreatedAt,
			ReadAt:     row.ReadAt,
		})
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("notifications").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("read_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count unread notifications query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkReadUpTo touches only rows at or before the cursor; notifications
// created after the caller's snapshot stay unread for the next fetch.
func (r *NotificationRepository) MarkReadUpTo(ctx context.Context, userID string, cursor time.Time) (int, error) {
	query, args, err := qb.Update("notifications").
		SetExpr("read_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("read_at"),
			qb.Lte("created_at", cursor),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build mark notifications read query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read rows affected: %w", err)
	}
	return int(affected), nil
}

func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM notifications WHERE user_id = $1 OR from_user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete notifications by user: %w", err)
	}
	return nil
}
