package postgres

import "time"

type notificationTableModel struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	FromUserID string     `db:"from_user_id"`
	Round      int        `db:"round"`
	CommentID  string     `db:"comment_id"`
	CreatedAt  time.Time  `db:"created_at"`
	ReadAt     *time.Time `db:"read_at"`
}
