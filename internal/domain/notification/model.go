package notification

import "time"

// Notification records one @mention directed at a user. Created at most once
// per (comment, mentioned user) pair; the only mutation is setting ReadAt,
// once, when the recipient next opens their feed.
type Notification struct {
	ID         string
	UserID     string
	FromUserID string
	Round      int
	CommentID  string
	CreatedAt  time.Time
	ReadAt     *time.Time
}
