package comment

import "time"

// MaxContentLength bounds comment text.
const MaxContentLength = 500

// Comment is one post on a race discussion thread. Comments are immutable
// once created; there is no edit or delete path.
type Comment struct {
	ID        string
	UserID    string
	Round     int
	Content   string
	CreatedAt time.Time
}
