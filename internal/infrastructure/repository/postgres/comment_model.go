package postgres

import "time"

type commentTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Round     int       `db:"round"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type commentInsertModel struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	Round   int    `db:"round"`
	Content string `db:"content"`
}
