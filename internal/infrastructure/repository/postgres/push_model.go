package postgres

import "time"

type pushSubscriptionTableModel struct {
	UserID       string    `db:"user_id"`
	Endpoint     string    `db:"endpoint"`
	Subscription []byte    `db:"subscription"`
	CreatedAt    time.Time `db:"created_at"`
}

type pushSubscriptionInsertModel struct {
	UserID       string `db:"user_id"`
	Endpoint     string `db:"endpoint"`
	Subscription []byte `db:"subscription"`
}
