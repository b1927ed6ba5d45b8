package push

import "time"

// Subscription stores one user's web push subscription as an opaque JSON
// payload from the browser. One subscription per user; re-subscribing
// overwrites.
type Subscription struct {
	UserID       string
	Endpoint     string
	Subscription []byte
	CreatedAt    time.Time
}

// Message is what the relay delivers on our behalf. The service decides who
// receives a push; delivery transport is the relay's concern.
type Message struct {
	UserID       string
	Subscription []byte
	Title        string
	Body         string
	URL          string
}
