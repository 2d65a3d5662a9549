package domain

import "time"

// Activity is one human-readable log line derived from a board mutation.
// Entries are immutable and best-effort; they are never the source of truth.
type Activity struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
