package domain

import "time"

// User is referenced by boards (owner) and tasks (assignee). Credential
// handling lives outside this service; only the directory projection is
// served here.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
