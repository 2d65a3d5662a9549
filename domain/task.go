package domain

import "time"

// Task is a unit of work within a list. Reassigning ListID moves it
// across lists.
type Task struct {
	ID          string    `json:"id"`
	ListID      string    `json:"listId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	AssigneeID  string    `json:"assigneeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskPatch carries the mutable task fields; nil means "leave unchanged".
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
	ListID      *string `json:"listId"`
	AssigneeID  *string `json:"assigneeId"`
}
