package domain

import "time"

// List is an ordered column within a board. Position is an ordering key,
// not required to be contiguous or unique; ties keep insertion order.
type List struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListWithTasks is a list enriched with its tasks, both position-ordered.
type ListWithTasks struct {
	List
	Tasks []Task `json:"tasks"`
}

// ListPatch carries the mutable list fields; nil means "leave unchanged".
type ListPatch struct {
	Title    *string `json:"title"`
	Position *int    `json:"position"`
}
