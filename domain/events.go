package domain

// Board event types carried on the broadcast channel.
const (
	ListCreated = "LIST_CREATED"
	ListUpdated = "LIST_UPDATED"
	ListDeleted = "LIST_DELETED"
	TaskCreated = "TASK_CREATED"
	TaskUpdated = "TASK_UPDATED"
	TaskDeleted = "TASK_DELETED"
)

// Event is the board-updated notification payload. BoardID addresses the
// subscriber group; exactly one of the payload fields is set depending on
// Type. The payload is attached best-effort: subscribers re-fetch full
// board state rather than applying it incrementally.
type Event struct {
	Type    string `json:"type"`
	BoardID string `json:"boardId"`
	List    *List  `json:"list,omitempty"`
	ListID  string `json:"listId,omitempty"`
	Task    *Task  `json:"task,omitempty"`
	TaskID  string `json:"taskId,omitempty"`
}
