// Package activity keeps a bounded, in-memory trail of board mutation
// summaries. It is a diagnostic log, not an audit trail: a single global
// sequence capped at 100 entries, oldest evicted first.
package activity

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"kanban-api/domain"
)

const globalCap = 100

// Trail is the process-wide activity log. Appends are serialized so the
// cap and most-recent-first ordering stay exact under concurrent writers.
type Trail struct {
	mu      sync.Mutex
	entries []domain.Activity
}

// New creates an empty trail.
func New() *Trail {
	return &Trail{}
}

// Append inserts an entry at the head and evicts from the tail once the
// global cap is exceeded.
func (t *Trail) Append(boardID, userID, message string) domain.Activity {
	entry := domain.Activity{
		ID:        strconv.FormatInt(nextTimestamp(), 36),
		BoardID:   boardID,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append([]domain.Activity{entry}, t.entries...)
	if len(t.entries) > globalCap {
		t.entries = t.entries[:globalCap]
	}
	return entry
}

// ForBoard returns the board's entries, most recent first.
func (t *Trail) ForBoard(boardID string) []domain.Activity {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]domain.Activity, 0, len(t.entries))
	for _, e := range t.entries {
		if e.BoardID == boardID {
			result = append(result, e)
		}
	}
	return result
}

// Len reports the global entry count.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

var lastTimestamp int64

// nextTimestamp returns strictly increasing nanosecond timestamps so
// time-based entry ids never collide.
func nextTimestamp() int64 {
	for {
		now := time.Now().UnixNano()
		last := atomic.LoadInt64(&lastTimestamp)
		if now <= last {
			now = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastTimestamp, last, now) {
			return now
		}
	}
}
