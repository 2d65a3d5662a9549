package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kanban-api/domain"
)

// Collection is an append-ordered, mutex-guarded set of records of one
// kind. It models one table: equality lookup, filtered listing with a
// stable sort, shallow patch on update, no transactions, no foreign keys
// and no uniqueness beyond the generated id.
type Collection[T any] struct {
	kind  string
	stamp func(rec *T, id string, createdAt time.Time)

	mu    sync.Mutex
	items []T
}

// NewCollection builds an empty collection. stamp writes the generated id
// and creation timestamp into a fresh record.
func NewCollection[T any](kind string, stamp func(rec *T, id string, createdAt time.Time)) *Collection[T] {
	return &Collection[T]{kind: kind, stamp: stamp}
}

// Create assigns a fresh id and creation timestamp, appends the record and
// returns it.
func (c *Collection[T]) Create(rec T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stamp(&rec, uuid.NewString(), time.Now().UTC())
	c.items = append(c.items, rec)
	return rec
}

// Find returns the first record matching the predicate.
func (c *Collection[T]) Find(match func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.items {
		if match(rec) {
			return rec, nil
		}
	}
	var zero T
	return zero, domain.NotFoundError{Kind: c.kind}
}

// FindAll returns every record matching the predicate, stably sorted by
// less when provided. Ties keep insertion order.
func (c *Collection[T]) FindAll(match func(T) bool, less func(a, b T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]T, 0, len(c.items))
	for _, rec := range c.items {
		if match == nil || match(rec) {
			result = append(result, rec)
		}
	}
	if less != nil {
		sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	}
	return result
}

// Update applies the patch to the first matching record in place and
// returns the merged result.
func (c *Collection[T]) Update(match func(T) bool, apply func(rec *T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if match(c.items[i]) {
			apply(&c.items[i])
			return c.items[i], nil
		}
	}
	var zero T
	return zero, domain.NotFoundError{Kind: c.kind}
}

// Delete removes and returns the first matching record.
func (c *Collection[T]) Delete(match func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if match(c.items[i]) {
			rec := c.items[i]
			c.items = append(c.items[:i], c.items[i+1:]...)
			return rec, nil
		}
	}
	var zero T
	return zero, domain.NotFoundError{Kind: c.kind}
}

// Len reports the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
