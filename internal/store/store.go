// Package store provides the in-memory entity collections backing the
// service. State is volatile: a restart loses everything.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// Cloner lets the collection hand out deep copies so that no caller
// ever aliases stored data.
type Cloner[T any] interface {
	Clone() T
}

// Collection is a concurrent map from entity id to entity value. One
// RWMutex guards the whole collection: Update holds the write lock
// for the full read-modify-write, so concurrent updates to the same
// id serialize and each mutator sees the latest stored value. There
// is no cross-collection atomicity and no versioning; the last writer
// wins.
type Collection[T Cloner[T]] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
}

func NewCollection[T Cloner[T]]() *Collection[T] {
	return &Collection[T]{items: make(map[uuid.UUID]T)}
}

func (c *Collection[T]) Insert(id uuid.UUID, v T) {
	c.mu.Lock()
	c.items[id] = v.Clone()
	c.mu.Unlock()
}

// Get returns a copy of the stored value.
func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return v.Clone(), true
}

// Update applies fn to the stored value under the write lock and
// returns a copy of the result. No other operation on this collection
// interleaves with fn.
func (c *Collection[T]) Update(id uuid.UUID, fn func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	fn(&v)
	c.items[id] = v
	return v.Clone(), true
}

func (c *Collection[T]) Remove(id uuid.UUID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(c.items, id)
	return v, true
}

func (c *Collection[T]) Exists(id uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[id]
	return ok
}

// Find returns a copy of the first value matching pred. Iteration
// order is unspecified.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.items {
		if pred(v) {
			return v.Clone(), true
		}
	}
	var zero T
	return zero, false
}

// Filter returns copies of every value matching pred.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, v := range c.items {
		if pred(v) {
			out = append(out, v.Clone())
		}
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
