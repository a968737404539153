// Package memory holds the in-process entity collections. Nothing here is
// persisted; the collections are the authoritative copy for the session.
package memory

import (
	"sync"

	xerrors "crm-client/internal/pkg/errors"
)

// Entity is any record addressed by a positive integer id.
type Entity interface {
	GetID() int64
}

// Collection is an insertion-ordered set of records with monotonic ids.
type Collection[T Entity] struct {
	mu        sync.RWMutex
	kind      string
	items     []T
	highWater int64
}

// NewCollection seeds a collection. kind names the entity in errors.
func NewCollection[T Entity](kind string, initial []T) *Collection[T] {
	c := &Collection[T]{kind: kind}
	c.Replace(initial)
	return c
}

func (c *Collection[T]) Kind() string {
	return c.kind
}

// nextID must be called with the write lock held.
func (c *Collection[T]) nextID() int64 {
	max := c.highWater
	for _, item := range c.items {
		if id := item.GetID(); id > max {
			max = id
		}
	}
	return max + 1
}

// Insert assigns the next id, builds the record with it and appends it.
// Ids are never handed out twice, even after the highest record is deleted.
func (c *Collection[T]) Insert(build func(id int64) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID()
	item, err := build(id)
	if err != nil {
		var zero T
		return zero, err
	}
	c.items = append(c.items, item)
	c.highWater = id
	return item, nil
}

// Prepend is Insert that puts the record first. Used by the mailbox, which
// keeps newest mail on top.
func (c *Collection[T]) Prepend(build func(id int64) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID()
	item, err := build(id)
	if err != nil {
		var zero T
		return zero, err
	}
	c.items = append([]T{item}, c.items...)
	c.highWater = id
	return item, nil
}

// Update applies mutate to the record with the given id and stores the result.
// A failing mutate leaves the record untouched.
func (c *Collection[T]) Update(id int64, mutate func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	idx := c.indexOf(id)
	if idx < 0 {
		return zero, xerrors.NotFound(c.kind, id)
	}
	updated := c.items[idx]
	if err := mutate(&updated); err != nil {
		return zero, err
	}
	c.items[idx] = updated
	return updated, nil
}

// UpdateWhere mutates every record matching pred and returns how many changed.
func (c *Collection[T]) UpdateWhere(pred func(T) bool, mutate func(*T)) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for i := range c.items {
		if pred(c.items[i]) {
			mutate(&c.items[i])
			n++
		}
	}
	return n
}

// Delete removes the record and returns it as it was.
func (c *Collection[T]) Delete(id int64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, xerrors.NotFound(c.kind, id)
	}
	removed := c.items[idx]
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	return removed, nil
}

// DeleteWhere removes every record matching pred and returns them.
func (c *Collection[T]) DeleteWhere(pred func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed []T
	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if pred(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	return removed
}

func (c *Collection[T]) Find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], true
	}
	var zero T
	return zero, false
}

// FindFirst returns the first record, in insertion order, matching pred.
func (c *Collection[T]) FindFirst(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the matching records in insertion order. Never nil.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0)
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// All returns a copy of every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Replace swaps the whole content, e.g. after loading from the backend.
// The id high-water mark only ever grows.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]T, len(items))
	copy(c.items, items)
	for _, item := range c.items {
		if id := item.GetID(); id > c.highWater {
			c.highWater = id
		}
	}
}

// Clear drops every record. Ids keep counting from the old high-water mark.
func (c *Collection[T]) Clear() {
	c.Replace(nil)
}

func (c *Collection[T]) indexOf(id int64) int {
	for i, item := range c.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}
