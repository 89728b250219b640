// Package store provides a generic in-memory keyed collection with sequential
// identity assignment. All state is volatile; collections are rebuilt empty at
// process start.
package store

import (
	"errors"
	"sync"
)

var ErrDuplicateKey = errors.New("item with this id already exists")

// Entity is any record the store can hold.
type Entity interface {
	EntityID() int
	SetEntityID(id int)
}

// Store holds records of a single type keyed by integer id. Ids are assigned
// monotonically starting at 1 and are never reused, even after deletion.
// Every operation takes the store's lock, so a Store is safe for concurrent
// use; composed check-then-act sequences still need their own serialization.
type Store[T Entity] struct {
	mu     sync.RWMutex
	items  map[int]T
	order  []int
	nextID int
}

func New[T Entity]() *Store[T] {
	return &Store[T]{
		items:  make(map[int]T),
		nextID: 1,
	}
}

// Create inserts the item. An item without an id is assigned the next
// sequential one; an item carrying an id that collides with an existing
// record fails with ErrDuplicateKey. An explicit id also advances the
// counter past it, so the auto-assign path can never hand out an id that
// is already taken.
func (s *Store[T]) Create(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.EntityID() == 0 {
		item.SetEntityID(s.nextID)
		s.nextID++
	} else {
		if _, exists := s.items[item.EntityID()]; exists {
			var zero T
			return zero, ErrDuplicateKey
		}
		if item.EntityID() >= s.nextID {
			s.nextID = item.EntityID() + 1
		}
	}

	s.items[item.EntityID()] = item
	s.order = append(s.order, item.EntityID())
	return item, nil
}

// Get returns the record for id. Absence is a valid result, not an error.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	return item, ok
}

// List returns all records in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Update replaces the record at id, preserving id regardless of what the
// passed item carries. Returns false if no record exists at id.
func (s *Store[T]) Update(id int, item T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		var zero T
		return zero, false
	}
	item.SetEntityID(id)
	s.items[id] = item
	return item, true
}

// Delete removes the record if present and reports whether removal occurred.
// The id counter is not decremented.
func (s *Store[T]) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Clear empties the store and resets the id counter to 1. Intended for test
// isolation, not steady-state operation.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[int]T)
	s.order = nil
	s.nextID = 1
}
