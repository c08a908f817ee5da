// Package recency implements a bounded key/value store that keeps its entries
// in strict least-recently-used order.
//
// The store is a hash map from key to list node plus an intrusive doubly
// linked list tracking recency, so Get, Put, Remove and eviction are O(1).
// Keys is the only O(size) operation; it copies the resident keys so callers
// can scan them while removing entries.
package recency

import "fmt"

type constError string

// ErrInvalidCapacity may be returned from [New].
const ErrInvalidCapacity = constError("invalid capacity")

func (errStr constError) Error() string { return string(errStr) }

// MinimumCapacity defines the lowest value supported by [New].
const MinimumCapacity = 1

// Store is a capacity-bounded LRU container.
// Concurrent access must be guarded by the caller.
// Constructed by [New].
type Store[K comparable, V any] struct {
	index    map[K]*node[K, V]
	root     node[K, V]
	capacity int
	onEvict  func(K, V)
}

// New creates a [Store] holding at most capacity entries.
// onEvict, if not nil, is called once for every entry dropped to make room
// for a new key. It is not called for [Store.Remove] or [Store.Purge].
func New[K comparable, V any](capacity int, onEvict func(K, V)) (*Store[K, V], error) {
	if capacity < MinimumCapacity {
		return nil, fmt.Errorf(
			"%w: must be >=%d but %d was requested",
			ErrInvalidCapacity, MinimumCapacity, capacity)
	}
	s := &Store[K, V]{
		index:    make(map[K]*node[K, V], capacity),
		capacity: capacity,
		onEvict:  onEvict,
	}
	s.root.init()
	return s, nil
}

// Get returns the value for key and marks it as most recently used.
// The boolean reports whether key was resident.
func (s *Store[K, V]) Get(key K) (V, bool) {
	n, ok := s.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	s.moveToFront(n)
	return n.value, true
}

// Peek returns the value for key without updating its recency.
func (s *Store[K, V]) Peek(key K) (V, bool) {
	if n, ok := s.index[key]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is resident without updating its recency.
func (s *Store[K, V]) Contains(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Put inserts or replaces the value for key and marks it as most recently
// used. Inserting a new key into a full store evicts the least recently
// used entry first.
func (s *Store[K, V]) Put(key K, value V) {
	if n, ok := s.index[key]; ok {
		n.value = value
		s.moveToFront(n)
		return
	}
	if len(s.index) >= s.capacity {
		s.evictOldest()
	}
	n := &node[K, V]{key: key, value: value}
	n.insertAfter(&s.root)
	s.index[key] = n
}

// Remove deletes key if present and reports whether it was.
// The relative order of the remaining entries is unchanged.
func (s *Store[K, V]) Remove(key K) bool {
	n, ok := s.index[key]
	if !ok {
		return false
	}
	delete(s.index, key)
	n.unlink()
	return true
}

// Keys returns a copy of the resident keys ordered from least to most
// recently used.
func (s *Store[K, V]) Keys() []K {
	keys := make([]K, 0, len(s.index))
	for n := s.root.prev; n != &s.root; n = n.prev {
		keys = append(keys, n.key)
	}
	return keys
}

// Oldest returns the least recently used entry without updating its recency.
func (s *Store[K, V]) Oldest() (K, V, bool) {
	if n := s.root.prev; n != &s.root {
		return n.key, n.value, true
	}
	var (
		key   K
		value V
	)
	return key, value, false
}

// Len returns the number of resident entries.
func (s *Store[_, _]) Len() int { return len(s.index) }

// Cap returns the maximum number of resident entries.
func (s *Store[_, _]) Cap() int { return s.capacity }

// Purge drops every entry. The capacity is unchanged.
func (s *Store[K, V]) Purge() {
	clear(s.index)
	s.root.init()
}

func (s *Store[K, V]) moveToFront(n *node[K, V]) {
	if s.root.next == n {
		return
	}
	n.unlink()
	n.insertAfter(&s.root)
}

func (s *Store[K, V]) evictOldest() {
	n := s.root.prev
	if n == &s.root {
		return
	}
	delete(s.index, n.key)
	n.unlink()
	if s.onEvict != nil {
		s.onEvict(n.key, n.value)
	}
}
