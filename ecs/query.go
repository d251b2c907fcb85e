package ecs

import "iter"

// Query wraps a View and caches the list of matching archetypes between
// calls. Systems declare Query fields and the Scheduler initializes them.
type Query[T any] struct {
	view      *View[T]
	storage   *Storage
	matching  []*Archetype
	seenCount int
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matching = nil
	q.seenCount = 0
}

// refresh picks up archetypes created since the last call. Archetypes are
// never removed, so only the tail of storage.order needs checking.
func (q *Query[T]) refresh() {
	if q.view == nil {
		panic("Query used before Init")
	}
	for _, archetype := range q.storage.order[q.seenCount:] {
		if q.view.matchesArchetype(archetype) {
			q.matching = append(q.matching, archetype)
		}
	}
	q.seenCount = len(q.storage.order)
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	return q.view.iterArchetypes(q.matching)
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range q.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}

// Get returns the view struct for one entity, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	if q.view == nil {
		panic("Query used before Init")
	}
	return q.view.Get(id)
}
