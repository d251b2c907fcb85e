package ecs

import (
	"iter"
	"math/bits"
	"reflect"
)

// column is a type-erased store for one component type inside an archetype.
type column interface {
	Put(index int, item any) bool
	Clear(index int)
	Get(index int) any
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	ids       map[reflect.Type]int
	factories []func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]int),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
// Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.ids[t]; ok {
		return
	}
	r.ids[t] = len(r.factories)
	r.factories = append(r.factories, func() column {
		return &pagedColumn[T]{}
	})
}

// componentID returns the registration order of t, or -1 if t is unknown.
func (r *ComponentRegistry) componentID(t reflect.Type) int {
	id, ok := r.ids[t]
	if !ok {
		return -1
	}
	return id
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	id := r.componentID(t)
	if id < 0 {
		panic("component type " + t.String() + " not registered")
	}
	return r.factories[id]()
}

const pageSize = 64

// pagedColumn keeps components in fixed-size pages so pointers handed out by
// Get stay valid while the column grows.
type pagedColumn[T any] struct {
	pages []*[pageSize]T
}

func (c *pagedColumn[T]) Put(index int, item any) bool {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return false
	}

	page := index / pageSize
	for page >= len(c.pages) {
		c.pages = append(c.pages, new([pageSize]T))
	}
	c.pages[page][index%pageSize] = value
	return true
}

func (c *pagedColumn[T]) Clear(index int) {
	page := index / pageSize
	if index < 0 || page >= len(c.pages) {
		return
	}
	var zero T
	c.pages[page][index%pageSize] = zero
}

// Get returns a *T for the slot. Liveness is tracked by the archetype.
func (c *pagedColumn[T]) Get(index int) any {
	page := index / pageSize
	if index < 0 || page >= len(c.pages) {
		return nil
	}
	return &c.pages[page][index%pageSize]
}

// slotSet tracks which archetype slots hold a live entity.
type slotSet struct {
	words []uint64
	count int
}

func (s *slotSet) set(i int) {
	w := i / 64
	for w >= len(s.words) {
		s.words = append(s.words, 0)
	}
	if s.words[w]&(1<<(i%64)) == 0 {
		s.words[w] |= 1 << (i % 64)
		s.count++
	}
}

func (s *slotSet) unset(i int) bool {
	w := i / 64
	if i < 0 || w >= len(s.words) || s.words[w]&(1<<(i%64)) == 0 {
		return false
	}
	s.words[w] &^= 1 << (i % 64)
	s.count--
	return true
}

func (s *slotSet) has(i int) bool {
	w := i / 64
	return i >= 0 && w < len(s.words) && s.words[w]&(1<<(i%64)) != 0
}

// all yields live slots in ascending order.
func (s *slotSet) all() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w := 0; w < len(s.words); w++ {
			word := s.words[w]
			for word != 0 {
				bit := bits.TrailingZeros64(word)
				if !yield(w*64 + bit) {
					return
				}
				word &^= 1 << bit
			}
		}
	}
}
