package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity that has exactly one particular set of
// component types.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	live    slotSet
	gens    []uint8
	free    []int
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// newArchetype creates an archetype for the given component types, which must
// already be in canonical (registration) order.
func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

// spawn stores one entity's components and returns its id. components must
// line up with a.types.
func (a *Archetype) spawn(components []any) EntityId {
	var index int
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = len(a.gens)
		a.gens = append(a.gens, 0)
	}

	for i, comp := range components {
		if !a.columns[i].Put(index, comp) {
			panic("component " + reflect.TypeOf(comp).String() + " does not match column " + a.types[i].String())
		}
	}
	a.live.set(index)
	return NewEntityId(a.id, a.gens[index], uint32(index))
}

// alive reports whether id names a live entity of this archetype.
func (a *Archetype) alive(id EntityId) bool {
	index := int(id.Index())
	return a.live.has(index) && a.gens[index] == id.Generation()
}

// column returns the position of compType in a.types, or -1.
func (a *Archetype) column(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// GetComponent returns a pointer to the component of the given type for the
// entity, or nil if the entity is gone or lacks the component.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	if !a.alive(id) {
		return nil
	}
	col := a.column(compType)
	if col < 0 {
		return nil
	}
	return a.columns[col].Get(int(id.Index()))
}

// delete frees the entity's slot and invalidates any EntityRef to it.
func (a *Archetype) delete(id EntityId) bool {
	if !a.alive(id) {
		return false
	}
	index := int(id.Index())

	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, col := range a.columns {
		col.Clear(index)
	}
	a.live.unset(index)
	a.gens[index]++
	a.free = append(a.free, index)
	return true
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) >= 0
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	return a.live.count
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		for index := range a.live.all() {
			if !a.live.has(index) {
				continue
			}
			if !yield(NewEntityId(a.id, a.gens[index], uint32(index))) {
				return
			}
		}
	}
}
