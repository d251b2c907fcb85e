package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"weak"
)

// Storage is the main ECS storage interface
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	order      []*Archetype
	signatures map[string]uint32
	singletons map[reflect.Type]reflect.Value
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		signatures: make(map[string]uint32),
		singletons: make(map[reflect.Type]reflect.Value),
	}
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; they are copied into storage either way.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types, ordered := s.canonicalize(components)
	return s.archetypeFor(types).spawn(ordered)
}

// canonicalize sorts components into registration order and returns their
// element types alongside.
func (s *Storage) canonicalize(components []any) ([]reflect.Type, []any) {
	type entry struct {
		id   int
		typ  reflect.Type
		comp any
	}

	entries := make([]entry, 0, len(components))
	for _, comp := range components {
		typ := componentType(comp)
		id := s.registry.componentID(typ)
		if id < 0 {
			panic("component type " + typ.String() + " not registered")
		}
		entries = append(entries, entry{id: id, typ: typ, comp: comp})
	}
	slices.SortFunc(entries, func(a, b entry) int { return a.id - b.id })

	types := make([]reflect.Type, len(entries))
	ordered := make([]any, len(entries))
	for i, e := range entries {
		if i > 0 && entries[i-1].id == e.id {
			panic("duplicate component type " + e.typ.String())
		}
		types[i] = e.typ
		ordered[i] = e.comp
	}
	return types, ordered
}

// componentType returns the element type of a component value, rejecting
// kinds that cannot be stored by value.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func (s *Storage) signature(types []reflect.Type) string {
	var b strings.Builder
	for _, t := range types {
		fmt.Fprintf(&b, "%d,", s.registry.componentID(t))
	}
	return b.String()
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	sig := s.signature(types)
	if id, ok := s.signatures[sig]; ok {
		return s.archetypes[id]
	}

	id := uint32(len(s.order) + 1)
	archetype := newArchetype(id, types, s.registry)
	s.signatures[sig] = id
	s.archetypes[id] = archetype
	s.order = append(s.order, archetype)
	return archetype
}

// GetArchetype returns the archetype holding exactly the given component
// types (if one exists). Pass zero values or pointers of each type.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types, _ := s.canonicalize(components)
	id, ok := s.signatures[s.signature(types)]
	if !ok {
		return nil
	}
	return s.archetypes[id]
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.alive(id)
}

// Delete removes all data related to the entity ID. Deleting a dead id is a no-op.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.delete(id)
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id, compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.alive(id) && archetype.HasComponent(compType)
}

// CreateEntityRef returns the shared ref for a live entity, creating it on
// first use. It returns nil for dead ids.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the id a ref points at, if the entity is alive.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches a ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// AddSingleton stores value as the single instance of its type, replacing
// any previous one in place. Singletons need no registration.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if ptr, ok := s.singletons[t]; ok {
		ptr.Elem().Set(reflect.ValueOf(value))
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = ptr
}

// ReadSingleton points *target at the stored singleton of type T and reports
// whether it exists. target must be a **T.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	ptr, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(ptr)
	return true
}

func (s *Storage) singletonPtr(t reflect.Type) (reflect.Value, bool) {
	ptr, ok := s.singletons[t]
	return ptr, ok
}

// ComponentReader is satisfied by Storage and anything else that can look up
// components by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to an entity's component, or nil if
// the entity is gone or lacks it.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
