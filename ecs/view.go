package ecs

import (
	"iter"
	"reflect"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded pointer fields for each component type.
// An embedded EntityId field is filled with the entity's id.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idField  int
	required []reflect.Type
}

type viewField struct {
	index    int
	typ      reflect.Type
	optional bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage, idField: -1}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idField = i
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag on field " + field.Name + ": only named fields may be \"optional\"")
			}
			optional = true
		}

		compType := field.Type.Elem()
		v.fields = append(v.fields, viewField{index: i, typ: compType, optional: optional})
		if !optional {
			v.required = append(v.required, compType)
		}
	}
	return v
}

// matchesArchetype checks if an archetype contains all the required component types
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, typ := range v.required {
		if !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

// fill populates out for a live entity of archetype. columns maps each view
// field to an archetype column, or -1.
func (v *View[T]) fill(archetype *Archetype, id EntityId, columns []int, out *T) bool {
	rv := reflect.ValueOf(out).Elem()
	index := int(id.Index())

	for i, f := range v.fields {
		field := rv.Field(f.index)
		if columns[i] < 0 {
			if !f.optional {
				return false
			}
			field.SetZero()
			continue
		}
		field.Set(reflect.ValueOf(archetype.columns[columns[i]].Get(index)))
	}
	if v.idField >= 0 {
		rv.Field(v.idField).SetUint(uint64(id))
	}
	return true
}

func (v *View[T]) columnsFor(archetype *Archetype) []int {
	columns := make([]int, len(v.fields))
	for i, f := range v.fields {
		columns[i] = archetype.column(f.typ)
	}
	return columns
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is dead or missing any required components.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id) || !v.matchesArchetype(archetype) {
		return false
	}
	return v.fill(archetype, id, v.columnsFor(archetype), out)
}

// Get returns a populated view struct for the given entity, or nil
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef returns a populated view struct for the given entity ref, or nil if invalid
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetypes(archetypes []*Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range archetypes {
			if archetype.Len() == 0 {
				continue
			}
			columns := v.columnsFor(archetype)
			for id := range archetype.Iter() {
				var result T
				if !v.fill(archetype, id, columns, &result) {
					continue
				}
				if !yield(id, result) {
					return
				}
			}
		}
	}
}

// Iter returns an iterator over all entities that have the required components,
// in archetype creation order and ascending slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	matching := make([]*Archetype, 0, len(v.storage.order))
	for _, archetype := range v.storage.order {
		if v.matchesArchetype(archetype) {
			matching = append(matching, archetype)
		}
	}
	return v.iterArchetypes(matching)
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
