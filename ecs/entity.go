package ecs

// EntityId packs the archetype ID (upper 32 bits), a slot generation (next 8
// bits) and the slot index (lower 24 bits). The generation changes every time
// a slot is recycled, so an id held past its entity's deletion never resolves
// to the entity that reuses the slot.
type EntityId uint64

const (
	indexBits      = 24
	indexMask      = 1<<indexBits - 1
	generationMask = 0xFF
)

// NewEntityId creates an EntityId from an archetype ID, slot generation and slot index
func NewEntityId(archetypeId uint32, generation uint8, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(generation)<<indexBits | uint64(index&indexMask))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint8 {
	return uint8(e >> indexBits & generationMask)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & indexMask)
}

// EntityRef is a stable, shared handle to an entity. The storage hands out a
// single EntityRef per live entity and zeroes it when the entity is deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity is still alive.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}

// Is reports whether the ref currently points at id.
func (r *EntityRef) Is(id EntityId) bool {
	return r.Valid() && r.Id == id
}
