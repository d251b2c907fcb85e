package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/binsort/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnSharesArchetypeRegardlessOfOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(&Velocity{}, &Position{})
	c := storage.Spawn(Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.ArchetypeId(), c.ArchetypeId())
	assert.Len(t, storage.Archetypes(), 2)

	archetype := storage.GetArchetype(Velocity{}, Position{})
	require.NotNil(t, archetype)
	assert.Equal(t, a.ArchetypeId(), archetype.ID())
	assert.Equal(t, 2, archetype.Len())
	assert.Nil(t, storage.GetArchetype(Health{}))
}

func TestSpawnRejectsBadComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(Position{}, &Position{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestGetComponentIsStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1}, Label("first"))
	pos := ecs.ReadComponent[Position](storage, first)
	require.NotNil(t, pos)

	// grow the column past a page so a reallocating store would move pos
	for i := range 200 {
		storage.Spawn(Position{X: float32(i)}, Label("filler"))
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
	assert.Equal(t, Label("first"), *ecs.ReadComponent[Label](storage, first))
	assert.True(t, storage.HasComponent(first, reflect.TypeFor[Label]()))
	assert.False(t, storage.HasComponent(first, reflect.TypeFor[Health]()))
	assert.Nil(t, ecs.ReadComponent[Health](storage, first))
}

func TestDeleteClearsComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Health{Current: 3, Max: 5})
	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Delete(id))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Health]()))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Health]()))
	assert.False(t, storage.Delete(ecs.NewEntityId(99, 0, 0)))
}

type Settings struct {
	Volume int
}

func TestSingletonUpdatesInPlace(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	settings := ecs.NewSingleton(storage, Settings{Volume: 3})
	cached := settings.Get()
	require.NotNil(t, cached)

	storage.AddSingleton(Settings{Volume: 9})
	assert.Equal(t, 9, cached.Volume)

	var read *Settings
	require.True(t, storage.ReadSingleton(&read))
	assert.Same(t, cached, read)

	// the initializer only applies the first time
	again := ecs.NewSingleton(storage, Settings{Volume: 1})
	assert.Equal(t, 9, again.Get().Volume)
}

func TestSingletonMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var s ecs.Singleton[Settings]
	s.Init(storage)
	assert.False(t, s.Exists())

	var read *Settings
	assert.False(t, storage.ReadSingleton(&read))
	assert.Panics(t, func() { storage.ReadSingleton(Settings{}) })

	storage.AddSingleton(Settings{Volume: 2})
	assert.True(t, s.Exists())
	assert.Equal(t, 2, s.Get().Volume)
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)

	storage.Spawn(Position{}, Label("a"))
	storage.Spawn(Position{}, Label("b"))
	gone := storage.Spawn(Health{})
	storage.Delete(gone)
	ecs.NewSingleton(storage, Settings{})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Settings"}, stats.SingletonTypes)
	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Label"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 0, stats.ArchetypeBreakdown[1].EntityCount)
}
