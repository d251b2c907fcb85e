package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
)

func TestNewSceneStartsWithBinsHome(t *testing.T) {
	scene, err := game.NewScene(game.Options{Logger: quietLogger(), Seed: 1})
	require.NoError(t, err)

	require.Len(t, scene.HomeZones(), 6)
	require.Len(t, scene.Bins(), 6)
	want := []game.Material{game.Plastic, game.Food, game.Metal, game.Glass, game.Paper, game.General}
	for i, id := range scene.Bins() {
		assert.Equal(t, want[i], bin(scene, id).Material)
		z, ok := scene.Occupancy().ZoneOf(id)
		require.True(t, ok)
		assert.Equal(t, scene.HomeZones()[i], z)
		assert.Equal(t, pos(scene, z), pos(scene, id))
	}
	requireBijection(t, scene)

	assert.False(t, zone(scene, scene.TruckZone()).Active, "truck zone opens when the truck arrives")
	assert.True(t, scene.SpawnerState().Paused)
	assert.Empty(t, scene.Pieces())
}

func TestTruckArrivalStartsSpawning(t *testing.T) {
	scene := newParkedScene(t, game.Options{})

	truck := ecs.ReadComponent[game.Truck](scene.Storage(), scene.Truck())
	assert.Equal(t, game.TruckParked, truck.State)
	assert.InDelta(t, truck.ParkX, pos(scene, scene.Truck()).X, 1e-6)
	assert.True(t, zone(scene, scene.TruckZone()).Active)
	assert.False(t, scene.SpawnerState().Paused)
	assert.Len(t, scene.Pieces(), 1, "one piece as soon as the truck parks")
}

func TestBinDroppedOutsideReturnsToRest(t *testing.T) {
	scene := newParkedScene(t, game.Options{})
	id := scene.Bins()[2]
	home := scene.HomeZones()[2]
	rest := pos(scene, id)

	dragTo(t, scene, id, game.Point{X: 20, Y: 20})
	assert.True(t, scene.Animating())
	_, inZone := scene.Occupancy().ZoneOf(id)
	assert.False(t, inZone, "released while in flight")

	scene.Advance(600 * ms)
	assert.False(t, scene.Animating())
	assert.InDelta(t, rest.X, pos(scene, id).X, 1e-6)
	assert.InDelta(t, rest.Y, pos(scene, id).Y, 1e-6)
	z, ok := scene.Occupancy().ZoneOf(id)
	require.True(t, ok)
	assert.Equal(t, home, z)
	requireBijection(t, scene)
	assert.Equal(t, 1, scene.Stats().Reconciles)
	assert.Zero(t, scene.Stats().Repairs)
}

func TestBinMovesToFreedHomeZone(t *testing.T) {
	scene := newParkedScene(t, game.Options{})
	a, b := scene.Bins()[0], scene.Bins()[1]
	homeA := scene.HomeZones()[0]

	dragTo(t, scene, a, pos(scene, scene.TruckZone()))
	scene.Advance(time.Second)
	z, _ := scene.Occupancy().ZoneOf(a)
	assert.Equal(t, scene.TruckZone(), z)
	assert.Equal(t, pos(scene, scene.TruckZone()), bin(scene, a).Rest)

	dragTo(t, scene, b, pos(scene, homeA))
	scene.Advance(time.Second)
	z, _ = scene.Occupancy().ZoneOf(b)
	assert.Equal(t, homeA, z)
	_, ok := scene.Occupancy().OccupantOf(scene.HomeZones()[1])
	assert.False(t, ok, "b's old zone is free")
	requireBijection(t, scene)
}

func TestDropOnOccupiedZoneReturns(t *testing.T) {
	scene := newParkedScene(t, game.Options{})
	a := scene.Bins()[0]

	dragTo(t, scene, a, pos(scene, scene.HomeZones()[3]))
	scene.Advance(time.Second)

	z, _ := scene.Occupancy().ZoneOf(a)
	assert.Equal(t, scene.HomeZones()[0], z)
	assert.Equal(t, 1, scene.Stats().BinReturns)
	requireBijection(t, scene)
}

func TestEmptyBinNeverTips(t *testing.T) {
	emptied := 0
	scene := newParkedScene(t, game.Options{OnEmptied: func(ecs.EntityId, int) { emptied++ }})
	id := scene.Bins()[0]

	dragTo(t, scene, id, pos(scene, scene.TruckZone()))
	scene.Advance(3 * time.Second)

	assert.Zero(t, emptied)
	assert.Zero(t, scene.Stats().Tips)
	assert.Equal(t, game.BinEmpty, bin(scene, id).State)
	assert.Empty(t, scene.Stars())
}

func TestFullBinTipsExactlyOnce(t *testing.T) {
	var calls []int
	scene := newParkedScene(t, game.Options{OnEmptied: func(_ ecs.EntityId, n int) { calls = append(calls, n) }})
	id := scene.Bins()[1]
	b := bin(scene, id)
	for range 3 {
		require.True(t, b.AddGarbage(b.Material))
	}

	dragTo(t, scene, id, pos(scene, scene.TruckZone()))
	scene.Advance(800 * ms)
	assert.Equal(t, game.BinTipping, b.State)
	assert.False(t, scene.BeginDrag(scene.Bins()[2], 0, 0), "no drags while a bin animates")

	scene.Advance(2 * time.Second)
	assert.Equal(t, []int{3}, calls)
	assert.Zero(t, b.Count)
	assert.Equal(t, game.BinEmpty, b.State)
	assert.InDelta(t, 0, ecs.ReadComponent[game.Transform](scene.Storage(), id).Rotation, 1e-9)
	assert.False(t, scene.Animating())
	assert.Equal(t, 1, scene.Stats().Tips)
	assert.Equal(t, 3, ecs.ReadComponent[game.Truck](scene.Storage(), scene.Truck()).Collected)
	assert.Len(t, scene.Stars(), 3)
	requireBijection(t, scene)
}

func TestTippingBinRejectsGarbageAndDrags(t *testing.T) {
	b := &game.Bin{Material: game.Glass}
	assert.False(t, b.BeginTip(), "empty bins do not tip")
	require.True(t, b.AddGarbage(game.Glass))
	assert.False(t, b.AddGarbage(game.Paper))
	assert.Equal(t, game.BinFilling, b.State)

	require.True(t, b.BeginTip())
	assert.False(t, b.BeginTip())
	assert.False(t, b.AddGarbage(game.Glass))
	assert.Equal(t, 1, b.Empty())
	assert.Equal(t, game.BinTipping, b.State)
	b.FinishTip()
	assert.Equal(t, game.BinEmpty, b.State)
}

func TestStarsScoreOncePerClick(t *testing.T) {
	var scores []int
	scene := newParkedScene(t, game.Options{OnScore: func(n int) { scores = append(scores, n) }})
	id := scene.Bins()[0]
	b := bin(scene, id)
	for range 4 {
		b.AddGarbage(b.Material)
	}
	dragTo(t, scene, id, pos(scene, scene.TruckZone()))
	scene.Advance(3 * time.Second)
	require.Len(t, scene.Stars(), 4)

	clicked := 0
	for {
		var target ecs.EntityId
		for _, star := range scene.Stars() {
			if ecs.ReadComponent[game.Star](scene.Storage(), star).State == game.StarResting {
				target = star
				break
			}
		}
		if target == 0 {
			break
		}
		p := pos(scene, target)
		require.True(t, scene.Click(p.X, p.Y))
		clicked++
	}
	assert.Equal(t, 4, clicked)
	assert.Zero(t, scene.Score(), "score lands when the star reaches the counter")

	scene.Advance(time.Second)
	assert.Equal(t, 4, scene.Score())
	assert.Equal(t, []int{1, 2, 3, 4}, scores)
	assert.Empty(t, scene.Stars())
}

func TestFlyingStarsIgnoreClicks(t *testing.T) {
	scene := newParkedScene(t, game.Options{})
	id := scene.Bins()[0]
	bin(scene, id).AddGarbage(bin(scene, id).Material)
	dragTo(t, scene, id, pos(scene, scene.TruckZone()))

	// the bin empties 400ms into the tip, which starts after the 700ms drop
	scene.Advance(1200 * ms)
	stars := scene.Stars()
	require.Len(t, stars, 1)
	star := ecs.ReadComponent[game.Star](scene.Storage(), stars[0])
	require.Equal(t, game.StarFlying, star.State)
	p := pos(scene, stars[0])
	assert.False(t, scene.Click(p.X, p.Y))
}

func TestGoButtonSendsTruckAway(t *testing.T) {
	scene := newParkedScene(t, game.Options{})
	id := scene.Bins()[0]
	home := scene.HomeZones()[0]

	dragTo(t, scene, id, pos(scene, scene.TruckZone()))
	scene.Advance(time.Second)

	truck := ecs.ReadComponent[game.Truck](scene.Storage(), scene.Truck())
	truck.Collected = 10
	dragTo(t, scene, id, pos(scene, home))
	scene.Advance(time.Second)

	button := ecs.ReadComponent[game.Button](scene.Storage(), scene.GoButton())
	require.True(t, button.Visible)
	assert.False(t, zone(scene, scene.TruckZone()).Active)

	p := pos(scene, scene.GoButton())
	require.True(t, scene.Click(p.X, p.Y))
	assert.False(t, button.Visible)
	assert.True(t, scene.Animating())
	assert.True(t, scene.SpawnerState().Paused)
	assert.Equal(t, game.TruckLeaving, truck.State)

	scene.Advance(2500 * ms)
	assert.Equal(t, game.TruckAway, truck.State)

	scene.Advance(5 * time.Second)
	assert.Equal(t, game.TruckParked, truck.State)
	assert.Zero(t, truck.Collected)
	assert.True(t, zone(scene, scene.TruckZone()).Active)
	assert.False(t, scene.SpawnerState().Paused)
	assert.False(t, scene.Animating())
}

func TestGoButtonNeedsEnoughGarbage(t *testing.T) {
	scene := newParkedScene(t, game.Options{})
	id := scene.Bins()[0]

	dragTo(t, scene, id, pos(scene, scene.TruckZone()))
	scene.Advance(time.Second)
	dragTo(t, scene, id, pos(scene, scene.HomeZones()[0]))
	scene.Advance(time.Second)

	assert.False(t, ecs.ReadComponent[game.Button](scene.Storage(), scene.GoButton()).Visible)
	assert.True(t, zone(scene, scene.TruckZone()).Active)
}

func TestSameSeedSameGame(t *testing.T) {
	materials := func() []game.Material {
		scene := newParkedScene(t, game.Options{Seed: 42})
		scene.Advance(20 * time.Second)
		var out []game.Material
		for _, id := range scene.Pieces() {
			out = append(out, ecs.ReadComponent[game.Garbage](scene.Storage(), id).Material)
		}
		return out
	}
	assert.Equal(t, materials(), materials())
}
