package game_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
)

const ms = time.Millisecond

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newParkedScene returns a scene whose truck has arrived.
func newParkedScene(t *testing.T, opts game.Options) *game.Scene {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	scene, err := game.NewScene(opts)
	require.NoError(t, err)
	scene.Advance(4100 * ms)
	return scene
}

func pos(scene *game.Scene, id ecs.EntityId) game.Point {
	return ecs.ReadComponent[game.Transform](scene.Storage(), id).Pos()
}

func bin(scene *game.Scene, id ecs.EntityId) *game.Bin {
	return ecs.ReadComponent[game.Bin](scene.Storage(), id)
}

func zone(scene *game.Scene, id ecs.EntityId) *game.Zone {
	return ecs.ReadComponent[game.Zone](scene.Storage(), id)
}

// dragTo drags id from where it stands to p and lets go.
func dragTo(t *testing.T, scene *game.Scene, id ecs.EntityId, p game.Point) {
	t.Helper()
	from := pos(scene, id)
	require.True(t, scene.BeginDrag(id, from.X, from.Y), "drag should start")
	scene.DragTo((from.X+p.X)/2, (from.Y+p.Y)/2)
	scene.DragTo(p.X, p.Y)
	scene.EndDrag(p.X, p.Y)
}

// requireBijection checks that zone occupants and bin zones mirror each other.
func requireBijection(t *testing.T, scene *game.Scene) {
	t.Helper()
	occ := scene.Occupancy()
	for _, z := range scene.Zones() {
		if b, ok := occ.OccupantOf(z); ok {
			got, ok := occ.ZoneOf(b)
			require.True(t, ok, "bin %d in zone %d has no zone", b, z)
			require.Equal(t, z, got)
		}
	}
	for _, b := range scene.Bins() {
		if z, ok := occ.ZoneOf(b); ok {
			got, ok := occ.OccupantOf(z)
			require.True(t, ok, "zone %d of bin %d is empty", z, b)
			require.Equal(t, b, got)
		}
	}
	require.Empty(t, scene.Check())
}
