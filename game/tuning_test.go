package game_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/plus3/binsort/game"
)

func TestDefaultTuning(t *testing.T) {
	tuning := game.DefaultTuning()
	require.NoError(t, tuning.Validate())

	assert.Equal(t, 1280.0, tuning.Screen.Width)
	assert.Equal(t, 3*time.Second, tuning.Spawner.Interval)
	assert.Equal(t, 500*time.Millisecond, tuning.Bins.CleanupDelay)
	assert.Equal(t, []game.Material{game.Plastic, game.Food, game.Metal, game.Glass, game.Paper, game.General}, tuning.Bins.Order)
	assert.Equal(t, 10, tuning.Truck.GoThreshold)
}

func TestParseTuningOverlaysDefaults(t *testing.T) {
	tuning, err := game.ParseTuning([]byte(`
spawner:
  interval: 1500ms
bins:
  order: [glass, metal]
`))
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, tuning.Spawner.Interval)
	assert.Equal(t, 5, tuning.Spawner.MaxPieces, "untouched keys keep their defaults")
	assert.Equal(t, []game.Material{game.Glass, game.Metal}, tuning.Bins.Order)
	assert.Equal(t, 720.0, tuning.Screen.Height)
}

func TestParseTuningErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad material", "bins:\n  order: [cardboard]\n"},
		{"bad duration", "spawner:\n  interval: soon\n"},
		{"zero pieces", "spawner:\n  max_pieces: 0\n"},
		{"too many bins", "zones:\n  home_rows: 1\n"},
		{"zero rest tolerance", "bins:\n  rest_tolerance: 0\n"},
		{"negative rest tolerance", "bins:\n  rest_tolerance: -5\n"},
		{"inverted star speed", "stars:\n  min_speed: 300\n"},
		{"not yaml", "spawner: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.ParseTuning([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadTuning(t *testing.T) {
	tuning, err := game.LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultTuning(), tuning)

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("truck:\n  go_threshold: 3\n"), 0o644))
	tuning, err = game.LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tuning.Truck.GoThreshold)

	_, err = game.LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLayout(t *testing.T) {
	l := game.DefaultTuning().Layout()

	assert.Len(t, l.HomeZones, 6)
	assert.Len(t, l.Slots, 5)
	assert.InDelta(t, 134.4, l.ZoneWidth, 1e-9)
	assert.InDelta(t, 180.0, l.ZoneHeight, 1e-9)
	assert.InDelta(t, 960.0, l.HomeZones[0].X, 1e-9)
	assert.InDelta(t, 180.0, l.HomeZones[0].Y, 1e-9)
	assert.InDelta(t, 960.0+134.4*1.5, l.HomeZones[1].X, 1e-9)
	assert.InDelta(t, 360.0, l.HomeZones[2].Y, 1e-9)
	assert.Equal(t, game.Point{X: 128, Y: 640}, l.Slots[0])
	assert.Equal(t, game.Point{X: 608, Y: 640}, l.Slots[4])
	assert.Equal(t, game.Point{X: 640, Y: 360}, l.Center)
}

func TestMaterialText(t *testing.T) {
	for _, m := range game.Materials {
		parsed, err := game.ParseMaterial(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	m, err := game.ParseMaterial("GLASS")
	require.NoError(t, err)
	assert.Equal(t, game.Glass, m)

	_, err = game.ParseMaterial("cardboard")
	assert.Error(t, err)
	assert.Equal(t, "material(9)", game.Material(9).String())

	out, err := yaml.Marshal(map[string]game.Material{"bin": game.Paper})
	require.NoError(t, err)
	assert.Equal(t, "bin: paper\n", string(out))
}

func TestRectContainsEdges(t *testing.T) {
	r := game.RectAround(game.Point{X: 100, Y: 100}, 40, 20)

	assert.True(t, r.Contains(game.Point{X: 80, Y: 90}), "corner")
	assert.True(t, r.Contains(game.Point{X: 120, Y: 110}), "corner")
	assert.True(t, r.Contains(r.Center()))
	assert.False(t, r.Contains(game.Point{X: 79.9, Y: 100}))
	assert.False(t, r.Contains(game.Point{X: 100, Y: 110.1}))
	assert.Equal(t, 40.0, r.Width())
	assert.Equal(t, 20.0, r.Height())
}

func TestPointNear(t *testing.T) {
	p := game.Point{X: 10, Y: 10}

	assert.True(t, p.Near(game.Point{X: 19.9, Y: 0.1}, 10))
	assert.False(t, p.Near(game.Point{X: 20, Y: 10}, 10), "tolerance is exclusive")
	assert.False(t, p.Near(game.Point{X: 10, Y: -0.5}, 10))
}
