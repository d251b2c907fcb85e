package atlas_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/binsort/atlas"
)

const binsSheet = `{
  "frames": {
    "bin_glass.png": {
      "frame": {"x": 0, "y": 0, "w": 96, "h": 128},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 96, "h": 128},
      "sourceSize": {"w": 96, "h": 128}
    },
    "bin_food.png": {
      "frame": {"x": 96, "y": 0, "w": 128, "h": 96},
      "rotated": true,
      "trimmed": true,
      "spriteSourceSize": {"x": 2, "y": 0, "w": 94, "h": 128},
      "sourceSize": {"w": 96, "h": 128}
    }
  },
  "meta": {
    "app": "https://www.codeandweb.com/texturepacker",
    "version": "1.0",
    "image": "bins.png",
    "format": "RGBA8888",
    "size": {"w": 256, "h": 128},
    "scale": "1"
  }
}`

func TestParse(t *testing.T) {
	a, err := atlas.Parse([]byte(binsSheet))
	require.NoError(t, err)

	assert.Equal(t, []string{"bin_food.png", "bin_glass.png"}, a.FrameNames())
	assert.Equal(t, "bins.png", a.Meta.Image)
	assert.Equal(t, atlas.Size{W: 256, H: 128}, a.Meta.Size)

	food := a.Frames["bin_food.png"]
	assert.True(t, food.Rotated)
	assert.Equal(t, atlas.Rect{X: 96, Y: 0, W: 96, H: 128}, food.Footprint())
	assert.Equal(t, atlas.Rect{X: 0, Y: 0, W: 96, H: 128}, a.Frames["bin_glass.png"].Footprint())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"frames":`},
		{"trailing data", `{"frames":{},"meta":{"image":"a.png","size":{"w":1,"h":1}}} {}`},
		{"array", `[]`},
		{"no meta", `{"frames":{}}`},
		{"no image", `{"frames":{},"meta":{"size":{"w":1,"h":1}}}`},
		{"frame without rect", `{"frames":{"a":{"rotated":false}},"meta":{"image":"a.png","size":{"w":1,"h":1}}}`},
		{"negative width", `{"frames":{"a":{"frame":{"x":0,"y":0,"w":-4,"h":4}}},"meta":{"image":"a.png","size":{"w":8,"h":8}}}`},
		{"string coordinate", `{"frames":{"a":{"frame":{"x":"0","y":0,"w":4,"h":4}}},"meta":{"image":"a.png","size":{"w":8,"h":8}}}`},
		{"outside sheet", `{"frames":{"a":{"frame":{"x":6,"y":0,"w":4,"h":4}}},"meta":{"image":"a.png","size":{"w":8,"h":8}}}`},
		{"rotated outside sheet", `{"frames":{"a":{"frame":{"x":0,"y":0,"w":8,"h":2},"rotated":true}},"meta":{"image":"a.png","size":{"w":8,"h":4}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := atlas.Validate([]byte(tt.raw))
			assert.ErrorIs(t, err, atlas.ErrInvalid)
		})
	}
}

func TestUnsizedSheetSkipsBounds(t *testing.T) {
	err := atlas.Validate([]byte(`{"frames":{"a":{"frame":{"x":60,"y":0,"w":4,"h":4}}},"meta":{"image":"a.png","size":{"w":0,"h":0}}}`))
	assert.NoError(t, err)
}

func TestBoundsErrorNamesFrames(t *testing.T) {
	err := atlas.Validate([]byte(`{"frames":{
		"b":{"frame":{"x":6,"y":0,"w":4,"h":4}},
		"a":{"frame":{"x":0,"y":6,"w":4,"h":4}},
		"ok":{"frame":{"x":0,"y":0,"w":4,"h":4}}
	},"meta":{"image":"a.png","size":{"w":8,"h":8}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a, b")
	assert.NotContains(t, err.Error(), "ok")
}

func ExampleParse() {
	a, err := atlas.Parse([]byte(binsSheet))
	if err != nil {
		panic(err)
	}
	for _, name := range a.FrameNames() {
		f := a.Frames[name].Footprint()
		fmt.Printf("%s at %g,%g size %gx%g\n", name, f.X, f.Y, f.W, f.H)
	}
	// Output:
	// bin_food.png at 96,0 size 96x128
	// bin_glass.png at 0,0 size 96x128
}
