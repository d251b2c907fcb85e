package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
)

var (
	background   = color.RGBA{236, 240, 226, 255}
	zoneColor    = color.RGBA{150, 160, 140, 255}
	idleZone     = color.RGBA{200, 200, 195, 255}
	truckColor   = color.RGBA{70, 120, 80, 255}
	starColor    = color.RGBA{250, 205, 60, 255}
	buttonColor  = color.RGBA{60, 170, 90, 255}
	outlineColor = color.RGBA{255, 255, 255, 255}
)

var materialColors = map[game.Material]color.RGBA{
	game.Plastic: {240, 200, 40, 255},
	game.Food:    {130, 90, 50, 255},
	game.General: {90, 90, 90, 255},
	game.Metal:   {160, 170, 180, 255},
	game.Glass:   {60, 160, 200, 255},
	game.Paper:   {60, 90, 200, 255},
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func drawScene(screen *ebiten.Image, scene *game.Scene) {
	screen.Fill(background)
	storage := scene.Storage()

	for _, id := range scene.Zones() {
		z := ecs.ReadComponent[game.Zone](storage, id)
		r := scene.ZoneRect(id)
		c := zoneColor
		if !z.Active {
			c = idleZone
		}
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Width()), float32(r.Height()), 2, c, true)
	}

	drawTruck(screen, scene)

	for _, id := range scene.Bins() {
		drawBin(screen, scene, id)
	}
	for _, id := range scene.Pieces() {
		drawPiece(screen, scene, id)
	}
	for _, id := range scene.Stars() {
		t := ecs.ReadComponent[game.Transform](storage, id)
		size := scene.Tuning().Stars.Size
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(size/2*t.ScaleX), withAlpha(starColor, t.Alpha), true)
	}

	if button := ecs.ReadComponent[game.Button](storage, scene.GoButton()); button.Visible {
		t := ecs.ReadComponent[game.Transform](storage, scene.GoButton())
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(button.Width/2), buttonColor, true)
		ebitenutil.DebugPrintAt(screen, "GO", int(t.X)-6, int(t.Y)-8)
	}

	counter := scene.Tuning().Stars
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("score %d", scene.Score()), int(counter.CounterX), int(counter.CounterY))
}

func drawTruck(screen *ebiten.Image, scene *game.Scene) {
	t := ecs.ReadComponent[game.Transform](scene.Storage(), scene.Truck())
	truck := ecs.ReadComponent[game.Truck](scene.Storage(), scene.Truck())
	const w, h = 260, 140
	vector.DrawFilledRect(screen, float32(t.X-w/2), float32(t.Y-h/2), w, h, truckColor, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("collected %d", truck.Collected), int(t.X-w/2)+8, int(t.Y-h/2)+8)
}

func drawBin(screen *ebiten.Image, scene *game.Scene, id ecs.EntityId) {
	storage := scene.Storage()
	t := ecs.ReadComponent[game.Transform](storage, id)
	b := ecs.ReadComponent[game.Bin](storage, id)
	d := ecs.ReadComponent[game.Draggable](storage, id)

	w, h := d.Width*t.ScaleX, d.Height*t.ScaleY
	fillQuad(screen, t.X, t.Y, w, h, t.Rotation, withAlpha(materialColors[b.Material], t.Alpha))
	if b.Highlighted {
		r := scene.HitRect(id)
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Width()), float32(r.Height()), 3, outlineColor, true)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d", b.Material, b.Count), int(t.X-w/2)+4, int(t.Y-h/2)+4)
}

func drawPiece(screen *ebiten.Image, scene *game.Scene, id ecs.EntityId) {
	storage := scene.Storage()
	t := ecs.ReadComponent[game.Transform](storage, id)
	g := ecs.ReadComponent[game.Garbage](storage, id)
	d := ecs.ReadComponent[game.Draggable](storage, id)

	c := withAlpha(materialColors[g.Material], t.Alpha)
	w, h := d.Width*t.ScaleX, d.Height*t.ScaleY
	// variants differ only in silhouette
	switch g.Variant % 3 {
	case 0:
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(w*0.4), c, true)
	case 1:
		fillQuad(screen, t.X, t.Y, w*0.7, h*0.7, math.Pi/4, c)
	default:
		fillQuad(screen, t.X, t.Y, w*0.5, h*0.8, 0, c)
	}
}

// fillQuad fills a w by h rectangle centred on x, y and turned by angle
// radians.
func fillQuad(screen *ebiten.Image, x, y, w, h, angle float64, c color.RGBA) {
	sin, cos := math.Sincos(angle)
	corner := func(dx, dy float64) (float32, float32) {
		return float32(x + dx*cos - dy*sin), float32(y + dx*sin + dy*cos)
	}

	var path vector.Path
	path.MoveTo(corner(-w/2, -h/2))
	path.LineTo(corner(w/2, -h/2))
	path.LineTo(corner(w/2, h/2))
	path.LineTo(corner(-w/2, h/2))
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	screen.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
