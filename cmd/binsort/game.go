package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
	"github.com/plus3/binsort/game/debugui"
	debugui_ebiten "github.com/plus3/binsort/game/debugui/ebiten"
)

// Game adapts a scene to ebiten's loop. Pointer presses become clicks or
// drags; the scene advances one fixed step per tick.
type Game struct {
	scene         *game.Scene
	width, height int

	backend *debugui_ebiten.Backend
	input   *ecs.Singleton[debugui.InputState]

	touchID  ebiten.TouchID
	touching bool
	pointerX float64
	pointerY float64
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.backend != nil {
		g.backend.BeginFrame()
		defer g.backend.EndFrame()
	}

	g.handlePointer()
	g.scene.Update(game.FrameStep.Seconds())
	return nil
}

func (g *Game) overlayWantsMouse() bool {
	if g.input == nil {
		return false
	}
	state := g.input.Get()
	return state != nil && state.WantCaptureMouse
}

func (g *Game) handlePointer() {
	pressed, held, released := g.pointer()

	switch {
	case pressed:
		if g.overlayWantsMouse() {
			return
		}
		if g.scene.Click(g.pointerX, g.pointerY) {
			return
		}
		if id, ok := g.scene.PickAt(g.pointerX, g.pointerY); ok {
			g.scene.BeginDrag(id, g.pointerX, g.pointerY)
		}
	case held:
		g.scene.DragTo(g.pointerX, g.pointerY)
	case released:
		g.scene.EndDrag(g.pointerX, g.pointerY)
	}
}

// pointer merges the mouse and the first touch into one pointer.
func (g *Game) pointer() (pressed, held, released bool) {
	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			g.touching = false
			return false, false, true
		}
		x, y := ebiten.TouchPosition(g.touchID)
		g.pointerX, g.pointerY = float64(x), float64(y)
		return false, true, false
	}
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		g.touchID, g.touching = ids[0], true
		x, y := ebiten.TouchPosition(g.touchID)
		g.pointerX, g.pointerY = float64(x), float64(y)
		return true, false, false
	}

	x, y := ebiten.CursorPosition()
	g.pointerX, g.pointerY = float64(x), float64(y)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		return true, false, false
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		return false, false, true
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return false, true, false
	}
	return false, false, false
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawScene(screen, g.scene)
	if g.backend != nil {
		g.backend.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
