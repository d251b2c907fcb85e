// Package ebiten hosts the debug overlay on the Ebiten ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Backend wraps the Ebiten ImGui backend. BeginFrame and EndFrame bracket
// the scene update so panel renders land inside the ImGui frame.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the backend and its window. ImGui's ini file is
// disabled so panel layout does not persist between runs.
func NewBackend(title string, width, height int) *Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Backend{EbitenBackend: b}
}

// Overlay draws the ImGui frame on top of screen.
func (b *Backend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
