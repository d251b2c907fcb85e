// Package debugui draws Dear ImGui panels over a running scene. Panels are
// entities in the scene's own storage, rendered by PanelSystem after the
// game systems have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
)

// Panel is a component holding one ImGui window's render function.
type Panel struct {
	Title  string
	Render func()
}

// InputState mirrors whether ImGui wants the pointer or keyboard this frame.
// The client checks it before handing input to the scene.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// PanelSystem refreshes InputState and defers every panel's render until
// the frame's commands are flushed.
type PanelSystem struct {
	Panels ecs.Query[struct{ *Panel }]
	Input  ecs.Singleton[InputState]
}

func (p *PanelSystem) Execute(frame *ecs.UpdateFrame) {
	state := p.Input.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range p.Panels.Values() {
		frame.Commands.Defer(item.Panel.Render)
	}
}

// Register adds the overlay's component types. Pass it as
// game.Options.Register.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Panel](registry)
}

// Install spawns the standard panels into scene and starts rendering them.
// The scene must have been built with Register.
func Install(scene *game.Scene) *ecs.Singleton[InputState] {
	storage := scene.Storage()
	input := ecs.NewSingleton[InputState](storage)

	perf := newPerformancePanel(120)
	storage.Spawn(Panel{Title: "Zones", Render: func() { renderZones(scene) }})
	storage.Spawn(Panel{Title: "Bins", Render: func() { renderBins(scene) }})
	storage.Spawn(Panel{Title: "Occupancy", Render: func() { renderOccupancy(scene) }})
	storage.Spawn(Panel{Title: "Performance", Render: func() { perf.render(scene) }})

	scene.AddSystem(&PanelSystem{})
	return input
}
