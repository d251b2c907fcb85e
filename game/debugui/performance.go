package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/binsort/game"
)

type performancePanel struct {
	history   []float32
	index     int
	lastFrame time.Time
}

func newPerformancePanel(historyFrames int) *performancePanel {
	return &performancePanel{
		history:   make([]float32, historyFrames),
		lastFrame: time.Now(),
	}
}

func (p *performancePanel) render(scene *game.Scene) {
	now := time.Now()
	p.history[p.index] = float32(now.Sub(p.lastFrame).Seconds() * 1000)
	p.index = (p.index + 1) % len(p.history)
	p.lastFrame = now

	imgui.SetNextWindowPosV(imgui.NewVec2(920, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(350, 320), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var avg float32
	for _, ft := range p.history {
		avg += ft
	}
	avg /= float32(len(p.history))
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.history[0], int32(len(p.history)))

	storage := scene.Storage().CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		storage.TotalEntityCount, storage.ArchetypeCount, storage.SingletonCount))

	sched := scene.Scheduler().GetStats()
	imgui.Text(fmt.Sprintf("Clock: %s  Pending timers: %d", sched.Clock.Round(time.Millisecond), sched.PendingTimers))

	if imgui.TreeNodeStr("Systems") {
		if imgui.BeginTableV("SystemTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()
			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range storage.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%X: %d entities, %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
		}
		imgui.TreePop()
	}
	imgui.End()
}
