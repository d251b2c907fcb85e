package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/binsort/game"
)

const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg

var warnColor = imgui.NewVec4(1.0, 0.8, 0.0, 1.0)

func renderZones(scene *game.Scene) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 220), imgui.CondOnce)
	if !imgui.BeginV("Zones", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.BeginTableV("ZoneTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Zone")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Occupant")
		imgui.TableHeadersRow()

		for _, row := range ZoneRows(scene) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(entityLabel(row.ID, true))
			imgui.TableNextColumn()
			imgui.Text(row.Kind)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", row.Active))
			imgui.TableNextColumn()
			imgui.Text(row.Occupant)
		}
		imgui.EndTable()
	}
	imgui.End()
}

func renderBins(scene *game.Scene) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 240), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 220), imgui.CondOnce)
	if !imgui.BeginV("Bins", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.BeginTableV("BinTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Bin")
		imgui.TableSetupColumn("Material")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Zone")
		imgui.TableHeadersRow()

		for _, row := range BinRows(scene) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(entityLabel(row.ID, true))
			imgui.TableNextColumn()
			imgui.Text(row.Material.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Count))
			imgui.TableNextColumn()
			imgui.Text(row.State)
			imgui.TableNextColumn()
			imgui.Text(row.Zone)
		}
		imgui.EndTable()
	}

	if id, ok := scene.AnimatingBin(); ok {
		imgui.TextColored(warnColor, "animating "+entityLabel(id, true))
	}
	imgui.End()
}

func renderOccupancy(scene *game.Scene) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 470), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 230), imgui.CondOnce)
	if !imgui.BeginV("Occupancy", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	violations := scene.Check()
	if len(violations) == 0 {
		imgui.Text("zones and bins agree")
	}
	for _, v := range violations {
		imgui.TextColored(warnColor, fmt.Sprintf("zone %s / bin %s: %s",
			entityLabel(v.Zone, v.Zone != 0), entityLabel(v.Bin, v.Bin != 0), v.Reason))
	}
	if imgui.Button("Reconcile") {
		scene.Reconcile()
	}

	imgui.Separator()
	stats := scene.Stats()
	imgui.Text(fmt.Sprintf("Score: %d", scene.Score()))
	imgui.Text(fmt.Sprintf("Drags: %d  Drops: %d  Returns: %d", stats.Drags, stats.BinDrops, stats.BinReturns))
	imgui.Text(fmt.Sprintf("Tips: %d  Emptied: %d", stats.Tips, stats.Emptied))
	imgui.Text(fmt.Sprintf("Pieces: %d spawned, %d collected, %d returned", stats.PiecesSpawned, stats.PiecesCollected, stats.PiecesReturned))
	imgui.Text(fmt.Sprintf("Stars: %d spawned, %d collected", stats.StarsSpawned, stats.StarsCollected))
	imgui.Text(fmt.Sprintf("Truck trips: %d", stats.TruckTrips))
	imgui.Text(fmt.Sprintf("Reconciles: %d (%d violations, %d repairs)", stats.Reconciles, stats.Violations, stats.Repairs))
	imgui.End()
}
