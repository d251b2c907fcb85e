package debugui

import (
	"fmt"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
)

// ZoneRow is one line of the zones table.
type ZoneRow struct {
	ID       ecs.EntityId
	Kind     string
	Active   bool
	Occupant string
}

// BinRow is one line of the bins table.
type BinRow struct {
	ID       ecs.EntityId
	Material game.Material
	Count    int
	State    string
	Zone     string
	Rest     game.Point
}

func entityLabel(id ecs.EntityId, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("#%d", id.Index())
}

// ZoneRows lists every zone, truck zone first.
func ZoneRows(scene *game.Scene) []ZoneRow {
	var rows []ZoneRow
	for _, id := range scene.Zones() {
		z := ecs.ReadComponent[game.Zone](scene.Storage(), id)
		if z == nil {
			continue
		}
		occupant, ok := scene.Occupancy().OccupantOf(id)
		rows = append(rows, ZoneRow{ID: id, Kind: z.Kind.String(), Active: z.Active, Occupant: entityLabel(occupant, ok)})
	}
	return rows
}

// BinRows lists every bin in spawn order.
func BinRows(scene *game.Scene) []BinRow {
	var rows []BinRow
	for _, id := range scene.Bins() {
		b := ecs.ReadComponent[game.Bin](scene.Storage(), id)
		if b == nil {
			continue
		}
		zone, ok := scene.Occupancy().ZoneOf(id)
		rows = append(rows, BinRow{
			ID:       id,
			Material: b.Material,
			Count:    b.Count,
			State:    b.State.String(),
			Zone:     entityLabel(zone, ok),
			Rest:     b.Rest,
		})
	}
	return rows
}
