package main

import (
	"math/rand/v2"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
)

// bot plays the scene with random but plausible moves.
type bot struct {
	scene *game.Scene
	rng   *rand.Rand
	// accuracy is the chance a piece goes to its matching bin.
	accuracy float64
	// stray is the chance a bin is dropped outside every zone.
	stray float64

	moves int
}

func newBot(scene *game.Scene, seed uint64, accuracy, stray float64) *bot {
	return &bot{
		scene:    scene,
		rng:      rand.New(rand.NewPCG(seed, seed+1)),
		accuracy: accuracy,
		stray:    stray,
	}
}

func (b *bot) pos(id ecs.EntityId) game.Point {
	return ecs.ReadComponent[game.Transform](b.scene.Storage(), id).Pos()
}

// act makes at most one move. Moves are skipped while a bin animation is
// running, the same as a player's drags would be refused.
func (b *bot) act() {
	if b.scene.Animating() {
		return
	}
	r := b.rng.Float64()
	switch {
	case r < 0.5:
		b.sortPiece()
	case r < 0.8:
		b.moveBin()
	default:
		b.collect()
	}
}

func (b *bot) drag(id ecs.EntityId, to game.Point) bool {
	from := b.pos(id)
	if !b.scene.BeginDrag(id, from.X, from.Y) {
		return false
	}
	b.scene.DragTo((from.X+to.X)/2, (from.Y+to.Y)/2)
	b.scene.DragTo(to.X, to.Y)
	b.scene.EndDrag(to.X, to.Y)
	b.moves++
	return true
}

func (b *bot) sortPiece() {
	var idle []ecs.EntityId
	for _, id := range b.scene.Pieces() {
		if ecs.ReadComponent[game.Garbage](b.scene.Storage(), id).State == game.PieceIdle {
			idle = append(idle, id)
		}
	}
	if len(idle) == 0 {
		return
	}
	piece := idle[b.rng.IntN(len(idle))]
	material := ecs.ReadComponent[game.Garbage](b.scene.Storage(), piece).Material

	bins := b.scene.Bins()
	target := bins[b.rng.IntN(len(bins))]
	if b.rng.Float64() < b.accuracy {
		for _, id := range bins {
			if ecs.ReadComponent[game.Bin](b.scene.Storage(), id).Material == material {
				target = id
				break
			}
		}
	}
	b.drag(piece, b.pos(target))
}

func (b *bot) moveBin() {
	bins := b.scene.Bins()
	id := bins[b.rng.IntN(len(bins))]

	var to game.Point
	truckZone := b.scene.TruckZone()
	_, truckTaken := b.scene.Occupancy().OccupantOf(truckZone)
	switch {
	case b.rng.Float64() < b.stray:
		to = game.Point{X: 20 + b.rng.Float64()*200, Y: 20 + b.rng.Float64()*200}
	case !truckTaken && b.rng.IntN(2) == 0:
		to = b.pos(truckZone)
	default:
		homes := b.scene.HomeZones()
		to = b.pos(homes[b.rng.IntN(len(homes))])
	}
	b.drag(id, to)
}

func (b *bot) collect() {
	for _, id := range b.scene.Stars() {
		if ecs.ReadComponent[game.Star](b.scene.Storage(), id).State != game.StarResting {
			continue
		}
		p := b.pos(id)
		if b.scene.Click(p.X, p.Y) {
			b.moves++
		}
	}

	button := ecs.ReadComponent[game.Button](b.scene.Storage(), b.scene.GoButton())
	if button.Visible {
		p := b.pos(b.scene.GoButton())
		if b.scene.Click(p.X, p.Y) {
			b.moves++
		}
	}
}
