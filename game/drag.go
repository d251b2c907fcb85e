package game

import (
	"math"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/tween"
)

type dragState struct {
	entity    ecs.EntityId
	bin       bool
	offset    Point
	startZone ecs.EntityId
}

// PickAt returns the draggable entity under the pointer. Pieces sit on top
// of bins.
func (s *Scene) PickAt(x, y float64) (ecs.EntityId, bool) {
	p := Point{x, y}

	var picked ecs.EntityId
	for item := range s.pieces.Values() {
		if item.Garbage.State == PieceCollecting {
			continue
		}
		if hitRect(item.Transform, item.Draggable.Width, item.Draggable.Height).Contains(p) {
			picked = item.EntityId
		}
	}
	if picked != 0 {
		return picked, true
	}

	for _, id := range s.bins {
		if s.HitRect(id).Contains(p) {
			return id, true
		}
	}
	return 0, false
}

// Dragging returns the entity being dragged, if any.
func (s *Scene) Dragging() (ecs.EntityId, bool) {
	if s.drag == nil {
		return 0, false
	}
	return s.drag.entity, true
}

// BeginDrag picks up a bin or piece at pointer position x, y. It refuses
// while a bin animation is in flight, while another drag is active, and for
// tipping bins or pieces already being collected.
func (s *Scene) BeginDrag(id ecs.EntityId, x, y float64) bool {
	if s.animating || s.drag != nil {
		return false
	}
	t := s.transform(id)
	if t == nil {
		return false
	}

	drag := &dragState{entity: id, offset: Point{x - t.X, y - t.Y}}
	switch {
	case ecs.ReadComponent[Bin](s.storage, id) != nil:
		b := ecs.ReadComponent[Bin](s.storage, id)
		if b.State == BinTipping {
			return false
		}
		drag.bin = true
		drag.startZone, _ = s.occupancy.ZoneOf(id)
		if err := s.occupancy.Release(id); err != nil {
			s.logger.Warn("release bin", "bin", id, "err", err)
		}
		scale := s.tuning.Bins.DragScale
		s.play(id, "body", s.scaleTo(id, scale, scale, 200*ms, tween.QuadOut))

	case ecs.ReadComponent[Garbage](s.storage, id) != nil:
		g := ecs.ReadComponent[Garbage](s.storage, id)
		if g.State == PieceCollecting {
			return false
		}
		g.State = PieceDragged
		scale := s.tuning.Pieces.DragScale
		s.play(id, "body", s.scaleTo(id, scale, scale, 200*ms, tween.QuadOut))

	default:
		return false
	}

	s.drag = drag
	s.spawner.Get().Dragging = true
	s.stats.Drags++
	return true
}

// DragTo moves the dragged entity with the pointer. Dragging a piece
// highlights the bins that would take it.
func (s *Scene) DragTo(x, y float64) {
	if s.drag == nil {
		return
	}
	t := s.transform(s.drag.entity)
	t.X, t.Y = x-s.drag.offset.X, y-s.drag.offset.Y

	if !s.drag.bin {
		s.highlightBins(s.drag.entity, Point{x, y})
	}
}

// EndDrag drops the dragged entity at pointer position x, y.
func (s *Scene) EndDrag(x, y float64) {
	drag := s.drag
	if drag == nil {
		return
	}
	s.drag = nil
	s.spawner.Get().Dragging = false

	p := Point{x, y}
	if drag.bin {
		s.dropBin(drag, p)
		s.scheduler.After(s.tuning.Bins.CleanupDelay, func() { s.Reconcile() })
		return
	}
	s.dropPiece(drag.entity, p)
}

func (s *Scene) binBlocked(id ecs.EntityId) bool {
	return s.animating && s.animatingBin == id
}

func (s *Scene) inHomeZone(b *Bin) bool {
	if !b.Zone.Valid() {
		return false
	}
	z := ecs.ReadComponent[Zone](s.storage, b.Zone.Id)
	return z != nil && z.Kind == ZoneHome
}

// binTaking returns the bin under p that would take piece g.
func (s *Scene) binTaking(g *Garbage, p Point) (ecs.EntityId, *Bin) {
	for _, id := range s.bins {
		if s.binBlocked(id) || !s.HitRect(id).Contains(p) {
			continue
		}
		b := ecs.ReadComponent[Bin](s.storage, id)
		if s.inHomeZone(b) && g.AcceptedBy(b) && b.Accepts(g.Material) {
			return id, b
		}
	}
	return 0, nil
}

func (s *Scene) highlightBins(piece ecs.EntityId, p Point) {
	g := ecs.ReadComponent[Garbage](s.storage, piece)
	target, _ := s.binTaking(g, p)
	for _, id := range s.bins {
		if s.binBlocked(id) {
			continue
		}
		s.setHighlight(id, id == target)
	}
}

func (s *Scene) clearHighlights() {
	for _, id := range s.bins {
		s.setHighlight(id, false)
	}
}

func (s *Scene) setHighlight(id ecs.EntityId, on bool) {
	b := ecs.ReadComponent[Bin](s.storage, id)
	if b.Highlighted == on {
		return
	}
	b.Highlighted = on
	scale := 1.0
	if on {
		scale = s.tuning.Bins.HighlightScale
	}
	s.play(id, "body", s.scaleTo(id, scale, scale, 150*ms, tween.QuadOut))
}

// dropBin tries the truck zone first, then the home zones in grid order, and
// otherwise sends the bin back to where it last rested.
func (s *Scene) dropBin(drag *dragState, p Point) {
	id := drag.entity
	b := ecs.ReadComponent[Bin](s.storage, id)

	truckZone := ecs.ReadComponent[Zone](s.storage, s.truckZone)
	if truckZone.Active && !truckZone.Occupant.Valid() && s.zoneRect(s.truckZone).Contains(p) {
		s.placeBin(id, b, s.truckZone, true)
		return
	}

	for _, zoneID := range s.homeZones {
		z := ecs.ReadComponent[Zone](s.storage, zoneID)
		if z.Occupant.Valid() || !s.zoneRect(zoneID).Contains(p) {
			continue
		}
		truck := ecs.ReadComponent[Truck](s.storage, s.truck)
		if drag.startZone == s.truckZone && truck.Collected >= s.tuning.Truck.GoThreshold {
			truckZone.Active = false
			ecs.ReadComponent[Button](s.storage, s.goButton).Visible = true
			s.logger.Debug("truck ready to leave", "collected", truck.Collected)
		}
		s.placeBin(id, b, zoneID, false)
		return
	}

	s.returnBin(id, b)
}

func (s *Scene) placeBin(id ecs.EntityId, b *Bin, zoneID ecs.EntityId, truck bool) {
	if err := s.occupancy.Assign(zoneID, id); err != nil {
		s.logger.Warn("assign bin", "bin", id, "zone", zoneID, "err", err)
	}
	target := s.transform(zoneID).Pos()
	b.Rest = target
	s.animating, s.animatingBin = true, id
	s.stats.BinDrops++

	t := s.transform(id)
	pop := tween.New(0, 1.3, 200*ms, tween.Linear, t.SetScale)
	pop.Yoyo = true
	pop.OnStart = func() { pop.From = t.ScaleX }

	s.play(id, "body", tween.Seq(
		pop,
		tween.Parallel(
			s.moveTo(id, target, 300*ms, tween.BackOut),
			s.scaleTo(id, 1, 1, 300*ms, tween.BackOut),
		),
		tween.Call(func() {
			if truck && b.Count > 0 {
				s.tip(id, b)
				return
			}
			s.settle(id)
		}),
	))
}

// returnBin animates the bin back to its rest position and puts it in the
// zone found there.
func (s *Scene) returnBin(id ecs.EntityId, b *Bin) {
	s.animating, s.animatingBin = true, id
	s.stats.BinReturns++

	s.play(id, "body", tween.Seq(
		tween.Parallel(
			s.moveTo(id, b.Rest, 400*ms, tween.BackOut),
			s.scaleTo(id, 1, 1, 400*ms, tween.BackOut),
		),
		tween.Call(func() {
			for _, zoneID := range s.Zones() {
				if !s.transform(zoneID).Pos().Near(b.Rest, s.tuning.Bins.RestTolerance) {
					continue
				}
				if err := s.occupancy.Assign(zoneID, id); err != nil {
					s.logger.Warn("return bin", "bin", id, "zone", zoneID, "err", err)
				}
				break
			}
			s.settle(id)
		}),
	))
}

// tip runs the tipping animation. The bin empties once the rotation is
// done, before it rights itself.
func (s *Scene) tip(id ecs.EntityId, b *Bin) {
	if !b.BeginTip() {
		s.settle(id)
		return
	}
	s.stats.Tips++

	t := s.transform(id)
	tip := s.tuning.Tipping
	angle := tip.AngleDegrees * math.Pi / 180
	setRotation := func(v float64) { t.Rotation = v }

	s.play(id, "tip", tween.Seq(
		tween.New(0, angle, tip.Rotate, tween.QuadOut, setRotation),
		tween.Call(func() { s.emptied(id, b.Empty()) }),
		tween.Delay(tip.Hold),
		tween.New(angle, 0, tip.Return, tween.QuadOut, setRotation),
		tween.Call(func() {
			b.FinishTip()
			s.settle(id)
		}),
	))
}

func (s *Scene) settle(id ecs.EntityId) {
	if s.animatingBin == id {
		s.animating, s.animatingBin = false, 0
	}
}

func (s *Scene) emptied(id ecs.EntityId, count int) {
	if count <= 0 {
		return
	}
	s.stats.Emptied += count
	ecs.ReadComponent[Truck](s.storage, s.truck).Collected += count
	s.spawnStars(count)
	if s.onEmptied != nil {
		s.onEmptied(id, count)
	}
}

// dropPiece gives the piece to the first bin under the pointer that takes
// it, or sends it back to its slot.
func (s *Scene) dropPiece(id ecs.EntityId, p Point) {
	g := ecs.ReadComponent[Garbage](s.storage, id)
	s.clearHighlights()

	binID, b := s.binTaking(g, p)
	if b != nil && b.AddGarbage(g.Material) {
		g.State = PieceCollecting
		s.squash(binID)
		collect := s.tuning.Pieces.Collect
		s.play(id, "body", tween.Seq(
			tween.Parallel(
				s.scaleTo(id, 0, 0, collect, tween.CubicOut),
				s.fadeTo(id, 0, collect, tween.CubicOut),
			),
			tween.Call(func() {
				s.storage.Delete(id)
				s.stats.PiecesCollected++
			}),
		))
		return
	}

	g.State = PieceIdle
	s.stats.PiecesReturned++
	snap := s.tuning.Pieces.SnapBack
	s.play(id, "body", tween.Parallel(
		s.moveTo(id, g.Origin, snap, tween.BackOut),
		s.scaleTo(id, 1, 1, snap, tween.BackOut),
	))
}

func (s *Scene) squash(id ecs.EntityId) {
	s.play(id, "body", tween.Seq(
		s.scaleTo(id, 1.2, 0.9, 100*ms, tween.QuadOut),
		s.scaleTo(id, 0.95, 1.15, 100*ms, tween.QuadOut),
		s.scaleTo(id, 1, 1, 200*ms, tween.BackOut),
	))
}
