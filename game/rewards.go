package game

import (
	"time"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/tween"
)

// spawnStars releases count stars from the middle of the screen, one every
// Stagger.
func (s *Scene) spawnStars(count int) {
	cfg := s.tuning.Stars
	center := s.layout.Center
	for i := range count {
		p := center
		if count > 1 && cfg.Jitter > 0 {
			p.X += float64(s.rng.IntN(2*cfg.Jitter+1) - cfg.Jitter)
			p.Y += float64(s.rng.IntN(2*cfg.Jitter+1) - cfg.Jitter)
		}
		s.scheduler.After(time.Duration(i)*cfg.Stagger, func() { s.spawnStar(p) })
	}
}

func (s *Scene) spawnStar(p Point) ecs.EntityId {
	vx, vy := randomDirection(s.rng, s.tuning.Stars.MinSpeed, s.tuning.Stars.MaxSpeed)
	s.stats.StarsSpawned++
	return s.storage.Spawn(newTransform(p), Star{VX: vx, VY: vy})
}

// Click handles a tap that is not a drag: the go button first, then any
// resting star under the pointer.
func (s *Scene) Click(x, y float64) bool {
	p := Point{x, y}

	if button := ecs.ReadComponent[Button](s.storage, s.goButton); button.Visible && s.HitRect(s.goButton).Contains(p) {
		return s.pressGo()
	}

	for item := range s.stars.Values() {
		if item.Star.State != StarResting {
			continue
		}
		if hitRect(item.Transform, s.tuning.Stars.Size, s.tuning.Stars.Size).Contains(p) {
			s.collectStar(item.EntityId)
			return true
		}
	}
	return false
}

// collectStar flies a resting star to the score counter and scores it on
// arrival.
func (s *Scene) collectStar(id ecs.EntityId) {
	star := ecs.ReadComponent[Star](s.storage, id)
	star.State = StarCollecting

	cfg := s.tuning.Stars
	scale := cfg.CollectScale
	s.play(id, "body", tween.Seq(
		tween.Parallel(
			s.moveTo(id, s.score.Get().Counter, cfg.Collect, tween.CubicIn),
			s.scaleTo(id, scale, scale, cfg.Collect, tween.CubicIn),
		),
		tween.Call(func() {
			score := s.score.Get()
			score.Points++
			s.stats.StarsCollected++
			if s.onScore != nil {
				s.onScore(score.Points)
			}
		}),
		tween.Parallel(
			s.scaleTo(id, 1.5, 1.5, 200*ms, tween.Linear),
			s.fadeTo(id, 0, 200*ms, tween.Linear),
		),
		tween.Call(func() { s.storage.Delete(id) }),
	))
}

// pressGo sends the truck away and back. Spawning pauses and the truck zone
// refuses bins until it returns.
func (s *Scene) pressGo() bool {
	if s.animating {
		return false
	}
	s.animating = true
	ecs.ReadComponent[Button](s.storage, s.goButton).Visible = false
	ecs.ReadComponent[Zone](s.storage, s.truckZone).Active = false
	s.spawner.Get().Paused = true

	truck := ecs.ReadComponent[Truck](s.storage, s.truck)
	truck.State = TruckLeaving
	away := Point{truck.ParkX - s.tuning.Truck.AwayOffset, s.transform(s.truck).Y}

	s.play(s.truck, "body", tween.Seq(
		s.moveTo(s.truck, away, s.tuning.Truck.DriveOut, tween.CubicIn),
		tween.Call(func() { truck.State = TruckAway }),
		tween.Delay(s.tuning.Truck.Wait),
		tween.Call(func() {
			s.driveIn(func() { s.animating = false })
		}),
	))
	return true
}

// driveIn brings the truck from off screen to its parking spot, then opens
// the truck zone and restarts spawning.
func (s *Scene) driveIn(arrived func()) {
	truck := ecs.ReadComponent[Truck](s.storage, s.truck)
	t := s.transform(s.truck)
	t.X = truck.ParkX - s.tuning.Truck.AwayOffset
	truck.State = TruckArriving

	s.play(s.truck, "body", tween.Seq(
		s.moveTo(s.truck, Point{truck.ParkX, t.Y}, s.tuning.Truck.DriveIn, tween.CubicOut),
		tween.Call(func() {
			truck.State = TruckParked
			truck.Collected = 0
			s.stats.TruckTrips++
			ecs.ReadComponent[Zone](s.storage, s.truckZone).Active = true

			spawner := s.spawner.Get()
			spawner.Paused = false
			spawner.Elapsed = 0
			spawner.Immediate = true

			if arrived != nil {
				arrived()
			}
		}),
	))
}
