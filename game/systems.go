package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/tween"
)

func seconds(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}

// AnimationSystem advances every running tween.
type AnimationSystem struct {
	Animations ecs.Singleton[Animations]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	s.Animations.Get().Player.Update(seconds(frame.DeltaTime))
}

// StarSystem moves freshly spawned stars until their flight time runs out.
type StarSystem struct {
	Stars ecs.Query[struct {
		*Transform
		*Star
	}]
	Flight time.Duration
}

func (s *StarSystem) Execute(frame *ecs.UpdateFrame) {
	step := seconds(frame.DeltaTime)
	for item := range s.Stars.Values() {
		star := item.Star
		if star.State != StarFlying {
			continue
		}
		// only the part of the step that falls inside the flight moves the star
		moving := min(step, max(s.Flight-star.Age, 0))
		item.Transform.X += star.VX * moving.Seconds()
		item.Transform.Y += star.VY * moving.Seconds()
		star.Age += step
		if star.Age >= s.Flight {
			star.VX, star.VY = 0, 0
			star.State = StarResting
		}
	}
}

// SpawnerSystem drops a new garbage piece into the first free slot on a
// fixed interval.
type SpawnerSystem struct {
	Pieces ecs.Query[struct {
		*Garbage
	}]
	State      ecs.Singleton[SpawnerState]
	Animations ecs.Singleton[Animations]

	Tuning *Tuning
	Slots  []Point
	Rand   *rand.Rand
	// OnSpawn is called with every piece that enters play.
	OnSpawn func(ecs.EntityId)
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state.Paused {
		return
	}

	interval := s.Tuning.Spawner.Interval
	state.Elapsed += seconds(frame.DeltaTime)
	due := state.Immediate
	state.Immediate = false
	for state.Elapsed >= interval {
		state.Elapsed -= interval
		due = true
	}
	if !due || state.Dragging {
		return
	}

	taken := make([]bool, len(s.Slots))
	count := 0
	for item := range s.Pieces.Values() {
		count++
		if item.Garbage.Slot >= 0 && item.Garbage.Slot < len(taken) {
			taken[item.Garbage.Slot] = true
		}
	}
	if count >= len(s.Slots) {
		return
	}

	slot := -1
	for i, t := range taken {
		if !t {
			slot = i
			break
		}
	}
	if slot < 0 {
		return
	}

	material := Materials[s.Rand.IntN(len(Materials))]
	variant := s.Rand.IntN(s.Tuning.Pieces.Variants)
	rest := s.Slots[slot]
	start := Point{rest.X, s.Tuning.Screen.Height + s.Tuning.Spawner.EntryOffset}

	// Spawned directly rather than through Commands so the entry tween can
	// hold the id.
	id := frame.Storage.Spawn(
		newTransform(start),
		Garbage{Material: material, Variant: variant, Slot: slot, Origin: rest},
		Draggable{Width: s.Tuning.Pieces.Size, Height: s.Tuning.Pieces.Size},
	)
	transform := ecs.ReadComponent[Transform](frame.Storage, id)
	s.Animations.Get().Player.Play(animKey{id, "body"},
		tween.New(start.Y, rest.Y, s.Tuning.Pieces.Entry, tween.BackOut, func(v float64) { transform.Y = v }))

	if s.OnSpawn != nil {
		s.OnSpawn(id)
	}
}

// randomDirection returns a velocity with a uniformly random heading and a
// speed in [lo, hi).
func randomDirection(r *rand.Rand, lo, hi float64) (vx, vy float64) {
	angle := r.Float64() * 2 * math.Pi
	speed := lo + r.Float64()*(hi-lo)
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}
