package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/tween"
)

const ms = time.Millisecond

// FrameStep is the fixed step Advance uses.
const FrameStep = time.Second / 60

type pieceItem struct {
	ecs.EntityId
	*Transform
	*Garbage
	*Draggable
}

type starItem struct {
	ecs.EntityId
	*Transform
	*Star
}

// Options configures a Scene.
type Options struct {
	Tuning *Tuning
	Seed   uint64
	Logger *slog.Logger
	// OnEmptied runs once per tip, at the moment the bin is emptied.
	OnEmptied func(bin ecs.EntityId, count int)
	// OnScore runs every time a collected star reaches the counter.
	OnScore func(points int)
	// Register adds extra component types, such as debug overlays, to the
	// scene's registry.
	Register func(*ecs.ComponentRegistry)
}

// SceneStats counts what has happened in a scene so far.
type SceneStats struct {
	Drags           int
	BinDrops        int
	BinReturns      int
	Tips            int
	Emptied         int
	PiecesSpawned   int
	PiecesCollected int
	PiecesReturned  int
	StarsSpawned    int
	StarsCollected  int
	TruckTrips      int
	Reconciles      int
	Violations      int
	Repairs         int
}

// Scene is the whole game state: zones, bins, pieces, stars and the truck,
// plus the drag controller that moves things between them.
type Scene struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	player    *tween.Player
	occupancy *Occupancy
	tuning    Tuning
	layout    Layout
	logger    *slog.Logger
	rng       *rand.Rand

	spawner *ecs.Singleton[SpawnerState]
	score   *ecs.Singleton[Score]

	truckZone ecs.EntityId
	homeZones []ecs.EntityId
	bins      []ecs.EntityId
	truck     ecs.EntityId
	goButton  ecs.EntityId

	pieces *ecs.View[pieceItem]
	stars  *ecs.View[starItem]

	drag         *dragState
	animating    bool
	animatingBin ecs.EntityId

	onEmptied func(ecs.EntityId, int)
	onScore   func(int)
	stats     SceneStats
}

// NewScene builds the scene and starts the truck's first drive in.
func NewScene(opts Options) (*Scene, error) {
	tuning := DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := NewRegistry()
	if opts.Register != nil {
		opts.Register(registry)
	}
	storage := ecs.NewStorage(registry)
	s := &Scene{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		player:    tween.NewPlayer(),
		occupancy: NewOccupancy(storage, logger),
		tuning:    tuning,
		layout:    tuning.Layout(),
		logger:    logger,
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		onEmptied: opts.OnEmptied,
		onScore:   opts.OnScore,
	}

	ecs.NewSingleton(storage, Animations{Player: s.player})
	s.spawner = ecs.NewSingleton(storage, SpawnerState{Paused: true})
	s.score = ecs.NewSingleton(storage, Score{Counter: Point{tuning.Stars.CounterX, tuning.Stars.CounterY}})
	s.pieces = ecs.NewView[pieceItem](storage)
	s.stars = ecs.NewView[starItem](storage)

	if err := s.populate(); err != nil {
		return nil, err
	}

	s.scheduler.Register(&SpawnerSystem{
		Tuning:  &s.tuning,
		Slots:   s.layout.Slots,
		Rand:    s.rng,
		OnSpawn: func(ecs.EntityId) { s.stats.PiecesSpawned++ },
	})
	s.scheduler.Register(&StarSystem{Flight: tuning.Stars.Flight})
	s.scheduler.Register(&AnimationSystem{})

	s.driveIn(nil)
	return s, nil
}

func (s *Scene) populate() error {
	l := s.layout

	s.truckZone = s.storage.Spawn(
		newTransform(l.TruckZone),
		Zone{Kind: ZoneTruck, Width: l.ZoneWidth, Height: l.ZoneHeight},
	)
	for _, p := range l.HomeZones {
		s.homeZones = append(s.homeZones, s.storage.Spawn(
			newTransform(p),
			Zone{Kind: ZoneHome, Width: l.ZoneWidth, Height: l.ZoneHeight, Active: true},
		))
	}

	for i, material := range s.tuning.Bins.Order {
		rest := l.HomeZones[i]
		bin := s.storage.Spawn(
			newTransform(rest),
			Bin{Material: material, Rest: rest},
			Draggable{Width: s.tuning.Bins.Width, Height: s.tuning.Bins.Height},
		)
		if err := s.occupancy.Assign(s.homeZones[i], bin); err != nil {
			return fmt.Errorf("place %s bin: %w", material, err)
		}
		s.bins = append(s.bins, bin)
	}

	park := l.TruckPark
	s.truck = s.storage.Spawn(
		newTransform(Point{park.X - s.tuning.Truck.AwayOffset, park.Y}),
		Truck{ParkX: park.X},
	)
	s.goButton = s.storage.Spawn(
		newTransform(l.TruckZone),
		Button{Width: s.tuning.Truck.ButtonSize, Height: s.tuning.Truck.ButtonSize},
	)
	return nil
}

// Update advances the scene by dt seconds.
func (s *Scene) Update(dt float64) {
	s.scheduler.Once(dt)
}

// Advance runs the scene forward by d in FrameStep increments.
func (s *Scene) Advance(d time.Duration) {
	for d > 0 {
		step := min(d, FrameStep)
		s.Update(step.Seconds())
		d -= step
	}
}

// AddSystem runs system every frame after the scene's own systems.
func (s *Scene) AddSystem(system ecs.System) {
	s.scheduler.Register(system)
}

// Now returns the scene's simulated time.
func (s *Scene) Now() time.Duration { return s.scheduler.Now() }

func (s *Scene) Storage() *ecs.Storage     { return s.storage }
func (s *Scene) Scheduler() *ecs.Scheduler { return s.scheduler }
func (s *Scene) Occupancy() *Occupancy     { return s.occupancy }
func (s *Scene) Tuning() Tuning            { return s.tuning }
func (s *Scene) Layout() Layout            { return s.layout }
func (s *Scene) TruckZone() ecs.EntityId   { return s.truckZone }
func (s *Scene) HomeZones() []ecs.EntityId { return s.homeZones }
func (s *Scene) Bins() []ecs.EntityId      { return s.bins }
func (s *Scene) Truck() ecs.EntityId       { return s.truck }
func (s *Scene) GoButton() ecs.EntityId    { return s.goButton }
func (s *Scene) Stats() SceneStats         { return s.stats }

// Zones returns the truck zone followed by the home zones.
func (s *Scene) Zones() []ecs.EntityId {
	return append([]ecs.EntityId{s.truckZone}, s.homeZones...)
}

// Animating reports whether a bin animation is in flight. No drag can start
// while it is.
func (s *Scene) Animating() bool { return s.animating }

// AnimatingBin returns the bin whose animation blocks input.
func (s *Scene) AnimatingBin() (ecs.EntityId, bool) {
	return s.animatingBin, s.animating && s.animatingBin != 0
}

// Score returns the number of stars collected.
func (s *Scene) Score() int { return s.score.Get().Points }

// Pieces returns the garbage pieces currently in play.
func (s *Scene) Pieces() []ecs.EntityId {
	var ids []ecs.EntityId
	for id := range s.pieces.Iter() {
		ids = append(ids, id)
	}
	return ids
}

// Stars returns the reward stars currently on screen.
func (s *Scene) Stars() []ecs.EntityId {
	var ids []ecs.EntityId
	for id := range s.stars.Iter() {
		ids = append(ids, id)
	}
	return ids
}

// SpawnerState exposes the spawner's pause and drag flags.
func (s *Scene) SpawnerState() SpawnerState { return *s.spawner.Get() }

// Check lists occupancy violations without repairing them.
func (s *Scene) Check() []Violation {
	return s.occupancy.Check()
}

// Reconcile runs an occupancy repair pass now.
func (s *Scene) Reconcile() ReconcileReport {
	report := s.occupancy.Reconcile()
	s.stats.Reconciles++
	s.stats.Violations += len(report.Violations)
	s.stats.Repairs += report.Repairs
	return report
}

func (s *Scene) transform(id ecs.EntityId) *Transform {
	return ecs.ReadComponent[Transform](s.storage, id)
}

func (s *Scene) zoneRect(id ecs.EntityId) Rect {
	z := ecs.ReadComponent[Zone](s.storage, id)
	return RectAround(s.transform(id).Pos(), z.Width, z.Height)
}

// ZoneRect returns a zone's drop area.
func (s *Scene) ZoneRect(zone ecs.EntityId) Rect { return s.zoneRect(zone) }

// HitRect returns the scaled hit box of a bin, piece, star or button.
func (s *Scene) HitRect(id ecs.EntityId) Rect {
	t := s.transform(id)
	if t == nil {
		return Rect{}
	}
	if d := ecs.ReadComponent[Draggable](s.storage, id); d != nil {
		return hitRect(t, d.Width, d.Height)
	}
	if b := ecs.ReadComponent[Button](s.storage, id); b != nil {
		return hitRect(t, b.Width, b.Height)
	}
	if ecs.ReadComponent[Star](s.storage, id) != nil {
		return hitRect(t, s.tuning.Stars.Size, s.tuning.Stars.Size)
	}
	return RectAround(t.Pos(), 0, 0)
}

func (s *Scene) play(id ecs.EntityId, channel string, anim tween.Animation) {
	s.player.Play(animKey{id, channel}, anim)
}

// moveTo returns a tween that moves id from wherever it is when the tween
// starts to target.
func (s *Scene) moveTo(id ecs.EntityId, target Point, d time.Duration, ease tween.Ease) tween.Animation {
	t := s.transform(id)
	var from Point
	tw := tween.Progress(d, ease, func(p float64) {
		t.X = tween.Lerp(from.X, target.X, p)
		t.Y = tween.Lerp(from.Y, target.Y, p)
	})
	tw.OnStart = func() { from = t.Pos() }
	return tw
}

// scaleTo returns a tween from the current scale to sx, sy.
func (s *Scene) scaleTo(id ecs.EntityId, sx, sy float64, d time.Duration, ease tween.Ease) tween.Animation {
	t := s.transform(id)
	var fromX, fromY float64
	tw := tween.Progress(d, ease, func(p float64) {
		t.ScaleX = tween.Lerp(fromX, sx, p)
		t.ScaleY = tween.Lerp(fromY, sy, p)
	})
	tw.OnStart = func() { fromX, fromY = t.ScaleX, t.ScaleY }
	return tw
}

func (s *Scene) fadeTo(id ecs.EntityId, alpha float64, d time.Duration, ease tween.Ease) tween.Animation {
	t := s.transform(id)
	tw := tween.New(0, alpha, d, ease, func(v float64) { t.Alpha = v })
	tw.OnStart = func() { tw.From = t.Alpha }
	return tw
}
