package game

import (
	"time"

	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/tween"
)

// Transform places an entity on screen.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	Alpha          float64
}

func newTransform(p Point) Transform {
	return Transform{X: p.X, Y: p.Y, ScaleX: 1, ScaleY: 1, Alpha: 1}
}

func (t *Transform) Pos() Point { return Point{t.X, t.Y} }

func (t *Transform) SetScale(s float64) {
	t.ScaleX, t.ScaleY = s, s
}

// ZoneKind tells the truck zone apart from the home grid.
type ZoneKind int

const (
	ZoneHome ZoneKind = iota
	ZoneTruck
)

func (k ZoneKind) String() string {
	if k == ZoneTruck {
		return "truck"
	}
	return "home"
}

// Zone is a drop target that holds at most one bin.
type Zone struct {
	Kind          ZoneKind
	Width, Height float64
	Occupant      *ecs.EntityRef
	// Active is false while the zone refuses drops (truck zone while the
	// truck is away or the go button is showing).
	Active bool
}

// BinState is the bin's position in the fill/tip cycle.
type BinState int

const (
	BinEmpty BinState = iota
	BinFilling
	BinTipping
)

func (s BinState) String() string {
	switch s {
	case BinFilling:
		return "filling"
	case BinTipping:
		return "tipping"
	default:
		return "empty"
	}
}

// Bin collects garbage of one material.
type Bin struct {
	Material    Material
	Count       int
	State       BinState
	Zone        *ecs.EntityRef
	Rest        Point
	Highlighted bool
}

// Accepts reports whether the bin takes a piece of material m right now.
func (b *Bin) Accepts(m Material) bool {
	return b.State != BinTipping && b.Material == m
}

// AddGarbage drops one piece of m into the bin.
func (b *Bin) AddGarbage(m Material) bool {
	if !b.Accepts(m) {
		return false
	}
	b.Count++
	b.State = BinFilling
	return true
}

// BeginTip starts tipping if the bin has anything in it.
func (b *Bin) BeginTip() bool {
	if b.State == BinTipping || b.Count == 0 {
		return false
	}
	b.State = BinTipping
	return true
}

// Empty resets the count and returns what was in the bin. The bin keeps
// tipping until FinishTip.
func (b *Bin) Empty() int {
	n := b.Count
	b.Count = 0
	return n
}

// FinishTip ends a tip, leaving the bin filling or empty by its count.
func (b *Bin) FinishTip() {
	if b.State != BinTipping {
		return
	}
	if b.Count > 0 {
		b.State = BinFilling
	} else {
		b.State = BinEmpty
	}
}

// PieceState tracks a garbage piece from entry to collection.
type PieceState int

const (
	PieceIdle PieceState = iota
	PieceDragged
	PieceCollecting
)

// Garbage is a draggable piece waiting to be sorted.
type Garbage struct {
	Material Material
	Variant  int
	Slot     int
	Origin   Point
	State    PieceState
}

// AcceptedBy reports whether bin is the right bin for the piece.
func (g *Garbage) AcceptedBy(bin *Bin) bool {
	return bin.Material == g.Material
}

// Draggable marks entities that can be picked up and gives their unscaled
// hit box.
type Draggable struct {
	Width, Height float64
}

func hitRect(t *Transform, w, h float64) Rect {
	return RectAround(t.Pos(), w*t.ScaleX, h*t.ScaleY)
}

// StarState tracks a reward star.
type StarState int

const (
	StarFlying StarState = iota
	StarResting
	StarCollecting
)

// Star is a reward that must be clicked to score.
type Star struct {
	VX, VY float64
	Age    time.Duration
	State  StarState
}

// TruckState tracks the truck's drive cycle.
type TruckState int

const (
	TruckAway TruckState = iota
	TruckArriving
	TruckParked
	TruckLeaving
)

func (s TruckState) String() string {
	switch s {
	case TruckArriving:
		return "arriving"
	case TruckParked:
		return "parked"
	case TruckLeaving:
		return "leaving"
	default:
		return "away"
	}
}

// Truck collects emptied bins' contents.
type Truck struct {
	ParkX     float64
	State     TruckState
	Collected int
}

// Button is a clickable UI element.
type Button struct {
	Width, Height float64
	Visible       bool
}

// Score is the player's star count.
type Score struct {
	Points int
	// Counter is where collected stars fly to.
	Counter Point
}

// SpawnerState is shared between the spawner system and the drag controller.
type SpawnerState struct {
	Paused   bool
	Dragging bool
	Elapsed  time.Duration
	// Immediate requests a spawn attempt on the next tick.
	Immediate bool
}

// Animations gives systems access to the scene's tween player.
type Animations struct {
	Player *tween.Player
}

// animKey identifies one animation channel of an entity.
type animKey struct {
	entity  ecs.EntityId
	channel string
}

// NewRegistry registers every game component.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Zone](registry)
	ecs.RegisterComponent[Bin](registry)
	ecs.RegisterComponent[Garbage](registry)
	ecs.RegisterComponent[Draggable](registry)
	ecs.RegisterComponent[Star](registry)
	ecs.RegisterComponent[Truck](registry)
	ecs.RegisterComponent[Button](registry)
	return registry
}
