// Package tween sequences time-based animations: single eased tweens, delays,
// parallel groups and sequences, all advanced by an explicit time step.
package tween

import "time"

// Animation is anything a Player can advance.
type Animation interface {
	// Advance moves the animation forward by dt and returns the part of dt
	// that was not needed to finish it.
	Advance(dt time.Duration) time.Duration
	Done() bool
}

// Tween drives a single value from From to To over Duration. With Yoyo set it
// plays forward and then back, taking twice as long and ending on From.
type Tween struct {
	From, To   float64
	Duration   time.Duration
	Ease       Ease
	Yoyo       bool
	OnStart    func()
	OnUpdate   func(v float64)
	OnComplete func()

	elapsed time.Duration
	started bool
	done    bool
}

// New returns a tween that reports values through set.
func New(from, to float64, d time.Duration, ease Ease, set func(float64)) *Tween {
	return &Tween{From: from, To: to, Duration: d, Ease: ease, OnUpdate: set}
}

// Progress returns a tween reporting eased progress from 0 to 1.
func Progress(d time.Duration, ease Ease, set func(p float64)) *Tween {
	return New(0, 1, d, ease, set)
}

// Delay returns an animation that does nothing for d.
func Delay(d time.Duration) *Tween {
	return &Tween{Duration: d}
}

// Call returns an animation that runs fn and finishes immediately.
func Call(fn func()) *Tween {
	return &Tween{OnComplete: fn}
}

func (t *Tween) total() time.Duration {
	if t.Yoyo {
		return 2 * t.Duration
	}
	return t.Duration
}

// Value returns the tween's current value.
func (t *Tween) Value() float64 {
	if t.Duration <= 0 {
		if t.Yoyo {
			return t.From
		}
		return t.To
	}
	p := float64(t.elapsed) / float64(t.Duration)
	if t.Yoyo && p > 1 {
		p = 2 - p
	}
	if p >= 1 && !t.Yoyo {
		return t.To
	}
	if p <= 0 {
		return t.From
	}
	ease := t.Ease
	if ease == nil {
		ease = Linear
	}
	return Lerp(t.From, t.To, ease(p))
}

func (t *Tween) Advance(dt time.Duration) time.Duration {
	if t.done {
		return dt
	}
	if !t.started {
		t.started = true
		if t.OnStart != nil {
			t.OnStart()
		}
	}

	t.elapsed += dt
	total := t.total()
	if t.elapsed < total {
		if t.OnUpdate != nil {
			t.OnUpdate(t.Value())
		}
		return 0
	}

	leftover := t.elapsed - total
	t.elapsed = total
	t.done = true
	if t.OnUpdate != nil {
		t.OnUpdate(t.Value())
	}
	if t.OnComplete != nil {
		t.OnComplete()
	}
	return leftover
}

func (t *Tween) Done() bool { return t.done }

// Sequence plays its steps one after another. Time left over when a step
// finishes flows into the next one within the same Advance.
type Sequence struct {
	Steps      []Animation
	OnComplete func()

	current int
	done    bool
}

// Seq builds a Sequence from steps.
func Seq(steps ...Animation) *Sequence {
	return &Sequence{Steps: steps}
}

// Then appends a step and returns the sequence.
func (s *Sequence) Then(step Animation) *Sequence {
	s.Steps = append(s.Steps, step)
	return s
}

func (s *Sequence) Advance(dt time.Duration) time.Duration {
	if s.done {
		return dt
	}
	for s.current < len(s.Steps) {
		step := s.Steps[s.current]
		dt = step.Advance(dt)
		if !step.Done() {
			return 0
		}
		s.current++
	}
	s.done = true
	if s.OnComplete != nil {
		s.OnComplete()
	}
	return dt
}

func (s *Sequence) Done() bool { return s.done }

// Group plays its members in parallel and finishes when all of them have.
type Group struct {
	Members    []Animation
	OnComplete func()

	done bool
}

// Parallel builds a Group from members.
func Parallel(members ...Animation) *Group {
	return &Group{Members: members}
}

func (g *Group) Advance(dt time.Duration) time.Duration {
	if g.done {
		return dt
	}
	leftover := dt
	for _, m := range g.Members {
		if m.Done() {
			continue
		}
		leftover = min(leftover, m.Advance(dt))
		if !m.Done() {
			leftover = 0
		}
	}
	for _, m := range g.Members {
		if !m.Done() {
			return 0
		}
	}
	g.done = true
	if g.OnComplete != nil {
		g.OnComplete()
	}
	return leftover
}

func (g *Group) Done() bool { return g.done }
