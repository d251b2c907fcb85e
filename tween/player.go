package tween

import "time"

// Player runs animations, optionally keyed so that starting a new animation
// under a key replaces the one already running there.
type Player struct {
	entries []*entry
	byKey   map[any]*entry
}

type entry struct {
	key       any
	anim      Animation
	cancelled bool
}

// NewPlayer creates an empty player.
func NewPlayer() *Player {
	return &Player{byKey: make(map[any]*entry)}
}

// Play starts anim under key, cancelling whatever was playing there. A nil
// key plays the animation without a handle.
func (p *Player) Play(key any, anim Animation) {
	if key != nil {
		p.Cancel(key)
	}
	e := &entry{key: key, anim: anim}
	p.entries = append(p.entries, e)
	if key != nil {
		p.byKey[key] = e
	}
}

// Cancel stops the animation under key without running its completion
// callbacks.
func (p *Player) Cancel(key any) bool {
	e, ok := p.byKey[key]
	if !ok {
		return false
	}
	e.cancelled = true
	delete(p.byKey, key)
	return true
}

// Playing reports whether an animation is running under key.
func (p *Player) Playing(key any) bool {
	_, ok := p.byKey[key]
	return ok
}

// Len returns the number of running animations.
func (p *Player) Len() int {
	n := 0
	for _, e := range p.entries {
		if !e.cancelled && !e.anim.Done() {
			n++
		}
	}
	return n
}

// Update advances every running animation by dt in start order. Animations
// started from completion callbacks begin advancing on the next Update.
func (p *Player) Update(dt time.Duration) {
	running := p.entries
	for _, e := range running {
		if e.cancelled {
			continue
		}
		e.anim.Advance(dt)
		if e.anim.Done() {
			e.cancelled = true
			if e.key != nil && p.byKey[e.key] == e {
				delete(p.byKey, e.key)
			}
		}
	}

	live := p.entries[:0]
	for _, e := range p.entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	clear(p.entries[len(live):])
	p.entries = live
}
