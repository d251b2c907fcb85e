package tween_test

import (
	"testing"

	"github.com/plus3/binsort/tween"
	"github.com/stretchr/testify/assert"
)

type key struct {
	id      int
	channel string
}

func TestPlayerReplacesKeyedAnimation(t *testing.T) {
	p := tween.NewPlayer()

	firstDone := false
	first := tween.Delay(100 * ms)
	first.OnComplete = func() { firstDone = true }
	p.Play(key{1, "move"}, first)

	secondDone := false
	second := tween.Delay(100 * ms)
	second.OnComplete = func() { secondDone = true }
	p.Play(key{1, "move"}, second)
	p.Play(key{1, "scale"}, tween.Delay(50*ms))

	assert.Equal(t, 2, p.Len())
	p.Update(100 * ms)

	assert.False(t, firstDone, "replaced animation must not complete")
	assert.True(t, secondDone)
	assert.False(t, p.Playing(key{1, "move"}))
	assert.Zero(t, p.Len())
}

func TestPlayerCancel(t *testing.T) {
	p := tween.NewPlayer()
	done := false
	d := tween.Delay(10 * ms)
	d.OnComplete = func() { done = true }
	p.Play("k", d)

	assert.True(t, p.Playing("k"))
	assert.True(t, p.Cancel("k"))
	assert.False(t, p.Cancel("k"))
	p.Update(10 * ms)
	assert.False(t, done)
}

func TestPlayerCallbackStartsFollowUp(t *testing.T) {
	p := tween.NewPlayer()

	var log []string
	first := tween.Delay(100 * ms)
	first.OnComplete = func() {
		log = append(log, "first")
		follow := tween.Delay(100 * ms)
		follow.OnComplete = func() { log = append(log, "follow") }
		p.Play("k", follow)
	}
	p.Play("k", first)

	p.Update(100 * ms)
	assert.Equal(t, []string{"first"}, log)
	assert.True(t, p.Playing("k"), "follow-up keeps the key")

	p.Update(100 * ms)
	assert.Equal(t, []string{"first", "follow"}, log)
	assert.False(t, p.Playing("k"))
}

func TestPlayerUnkeyed(t *testing.T) {
	p := tween.NewPlayer()
	n := 0
	for range 3 {
		d := tween.Delay(10 * ms)
		d.OnComplete = func() { n++ }
		p.Play(nil, d)
	}
	assert.Equal(t, 3, p.Len())
	p.Update(10 * ms)
	assert.Equal(t, 3, n)
	assert.Zero(t, p.Len())
}
