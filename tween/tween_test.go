package tween_test

import (
	"testing"
	"time"

	"github.com/plus3/binsort/tween"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func TestEaseEndpoints(t *testing.T) {
	eases := map[string]tween.Ease{
		"linear":    tween.Linear,
		"quadOut":   tween.QuadOut,
		"cubicIn":   tween.CubicIn,
		"cubicOut":  tween.CubicOut,
		"backOut":   tween.BackOut,
		"sineInOut": tween.SineInOut,
	}
	for name, ease := range eases {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, ease(0), 1e-9)
			assert.InDelta(t, 1, ease(1), 1e-9)
		})
	}

	assert.Greater(t, tween.BackOut(0.8), 1.0, "back out overshoots")
	assert.Less(t, tween.CubicIn(0.5), 0.5)
	assert.Greater(t, tween.CubicOut(0.5), 0.5)
}

func TestTweenReportsValues(t *testing.T) {
	var got []float64
	tw := tween.New(10, 20, 100*ms, tween.Linear, func(v float64) { got = append(got, v) })

	assert.Zero(t, tw.Advance(50*ms))
	assert.False(t, tw.Done())
	assert.Equal(t, 30*ms, tw.Advance(80*ms))
	assert.True(t, tw.Done())
	assert.Equal(t, 40*ms, tw.Advance(40*ms), "finished tweens pass time through")

	require.Len(t, got, 2)
	assert.InDelta(t, 15, got[0], 1e-9)
	assert.InDelta(t, 20, got[1], 1e-9)
}

func TestTweenYoyo(t *testing.T) {
	var v float64
	tw := tween.New(1, 1.3, 200*ms, tween.Linear, func(x float64) { v = x })
	tw.Yoyo = true

	tw.Advance(200 * ms)
	assert.InDelta(t, 1.3, v, 1e-9)
	assert.False(t, tw.Done())

	tw.Advance(100 * ms)
	assert.InDelta(t, 1.15, v, 1e-9)

	tw.Advance(100 * ms)
	assert.True(t, tw.Done())
	assert.InDelta(t, 1, v, 1e-9)
}

func TestTweenCallbacksFireOnce(t *testing.T) {
	starts, completes := 0, 0
	tw := tween.Delay(100 * ms)
	tw.OnStart = func() { starts++ }
	tw.OnComplete = func() { completes++ }

	for range 5 {
		tw.Advance(40 * ms)
	}
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, completes)
}

func TestSequenceCarriesLeftover(t *testing.T) {
	var order []string
	seq := tween.Seq(
		tween.Delay(100*ms),
		tween.Call(func() { order = append(order, "call") }),
		tween.Progress(100*ms, tween.Linear, func(p float64) { order = append(order, "step") }),
	)
	seq.OnComplete = func() { order = append(order, "done") }

	assert.Zero(t, seq.Advance(150*ms))
	assert.Equal(t, []string{"call", "step"}, order)

	assert.Equal(t, 50*ms, seq.Advance(100*ms))
	assert.Equal(t, []string{"call", "step", "step", "done"}, order)
	assert.True(t, seq.Done())
}

func TestEmptySequenceFinishesImmediately(t *testing.T) {
	done := false
	seq := tween.Seq()
	seq.OnComplete = func() { done = true }
	assert.Equal(t, 10*ms, seq.Advance(10*ms))
	assert.True(t, done)
}

func TestGroupWaitsForSlowestMember(t *testing.T) {
	var x, y float64
	g := tween.Parallel(
		tween.New(0, 1, 100*ms, tween.Linear, func(v float64) { x = v }),
		tween.New(0, 1, 300*ms, tween.Linear, func(v float64) { y = v }),
	)
	completed := false
	g.OnComplete = func() { completed = true }

	g.Advance(200 * ms)
	assert.InDelta(t, 1, x, 1e-9)
	assert.False(t, completed)

	assert.Equal(t, 50*ms, g.Advance(150*ms))
	assert.InDelta(t, 1, y, 1e-9)
	assert.True(t, completed)
}
