package tween

import "math"

// Ease maps linear progress in [0, 1] to eased progress. Eases that
// overshoot may leave [0, 1] in between but always end at 1.
type Ease func(t float64) float64

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
)

func Linear(t float64) float64 { return t }

// QuadOut is the "Power1" curve.
func QuadOut(t float64) float64 { return 1 - (1-t)*(1-t) }

func CubicIn(t float64) float64 { return t * t * t }

// CubicOut is the "Power2" curve.
func CubicOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// BackOut overshoots the target slightly before settling.
func BackOut(t float64) float64 {
	u := t - 1
	return 1 + backC3*u*u*u + backC1*u*u
}

func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
