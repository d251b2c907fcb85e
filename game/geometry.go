package game

import "math"

// Point is a position in screen units.
type Point struct {
	X, Y float64
}

// Near reports whether q lies strictly within tol of p on both axes.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) < tol && math.Abs(p.Y-q.Y) < tol
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// RectAround returns the w by h rectangle centred on c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{
		Min: Point{c.X - w/2, c.Y - h/2},
		Max: Point{c.X + w/2, c.Y + h/2},
	}
}

// Contains reports whether p is inside r. Edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
