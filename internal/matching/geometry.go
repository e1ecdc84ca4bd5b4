package matching

import "math"

const (
	// SagConnected is the rope sag per unit of distance for a committed link.
	SagConnected = 0.2
	// SagDragging is the sag of the rope following the pointer.
	SagDragging = 0.25
	// DanglingLength is the drop of the decorative rope on unlinked cards.
	DanglingLength = 40
)

// Point is a position on the board.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box; edges are inclusive.
type Rect struct {
	Min, Max Point
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Curve is a quadratic Bézier segment.
type Curve struct {
	Start, Control, End Point
}

// At evaluates the curve at t in [0, 1].
func (c Curve) At(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*c.Start.X + 2*u*t*c.Control.X + t*t*c.End.X,
		Y: u*u*c.Start.Y + 2*u*t*c.Control.Y + t*t*c.End.Y,
	}
}

// Sample returns n+1 evenly spaced points from Start to End.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	out := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, c.At(float64(i)/float64(n)))
	}
	return out
}

// RopeCurve hangs a rope between two anchors. The control point sits below
// the midpoint by distance*sag.
func RopeCurve(start, end Point, sag float64) Curve {
	dx := end.X - start.X
	dy := end.Y - start.Y
	dist := math.Hypot(dx, dy)
	return Curve{
		Start:   start,
		Control: Point{X: (start.X + end.X) / 2, Y: (start.Y+end.Y)/2 + dist*sag},
		End:     end,
	}
}

// DanglingCurve is the short loose rope drawn under an unlinked card.
func DanglingCurve(start Point, length float64) Curve {
	return Curve{
		Start:   start,
		Control: Point{X: start.X + 25, Y: start.Y + length*0.7},
		End:     Point{X: start.X + 15, Y: start.Y + length},
	}
}
