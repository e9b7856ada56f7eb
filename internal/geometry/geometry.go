package geometry

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Quad is an ordered set of exactly four corner points. Corner order is
// significant: index i in one quad corresponds to index i in another.
type Quad [4]Point

// Distance returns the Euclidean distance between points a and b.
func Distance(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Collinear reports whether a, b and c lie on a common line, within a
// tolerance scaled by the triangle's extent so large coordinates do not
// trip the check on rounding alone.
func Collinear(a, b, c Point) bool {
	area2 := math.Abs(cross(a, b, c))
	scale := Distance(a, b) * Distance(a, c)
	if scale == 0 {
		return true
	}
	return area2/scale < 1e-9
}

// Validate checks that the quad can anchor a projective solve: all four
// corners distinct and no three corners collinear. A quad failing this
// check yields a singular correspondence system.
func (q Quad) Validate() error {
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if q[i] == q[j] {
				return fmt.Errorf("duplicate corner: index %d equals index %d", i, j)
			}
		}
	}
	for i := 0; i < 4; i++ {
		a, b, c := q[i], q[(i+1)%4], q[(i+2)%4]
		if Collinear(a, b, c) {
			return fmt.Errorf("collinear corners: indices %d, %d, %d", i, (i+1)%4, (i+2)%4)
		}
	}
	return nil
}

// EdgeLengths returns the four edge lengths in corner order.
func (q Quad) EdgeLengths() [4]float64 {
	var e [4]float64
	for i := 0; i < 4; i++ {
		e[i] = Distance(q[i], q[(i+1)%4])
	}
	return e
}

// Bounds returns the axis-aligned extent of the quad as min and max points.
func (q Quad) Bounds() (Point, Point) {
	minPt := q[0]
	maxPt := q[0]
	for _, p := range q[1:] {
		minPt.X = math.Min(minPt.X, p.X)
		minPt.Y = math.Min(minPt.Y, p.Y)
		maxPt.X = math.Max(maxPt.X, p.X)
		maxPt.Y = math.Max(maxPt.Y, p.Y)
	}
	return minPt, maxPt
}

// RectQuad returns the corners of the axis-aligned rectangle [0,w]x[0,h]
// in the canonical order (0,0), (0,h), (w,0), (w,h).
func RectQuad(w, h float64) Quad {
	return Quad{
		{X: 0, Y: 0},
		{X: 0, Y: h},
		{X: w, Y: 0},
		{X: w, Y: h},
	}
}
