package testutil

import (
	"github.com/osresearch/p5.projection/internal/geometry"
)

// CanvasQuad returns the corners of a 1920x1080 drawing surface in
// canonical corner order.
func CanvasQuad() geometry.Quad {
	return geometry.RectQuad(1920, 1080)
}

// ProjectorQuad returns a well-conditioned screen quad as produced by a
// typical off-axis projector after manual calibration.
func ProjectorQuad() geometry.Quad {
	return geometry.Quad{
		{X: -700, Y: -400},
		{X: -650, Y: 300},
		{X: 600, Y: -150},
		{X: 500, Y: 450},
	}
}

// CollinearQuad returns a degenerate quad with three corners on the x
// axis; any solve anchored on it must fail.
func CollinearQuad() geometry.Quad {
	return geometry.Quad{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 20, Y: 0},
		{X: 5, Y: 5},
	}
}

// SkewQuad returns a mildly skewed unit-scale quad useful for round-trip
// checks at small coordinate magnitudes.
func SkewQuad() geometry.Quad {
	return geometry.Quad{
		{X: 0.1, Y: -0.2},
		{X: -0.1, Y: 1.1},
		{X: 0.9, Y: 0.05},
		{X: 1.2, Y: 0.95},
	}
}
