package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}), 1e-12)
	assert.InDelta(t, 0.0, Distance(Point{X: 1, Y: 2}, Point{X: 1, Y: 2}), 1e-12)
}

func TestCollinear(t *testing.T) {
	assert.True(t, Collinear(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, Point{X: 20, Y: 0}))
	assert.True(t, Collinear(Point{X: 1, Y: 1}, Point{X: 2, Y: 2}, Point{X: 300, Y: 300}))
	assert.False(t, Collinear(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, Point{X: 5, Y: 5}))

	// Coincident points count as collinear
	assert.True(t, Collinear(Point{X: 3, Y: 3}, Point{X: 3, Y: 3}, Point{X: 7, Y: 1}))
}

func TestCollinear_LargeCoordinates(t *testing.T) {
	// Rounding at screen-scale coordinates must not trip the check
	assert.False(t, Collinear(
		Point{X: -700, Y: -400},
		Point{X: -650, Y: 300},
		Point{X: 600, Y: -150},
	))
}

func TestQuadValidate(t *testing.T) {
	good := Quad{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	require.NoError(t, good.Validate())

	dup := good
	dup[3] = dup[0]
	err := dup.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	collinear := Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}, {X: 5, Y: 5}}
	err = collinear.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collinear")
}

func TestQuadEdgeLengths(t *testing.T) {
	q := Quad{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	e := q.EdgeLengths()
	for i, length := range e {
		assert.InDelta(t, 10.0, length, 1e-12, "edge %d", i)
	}
}

func TestQuadBounds(t *testing.T) {
	q := Quad{{X: -700, Y: -400}, {X: -650, Y: 300}, {X: 600, Y: -150}, {X: 500, Y: 450}}
	minPt, maxPt := q.Bounds()
	assert.Equal(t, Point{X: -700, Y: -400}, minPt)
	assert.Equal(t, Point{X: 600, Y: 450}, maxPt)
}

func TestRectQuad(t *testing.T) {
	q := RectQuad(1920, 1080)
	assert.Equal(t, Point{X: 0, Y: 0}, q[0])
	assert.Equal(t, Point{X: 0, Y: 1080}, q[1])
	assert.Equal(t, Point{X: 1920, Y: 0}, q[2])
	assert.Equal(t, Point{X: 1920, Y: 1080}, q[3])
	require.NoError(t, q.Validate())
}
