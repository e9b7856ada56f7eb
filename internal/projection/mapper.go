// Package projection maps points between a flat drawing surface and an
// arbitrary screen quadrilateral, the core of projector keystone
// correction: the surface is drawn as usual, then skewed onto the quad.
package projection

import (
	"fmt"

	"github.com/osresearch/p5.projection/internal/geometry"
	"github.com/osresearch/p5.projection/internal/homography"
)

// Mapper pairs a forward transform (source quad -> destination quad) with
// an inverse transform obtained by re-solving with the correspondences
// swapped. The inverse is therefore an independent estimate, not the
// algebraic inverse of the forward matrix; round trips agree only to
// floating-point accuracy. Both matrices are recomputed together on every
// quad change, so they are never mutually stale.
//
// A Mapper is not safe for concurrent mutation; independent Mapper
// instances share nothing and may be used in parallel.
type Mapper struct {
	src geometry.Quad
	dst geometry.Quad

	forward homography.Matrix
	inverse homography.Matrix
}

// New solves both directions for the given quads. Either solve failing
// fails construction; a Mapper never exists with a half-computed pair.
func New(src, dst geometry.Quad) (*Mapper, error) {
	m := &Mapper{src: src, dst: dst}
	if err := m.Update(); err != nil {
		return nil, err
	}
	return m, nil
}

// SetQuads replaces both point sets and re-solves both matrices
// synchronously. On failure the Mapper keeps its previous quads and
// matrices, which remain mutually consistent.
func (m *Mapper) SetQuads(src, dst geometry.Quad) error {
	forward, err := homography.Solve(src, dst)
	if err != nil {
		return fmt.Errorf("forward solve: %w", err)
	}
	inverse, err := homography.Solve(dst, src)
	if err != nil {
		return fmt.Errorf("inverse solve: %w", err)
	}
	m.src, m.dst = src, dst
	m.forward, m.inverse = forward, inverse
	return nil
}

// SetCorner moves a single destination corner and re-solves, the primitive
// behind interactive drag calibration.
func (m *Mapper) SetCorner(index int, p geometry.Point) error {
	if index < 0 || index > 3 {
		return fmt.Errorf("corner index %d out of range", index)
	}
	dst := m.dst
	dst[index] = p
	return m.SetQuads(m.src, dst)
}

// Update re-solves both matrices from the current quads.
func (m *Mapper) Update() error {
	return m.SetQuads(m.src, m.dst)
}

// MapForward maps a source-surface point onto the screen quad.
func (m *Mapper) MapForward(x, y float64) (float64, float64) {
	return m.forward.Apply(x, y)
}

// MapInverse maps a screen point back onto the source surface.
func (m *Mapper) MapInverse(u, v float64) (float64, float64) {
	return m.inverse.Apply(u, v)
}

// Source returns the current source quad.
func (m *Mapper) Source() geometry.Quad { return m.src }

// Dest returns the current destination quad.
func (m *Mapper) Dest() geometry.Quad { return m.dst }

// Forward returns the source->destination matrix.
func (m *Mapper) Forward() homography.Matrix { return m.forward }

// Inverse returns the destination->source matrix. See the type comment:
// this is a swapped re-solve, not a matrix inversion.
func (m *Mapper) Inverse() homography.Matrix { return m.inverse }
