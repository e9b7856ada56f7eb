package homography

// Matrix holds the nine coefficients of a planar projective transform in
// row-major order [c00 c01 c02 c10 c11 c12 c20 c21 c22], with c22 fixed
// to 1 by the solver. Values are never mutated after construction; every
// re-solve produces a fresh Matrix.
type Matrix [9]float64

// Identity returns the identity projection.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Apply maps (x, y) through the transform using homogeneous division:
// z = c20*x + c21*y + c22, u = (c00*x+c01*y+c02)/z, v = (c10*x+c11*y+c12)/z.
// Points on the line mapped to infinity (z == 0) are sent to a sentinel
// far outside any plausible surface.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	z := m[6]*x + m[7]*y + m[8]
	if z == 0 {
		return -1e9, -1e9
	}
	u := (m[0]*x + m[1]*y + m[2]) / z
	v := (m[3]*x + m[4]*y + m[5]) / z
	return u, v
}

// IsIdentity reports whether every coefficient is within tol of the
// identity projection.
func (m Matrix) IsIdentity(tol float64) bool {
	id := Identity()
	for i := range m {
		if abs(m[i]-id[i]) > tol {
			return false
		}
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
