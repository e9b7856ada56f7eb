// Package homography estimates planar projective transforms from four
// point correspondences. Four correspondences determine the eight free
// coefficients exactly, so the estimate is a direct solve of an 8x8
// linear system rather than an iterative fit.
package homography

import (
	"errors"
	"fmt"

	"github.com/osresearch/p5.projection/internal/geometry"
)

// ErrSingular is returned when the correspondence system has no unique
// solution, e.g. three collinear or duplicate source points.
var ErrSingular = errors.New("homography: singular correspondence system")

// ErrIllConditioned wraps ErrSingular for systems that technically solve
// but whose pivot spread exceeds conditionLimit; coefficients from such a
// solve amplify input noise by many orders of magnitude.
var ErrIllConditioned = fmt.Errorf("%w: condition estimate exceeds limit", ErrSingular)

// conditionLimit bounds the ratio of largest to smallest pivot magnitude
// seen during elimination. 1e12 leaves roughly four significant digits in
// float64, the useful floor for screen-space coordinates.
const conditionLimit = 1e12

// Solve computes the Matrix mapping src[i] -> dst[i] for the four
// correspondences. The system is built from the projective equations with
// the homogeneous denominator cleared:
//
//	u = c00*x + c01*y + c02 - c20*x*u - c21*y*u
//	v = c10*x + c11*y + c12 - c20*x*v - c21*y*v
//
// giving rows [x y 1 0 0 0 -x*u -y*u] and [0 0 0 x y 1 -x*v -y*v].
func Solve(src, dst geometry.Quad) (Matrix, error) {
	var a [8][8]float64
	var b [8]float64
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y

		a[i] = [8]float64{x, y, 1, 0, 0, 0, -x * u, -y * u}
		b[i] = u

		a[i+4] = [8]float64{0, 0, 0, x, y, 1, -x * v, -y * v}
		b[i+4] = v
	}

	c, err := solve8x8(a, b)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7], 1}, nil
}

// solve8x8 solves a*x = b by Gauss-Jordan elimination with partial
// pivoting, tracking pivot spread as a cheap condition estimate.
func solve8x8(a [8][8]float64, b [8]float64) ([8]float64, error) {
	matrix := a
	vector := b

	minPivot := 0.0
	maxPivot := 0.0
	for col := 0; col < 8; col++ {
		pivot, ok := pivotAndNormalize(&matrix, &vector, col)
		if !ok {
			return [8]float64{}, ErrSingular
		}
		if col == 0 || pivot < minPivot {
			minPivot = pivot
		}
		if pivot > maxPivot {
			maxPivot = pivot
		}
		eliminateColumn(&matrix, &vector, col)
	}
	if minPivot == 0 || maxPivot/minPivot > conditionLimit {
		return [8]float64{}, ErrIllConditioned
	}

	return vector, nil
}

// pivotAndNormalize selects the largest-magnitude pivot at or below the
// diagonal, swaps it into place and scales its row to a unit pivot. It
// returns the pivot magnitude before scaling, or false when the column
// has no nonzero entry left.
func pivotAndNormalize(matrix *[8][8]float64, vector *[8]float64, col int) (float64, bool) {
	pivotRow := findPivotRow(*matrix, col)
	if pivotRow == -1 {
		return 0, false
	}

	if pivotRow != col {
		matrix[col], matrix[pivotRow] = matrix[pivotRow], matrix[col]
		vector[col], vector[pivotRow] = vector[pivotRow], vector[col]
	}

	pivot := abs(matrix[col][col])
	normalizeRow(matrix, vector, col)
	return pivot, true
}

func findPivotRow(matrix [8][8]float64, col int) int {
	maxAbs := abs(matrix[col][col])
	pivotRow := col
	for r := col + 1; r < 8; r++ {
		if abs(matrix[r][col]) > maxAbs {
			maxAbs = abs(matrix[r][col])
			pivotRow = r
		}
	}
	if maxAbs == 0 {
		return -1
	}
	return pivotRow
}

func normalizeRow(matrix *[8][8]float64, vector *[8]float64, row int) {
	div := matrix[row][row]
	for c := row; c < 8; c++ {
		matrix[row][c] /= div
	}
	vector[row] /= div
}

func eliminateColumn(matrix *[8][8]float64, vector *[8]float64, col int) {
	for r := 0; r < 8; r++ {
		if r == col {
			continue
		}
		factor := matrix[r][col]
		if factor == 0 {
			continue
		}
		for c := col; c < 8; c++ {
			matrix[r][c] -= factor * matrix[col][c]
		}
		vector[r] -= factor * vector[col]
	}
}
