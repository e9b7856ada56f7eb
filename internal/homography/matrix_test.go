package homography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixApply_Identity(t *testing.T) {
	m := Identity()

	u, v := m.Apply(10, 20)
	assert.InDelta(t, 10.0, u, 1e-12)
	assert.InDelta(t, 20.0, v, 1e-12)
}

func TestMatrixApply_HomogeneousDivision(t *testing.T) {
	// z depends on the input point, so the mapping is non-affine
	m := Matrix{1, 0, 0, 0, 1, 0, 0.01, 0.02, 1}

	u, v := m.Apply(10, 20)
	z := 0.01*10 + 0.02*20 + 1
	assert.InDelta(t, 10/z, u, 1e-12)
	assert.InDelta(t, 20/z, v, 1e-12)
}

func TestMatrixApply_ZeroDenominator(t *testing.T) {
	m := Matrix{1, 0, 0, 0, 1, 0, 0, 0, 0}

	u, v := m.Apply(0, 0)
	assert.Less(t, u, -1e8)
	assert.Less(t, v, -1e8)
}

func TestMatrixIsIdentity(t *testing.T) {
	assert.True(t, Identity().IsIdentity(0))

	m := Identity()
	m[2] = 1e-8
	assert.True(t, m.IsIdentity(1e-6))
	assert.False(t, m.IsIdentity(1e-9))
}
