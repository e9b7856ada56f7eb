package testutil

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot()
	require.NoError(t, err)
	assert.NotEmpty(t, root)

	_, statErr := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, statErr)
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "sample.yaml", "width: 10\n")

	content, err := os.ReadFile(path) //nolint:gosec // G304: test-controlled path
	require.NoError(t, err)
	assert.Equal(t, "width: 10\n", string(content))
}

func TestFixtureQuadsAreValid(t *testing.T) {
	require.NoError(t, CanvasQuad().Validate())
	require.NoError(t, ProjectorQuad().Validate())
	require.NoError(t, SkewQuad().Validate())
	require.Error(t, CollinearQuad().Validate())
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(32, 16, 8)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	// Alternating cells
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(8, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 8))
}

func TestLabeledCanvas(t *testing.T) {
	img := LabeledCanvas(120, 60, "left wall")
	assert.Equal(t, 120, img.Bounds().Dx())

	// Border pixels are black, interior background white
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(2, 2))
}

func TestSaveImage(t *testing.T) {
	img := Checkerboard(16, 16, 4)
	path := filepath.Join(t.TempDir(), "nested", "board.png")
	SaveImage(t, img, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
