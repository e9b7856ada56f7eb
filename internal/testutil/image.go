package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Checkerboard generates a w x h checkerboard with the given cell size.
// The pattern makes warping artifacts (smearing, misaligned corners) easy
// to spot in tests and debug dumps.
func Checkerboard(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	return img
}

// LabeledCanvas generates a white canvas with centered text and a one
// pixel border, a stand-in for a real drawing surface.
func LabeledCanvas(w, h int, label string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	for x := 0; x < w; x++ {
		img.Set(x, 0, color.Black)
		img.Set(x, h-1, color.Black)
	}
	for y := 0; y < h; y++ {
		img.Set(0, y, color.Black)
		img.Set(w-1, y, color.Black)
	}

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
	}
	textWidth := font.MeasureString(face, label).Ceil()
	textHeight := face.Metrics().Height.Ceil()
	drawer.Dot = fixed.P((w-textWidth)/2, (h+textHeight)/2)
	drawer.DrawString(label)

	return img
}

// ToRGBA clones an image into RGBA form.
func ToRGBA(img image.Image) *image.RGBA {
	src := imaging.Clone(img)
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// SaveImage saves an image as PNG to the specified path.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))

	file, err := os.Create(path) //nolint:gosec // G304: Test file creation with controlled path
	require.NoError(t, err, "Failed to create file %s", path)
	defer func() {
		require.NoError(t, file.Close())
	}()

	require.NoError(t, png.Encode(file, img), "Failed to encode PNG image")
}
