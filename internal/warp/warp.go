// Package warp applies a projection mapper to raster images: rendering a
// drawing surface skewed onto its screen quad, and pulling a projected
// quad back to a straight rectangle. Sampling is inverse-mapped with
// bilinear interpolation so the output has no holes.
package warp

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/osresearch/p5.projection/internal/geometry"
	"github.com/osresearch/p5.projection/internal/projection"
)

// Project renders the canvas image through the mapper's forward transform
// into a frame of the given size. Frame pixel (x, y) is inverse-mapped to
// canvas coordinates and sampled there; pixels landing outside the canvas
// stay fully transparent, so the quad's surroundings show the frame
// background.
func Project(canvas image.Image, m *projection.Mapper, frameW, frameH int) *image.NRGBA {
	if canvas == nil || frameW <= 0 || frameH <= 0 {
		return nil
	}

	src := imaging.Clone(canvas)
	out := image.NewNRGBA(image.Rect(0, 0, frameW, frameH))
	for y := 0; y < frameH; y++ {
		for x := 0; x < frameW; x++ {
			cx, cy := m.MapInverse(float64(x), float64(y))
			c, ok := sampleBilinear(src, cx, cy)
			if ok {
				out.SetNRGBA(x, y, c)
			}
		}
	}
	return out
}

// Unproject pulls the mapper's screen quad out of the screen image and
// straightens it into a dstW x dstH rectangle, the keystone-corrected
// view of what the projector shows. The rectangle is sampled through the
// canvas: output pixel -> canvas coordinates -> forward map -> screen.
func Unproject(screen image.Image, m *projection.Mapper, dstW, dstH int) *image.NRGBA {
	if screen == nil || dstW <= 0 || dstH <= 0 {
		return nil
	}

	canvasMin, canvasMax := m.Source().Bounds()
	sx := (canvasMax.X - canvasMin.X) / float64(dstW)
	sy := (canvasMax.Y - canvasMin.Y) / float64(dstH)

	src := imaging.Clone(screen)
	out := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			cx := canvasMin.X + (float64(x)+0.5)*sx
			cy := canvasMin.Y + (float64(y)+0.5)*sy
			u, v := m.MapForward(cx, cy)
			c, ok := sampleBilinear(src, u, v)
			if ok {
				out.SetNRGBA(x, y, c)
			}
		}
	}
	return out
}

// QuadBoundsFrame returns a frame size just covering the mapper's screen
// quad, for callers that want a tight Project output.
func QuadBoundsFrame(m *projection.Mapper) (int, int) {
	_, maxPt := m.Dest().Bounds()
	w := int(maxPt.X) + 1
	h := int(maxPt.Y) + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// sampleBilinear samples src at fractional coordinates, blending the four
// surrounding pixels. The second result is false outside the image.
func sampleBilinear(src *image.NRGBA, x, y float64) (color.NRGBA, bool) {
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) || x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.NRGBA{}, false
	}
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := src.NRGBAAt(x0, y0)
	c10 := src.NRGBAAt(x1, y0)
	c01 := src.NRGBAAt(x0, y1)
	c11 := src.NRGBAAt(x1, y1)

	blend := func(a, b, c, d uint8) uint8 {
		top := lerp(float64(a), float64(b), fx)
		bot := lerp(float64(c), float64(d), fx)
		return uint8(lerp(top, bot, fy) + 0.5)
	}
	return color.NRGBA{
		R: blend(c00.R, c10.R, c01.R, c11.R),
		G: blend(c00.G, c10.G, c01.G, c11.G),
		B: blend(c00.B, c10.B, c01.B, c11.B),
		A: blend(c00.A, c10.A, c01.A, c11.A),
	}, true
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// RectMapper builds a mapper from a w x h canvas onto the given screen
// quad, the common case of projecting a full drawing surface.
func RectMapper(w, h int, screen geometry.Quad) (*projection.Mapper, error) {
	return projection.New(geometry.RectQuad(float64(w), float64(h)), screen)
}
