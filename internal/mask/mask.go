// Package mask synthesizes and analyzes the 8-bit opacity masks that
// gate cosmetic compositing: polygon rasterization, edge feathering,
// bounding boxes with tolerance margins, and mask moments.
package mask

import (
	"errors"
	"fmt"
	"image"

	"github.com/carck/gg"

	"github.com/facepaint/facepaint/pkg/geom"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// ErrEmpty is returned when a mask carries no coverage at all, making
// moment computations degenerate.
var ErrEmpty = errors.New("mask: empty mask")

// FromPolygon rasterizes the polygon into a Gray8 mask local to rect:
// mask pixel (0,0) corresponds to rect.Min. Edges are antialiased.
func FromPolygon(rect image.Rectangle, poly geom.Polygon) *pixmap.Pixmap {
	w, h := rect.Dx(), rect.Dy()

	m := pixmap.New(w, h, pixmap.Gray8)

	if len(poly) < 3 || w <= 0 || h <= 0 {
		return m
	}

	dc := gg.NewContext(w, h)
	dc.MoveTo(poly[0].X-float64(rect.Min.X), poly[0].Y-float64(rect.Min.Y))

	for _, p := range poly[1:] {
		dc.LineTo(p.X-float64(rect.Min.X), p.Y-float64(rect.Min.Y))
	}

	dc.ClosePath()
	dc.SetRGBA(1, 1, 1, 1)
	dc.Fill()

	rgba, ok := dc.Image().(*image.RGBA)

	if !ok {
		// Not expected from gg, but stay correct if the backing
		// image type changes.
		b := dc.Image().Bounds()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				_, _, _, a := dc.Image().At(b.Min.X+x, b.Min.Y+y).RGBA()
				m.SetGray(x, y, uint8(a>>8))
			}
		}
		return m
	}

	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			m.SetGray(x, y, row[x*4+3])
		}
	}

	return m
}

// FromPolygonSmooth rasterizes the polygon and feathers its edges with
// the given level: a separable box blur of that radius applied twice,
// which closely approximates a Gaussian falloff.
func FromPolygonSmooth(rect image.Rectangle, poly geom.Polygon, level int) *pixmap.Pixmap {
	m := FromPolygon(rect, poly)

	if level > 0 {
		boxBlur(m, level)
		boxBlur(m, level)
	}

	return m
}

// boxBlur applies a separable box blur of the given radius in place.
func boxBlur(m *pixmap.Pixmap, radius int) {
	if radius <= 0 || m.Empty() {
		return
	}

	window := 2*radius + 1
	tmp := make([]uint16, m.W*m.H)

	// Horizontal pass.
	for y := 0; y < m.H; y++ {
		var sum int
		for x := -radius; x <= radius; x++ {
			sum += int(m.GrayAt(clampInt(x, 0, m.W-1), y))
		}
		for x := 0; x < m.W; x++ {
			tmp[y*m.W+x] = uint16(sum / window)
			sum += int(m.GrayAt(clampInt(x+radius+1, 0, m.W-1), y))
			sum -= int(m.GrayAt(clampInt(x-radius, 0, m.W-1), y))
		}
	}

	// Vertical pass.
	for x := 0; x < m.W; x++ {
		var sum int
		for y := -radius; y <= radius; y++ {
			sum += int(tmp[clampInt(y, 0, m.H-1)*m.W+x])
		}
		for y := 0; y < m.H; y++ {
			m.SetGray(x, y, uint8(sum/window))
			sum += int(tmp[clampInt(y+radius+1, 0, m.H-1)*m.W+x])
			sum -= int(tmp[clampInt(y-radius, 0, m.H-1)*m.W+x])
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// BoundingRect returns the bounding rectangle of all nonzero mask
// samples, grown by margin pixels on every side and clamped to the
// mask bounds. The margin tolerates imprecise input masks.
func BoundingRect(m *pixmap.Pixmap, margin int) image.Rectangle {
	if m.Format != pixmap.Gray8 {
		return image.Rectangle{}
	}

	minX, minY := m.W, m.H
	maxX, maxY := -1, -1

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.GrayAt(x, y) == 0 {
				continue
			}

			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return image.Rectangle{}
	}

	return image.Rect(minX, minY, maxX+1, maxY+1).Inset(-margin).Intersect(m.Bounds())
}

// Centroid returns the opacity-weighted center of mass of the mask.
func Centroid(m *pixmap.Pixmap) (geom.Point, error) {
	if m.Format != pixmap.Gray8 {
		return geom.Point{}, fmt.Errorf("%w: centroid on %s", pixmap.ErrFormat, m.Format)
	}

	var m00, m10, m01 float64

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			v := float64(m.GrayAt(x, y))
			m00 += v
			m10 += v * float64(x)
			m01 += v * float64(y)
		}
	}

	if m00 == 0 {
		return geom.Point{}, fmt.Errorf("%w: zero-area moments", ErrEmpty)
	}

	return geom.Pt(m10/m00, m01/m00), nil
}

// Invert returns the logical complement of the mask.
func Invert(m *pixmap.Pixmap) *pixmap.Pixmap {
	out := m.Clone()

	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}

	return out
}
