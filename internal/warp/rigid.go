package warp

import (
	"errors"
	"fmt"
	"math"

	"github.com/facepaint/facepaint/pkg/pixmap"

	"github.com/facepaint/facepaint/pkg/geom"
)

// ErrNoMapping is returned when the deformation is driven without
// correspondence pairs.
var ErrNoMapping = errors.New("warp: no mapping points")

// rigidGridStep is the spacing of the deformation field grid. The
// field is evaluated at grid nodes and interpolated bilinearly in
// between, which keeps the per-pixel cost independent of the number of
// correspondence pairs.
const rigidGridStep = 8

// Rigid deforms an image so that a set of source points moves onto the
// corresponding target points, while keeping the deformation locally
// rigid (rotation plus translation). It absorbs the residual shape
// differences a global similarity transform cannot capture.
type Rigid struct {
	target []geom.Point
	source []geom.Point

	srcW, srcH int
	dstW, dstH int

	// delta holds, per grid node, the offset from the output position
	// to the source sample position.
	delta      []geom.Point
	gridW      int
	gridH      int
	calculated bool
}

// SetMappingPoints sets the correspondence pairs: content at source[i]
// is carried to target[i].
func (w *Rigid) SetMappingPoints(target, source []geom.Point) {
	w.target = append([]geom.Point(nil), target...)
	w.source = append([]geom.Point(nil), source...)
	w.calculated = false
}

// SetSourceSize sets the input canvas dimensions.
func (w *Rigid) SetSourceSize(width, height int) {
	w.srcW, w.srcH = width, height
}

// SetTargetSize sets the output canvas dimensions.
func (w *Rigid) SetTargetSize(width, height int) {
	w.dstW, w.dstH = width, height
}

// CalculateDelta computes the deformation field. The alpha parameter
// controls the falloff of each correspondence pair's influence; larger
// values localize the deformation.
func (w *Rigid) CalculateDelta(alpha float64) error {
	if len(w.target) == 0 || len(w.target) != len(w.source) {
		return fmt.Errorf("%w: %d target, %d source", ErrNoMapping, len(w.target), len(w.source))
	}

	if w.dstW <= 0 || w.dstH <= 0 {
		return fmt.Errorf("warp: target size not set")
	}

	w.gridW = w.dstW/rigidGridStep + 2
	w.gridH = w.dstH/rigidGridStep + 2
	w.delta = make([]geom.Point, w.gridW*w.gridH)

	for gy := 0; gy < w.gridH; gy++ {
		for gx := 0; gx < w.gridW; gx++ {
			v := geom.Pt(float64(gx*rigidGridStep), float64(gy*rigidGridStep))
			w.delta[gy*w.gridW+gx] = w.rigidMap(v, alpha).Sub(v)
		}
	}

	w.calculated = true

	return nil
}

// rigidMap evaluates the moving-least-squares rigid deformation at v:
// the weighted best-fit rotation plus translation that carries the
// target control points onto the source control points, so that output
// pixels near target[i] sample the input near source[i].
func (w *Rigid) rigidMap(v geom.Point, alpha float64) geom.Point {
	var wsum float64
	var pstar, qstar geom.Point

	weights := make([]float64, len(w.target))

	for i, p := range w.target {
		d2 := math.Pow(geom.Distance(p, v), 2*alpha)

		if d2 < 1e-8 {
			// v coincides with a control point; map it exactly.
			return w.source[i]
		}

		weights[i] = 1 / d2
		wsum += weights[i]

		pstar = pstar.Add(p.Scale(weights[i]))
		qstar = qstar.Add(w.source[i].Scale(weights[i]))
	}

	pstar = pstar.Scale(1 / wsum)
	qstar = qstar.Scale(1 / wsum)

	// Best-fit rotation as the normalized weighted sum of q̂·conj(p̂)
	// in complex form.
	var rx, ry float64

	for i, p := range w.target {
		ph := p.Sub(pstar)
		qh := w.source[i].Sub(qstar)

		rx += weights[i] * (qh.X*ph.X + qh.Y*ph.Y)
		ry += weights[i] * (qh.Y*ph.X - qh.X*ph.Y)
	}

	rn := math.Hypot(rx, ry)

	if rn == 0 {
		return v.Sub(pstar).Add(qstar)
	}

	rx, ry = rx/rn, ry/rn

	d := v.Sub(pstar)

	return geom.Pt(rx*d.X-ry*d.Y, ry*d.X+rx*d.Y).Add(qstar)
}

// GenNewImage renders the deformed image. strength in [0, 1] blends
// between the identity (0) and the full deformation field (1).
// Samples that fall outside the input stay fully transparent.
func (w *Rigid) GenNewImage(img *pixmap.Pixmap, strength float64) (*pixmap.Pixmap, error) {
	if !w.calculated {
		return nil, fmt.Errorf("warp: CalculateDelta must run before GenNewImage")
	}

	if img.Format != pixmap.NRGBA8 {
		return nil, fmt.Errorf("%w: rigid warp supports nrgba8 only, got %s", pixmap.ErrFormat, img.Format)
	}

	out := pixmap.New(w.dstW, w.dstH, pixmap.NRGBA8)

	for y := 0; y < w.dstH; y++ {
		for x := 0; x < w.dstW; x++ {
			d := w.deltaAt(float64(x), float64(y))
			sx := float64(x) + strength*d.X
			sy := float64(y) + strength*d.Y

			r, g, b, a := sampleBilinear(img, sx, sy)
			out.SetRGBA8(x, y, r, g, b, a)
		}
	}

	return out, nil
}

// deltaAt bilinearly interpolates the deformation field at (x, y).
func (w *Rigid) deltaAt(x, y float64) geom.Point {
	gx := x / rigidGridStep
	gy := y / rigidGridStep

	x0 := clampInt(int(gx), 0, w.gridW-2)
	y0 := clampInt(int(gy), 0, w.gridH-2)

	fx := gx - float64(x0)
	fy := gy - float64(y0)

	d00 := w.delta[y0*w.gridW+x0]
	d10 := w.delta[y0*w.gridW+x0+1]
	d01 := w.delta[(y0+1)*w.gridW+x0]
	d11 := w.delta[(y0+1)*w.gridW+x0+1]

	top := geom.Lerp(d00, d10, fx)
	bottom := geom.Lerp(d01, d11, fx)

	return geom.Lerp(top, bottom, fy)
}

// sampleBilinear samples an NRGBA8 pixmap at a fractional position.
// Out-of-bounds samples are transparent.
func sampleBilinear(img *pixmap.Pixmap, x, y float64) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x > float64(img.W-1) || y > float64(img.H-1) {
		return 0, 0, 0, 0
	}

	x0 := clampInt(int(x), 0, img.W-1)
	y0 := clampInt(int(y), 0, img.H-1)
	x1 := clampInt(x0+1, 0, img.W-1)
	y1 := clampInt(y0+1, 0, img.H-1)

	fx := x - float64(x0)
	fy := y - float64(y0)

	var acc [4]float64

	accumulate := func(px, py int, weight float64) {
		i := (py*img.W + px) * 4
		for c := 0; c < 4; c++ {
			acc[c] += weight * float64(img.Pix[i+c])
		}
	}

	accumulate(x0, y0, (1-fx)*(1-fy))
	accumulate(x1, y0, fx*(1-fy))
	accumulate(x0, y1, (1-fx)*fy)
	accumulate(x1, y1, fx*fy)

	return uint8(acc[0] + 0.5), uint8(acc[1] + 0.5), uint8(acc[2] + 0.5), uint8(acc[3] + 0.5)
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
