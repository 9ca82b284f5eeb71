// Package inpaint fills image holes with content synthesized from the
// surrounding valid pixels (exemplar-based inpainting). The algorithm
// is driven through an explicit step protocol: configure the inpainter,
// call Initialize once, then call Step while HasMoreSteps reports true,
// and finally retrieve the filled image. The loop is strictly
// sequential; each step depends on the fill state accumulated so far.
package inpaint

import (
	"errors"
	"fmt"
	"math"

	"github.com/facepaint/facepaint/pkg/pixmap"
)

// ErrNotInitialized is returned when the inpainter is driven before
// Initialize succeeded.
var ErrNotInitialized = errors.New("inpaint: not initialized")

// Inpainter fills the target-mask region of a source image patch by
// greedily copying best-matching exemplar patches from the source-mask
// region, highest-confidence boundary pixels first.
type Inpainter struct {
	img    *pixmap.Pixmap
	source *pixmap.Pixmap
	target *pixmap.Pixmap

	patchSize  int
	confidence []float64
	remaining  int

	initialized bool
}

// SetSourceImage sets the image patch to restore. The image is copied;
// the caller's buffer is left untouched.
func (in *Inpainter) SetSourceImage(img *pixmap.Pixmap) {
	in.img = img.Clone()
}

// SetSourceMask marks the pixels usable as exemplars, the logical
// complement of the target area.
func (in *Inpainter) SetSourceMask(m *pixmap.Pixmap) {
	in.source = m.Clone()
}

// SetTargetMask marks the hole to fill.
func (in *Inpainter) SetTargetMask(m *pixmap.Pixmap) {
	in.target = m.Clone()
}

// SetPatchSize sets the patch radius used for matching and filling.
func (in *Inpainter) SetPatchSize(size int) {
	in.patchSize = size
}

// Initialize validates the configuration and prepares the fill state.
// It must be called exactly once before the step loop.
func (in *Inpainter) Initialize() error {
	if in.img == nil || in.source == nil || in.target == nil {
		return fmt.Errorf("inpaint: image and masks must be set before Initialize")
	}

	if in.img.Format != pixmap.NRGBA8 {
		return fmt.Errorf("%w: inpaint image must be nrgba8, got %s", pixmap.ErrFormat, in.img.Format)
	}

	if in.source.Format != pixmap.Gray8 || in.target.Format != pixmap.Gray8 {
		return fmt.Errorf("%w: inpaint masks must be gray8", pixmap.ErrFormat)
	}

	if in.source.W != in.img.W || in.source.H != in.img.H ||
		in.target.W != in.img.W || in.target.H != in.img.H {
		return fmt.Errorf("inpaint: mask size does not match image size %dx%d", in.img.W, in.img.H)
	}

	if in.patchSize < 1 {
		return fmt.Errorf("inpaint: patch size must be positive, got %d", in.patchSize)
	}

	in.confidence = make([]float64, in.img.W*in.img.H)
	in.remaining = 0

	for i := range in.confidence {
		if in.target.Pix[i] == 0 {
			in.confidence[i] = 1
		} else {
			in.remaining++
		}
	}

	in.initialized = true

	return nil
}

// HasMoreSteps reports whether unfilled target pixels remain.
func (in *Inpainter) HasMoreSteps() bool {
	return in.initialized && in.remaining > 0
}

// Step fills one patch: it selects the boundary pixel of the remaining
// hole with the highest confidence, finds the best-matching exemplar
// patch, and copies its pixels into the still-unfilled positions. Every
// call advances the fill state; at least one pixel is filled per step.
func (in *Inpainter) Step() error {
	if !in.initialized {
		return ErrNotInitialized
	}

	if in.remaining == 0 {
		return nil
	}

	cx, cy, ok := in.pickBoundary()

	if !ok {
		// No known neighbor anywhere: seed from the patch center to
		// guarantee progress.
		cx, cy, _ = in.pickAny()
	}

	sx, sy := in.bestMatch(cx, cy)
	in.fillPatch(cx, cy, sx, sy)

	return nil
}

// Image returns the (possibly partially) filled image.
func (in *Inpainter) Image() *pixmap.Pixmap {
	return in.img
}

// pickBoundary returns the unfilled pixel adjacent to filled content
// with the highest patch confidence.
func (in *Inpainter) pickBoundary() (int, int, bool) {
	bestScore := -1.0
	bestX, bestY := 0, 0
	found := false

	for y := 0; y < in.img.H; y++ {
		for x := 0; x < in.img.W; x++ {
			if in.target.GrayAt(x, y) == 0 || !in.hasKnownNeighbor(x, y) {
				continue
			}

			score := in.patchConfidence(x, y)

			if score > bestScore {
				bestScore, bestX, bestY = score, x, y
				found = true
			}
		}
	}

	return bestX, bestY, found
}

func (in *Inpainter) pickAny() (int, int, bool) {
	for y := 0; y < in.img.H; y++ {
		for x := 0; x < in.img.W; x++ {
			if in.target.GrayAt(x, y) != 0 {
				return x, y, true
			}
		}
	}

	return 0, 0, false
}

func (in *Inpainter) hasKnownNeighbor(x, y int) bool {
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]

		if nx < 0 || nx >= in.img.W || ny < 0 || ny >= in.img.H {
			continue
		}

		if in.target.GrayAt(nx, ny) == 0 {
			return true
		}
	}

	return false
}

// patchConfidence is the mean confidence over the patch window.
func (in *Inpainter) patchConfidence(x, y int) float64 {
	var sum float64
	var n int

	for dy := -in.patchSize; dy <= in.patchSize; dy++ {
		for dx := -in.patchSize; dx <= in.patchSize; dx++ {
			px, py := x+dx, y+dy

			if px < 0 || px >= in.img.W || py < 0 || py >= in.img.H {
				continue
			}

			sum += in.confidence[py*in.img.W+px]
			n++
		}
	}

	if n == 0 {
		return 0
	}

	return sum / float64(n)
}

// bestMatch scans exemplar patch centers for the lowest sum of squared
// differences against the known pixels around (cx, cy).
func (in *Inpainter) bestMatch(cx, cy int) (int, int) {
	bestCost := math.MaxFloat64
	bestX, bestY := cx, cy

	for y := in.patchSize; y < in.img.H-in.patchSize; y++ {
		for x := in.patchSize; x < in.img.W-in.patchSize; x++ {
			if !in.validExemplar(x, y) {
				continue
			}

			cost, ok := in.patchCost(cx, cy, x, y, bestCost)

			if ok && cost < bestCost {
				bestCost, bestX, bestY = cost, x, y
			}
		}
	}

	return bestX, bestY
}

// validExemplar reports whether the full patch around (x, y) lies in
// the source mask.
func (in *Inpainter) validExemplar(x, y int) bool {
	for dy := -in.patchSize; dy <= in.patchSize; dy++ {
		for dx := -in.patchSize; dx <= in.patchSize; dx++ {
			if in.source.GrayAt(x+dx, y+dy) == 0 {
				return false
			}
		}
	}

	return true
}

// patchCost compares the known pixels of the target patch against the
// exemplar patch, aborting early once the running cost exceeds limit.
func (in *Inpainter) patchCost(cx, cy, ex, ey int, limit float64) (float64, bool) {
	var cost float64
	var known int

	for dy := -in.patchSize; dy <= in.patchSize; dy++ {
		for dx := -in.patchSize; dx <= in.patchSize; dx++ {
			px, py := cx+dx, cy+dy

			if px < 0 || px >= in.img.W || py < 0 || py >= in.img.H {
				continue
			}

			if in.target.GrayAt(px, py) != 0 {
				continue
			}

			r0, g0, b0, _ := in.img.RGBA8At(px, py)
			r1, g1, b1, _ := in.img.RGBA8At(ex+dx, ey+dy)

			dr := float64(r0) - float64(r1)
			dg := float64(g0) - float64(g1)
			db := float64(b0) - float64(b1)
			cost += dr*dr + dg*dg + db*db
			known++

			if cost > limit {
				return 0, false
			}
		}
	}

	if known == 0 {
		return 0, true
	}

	return cost / float64(known), true
}

// fillPatch copies exemplar pixels into the unfilled positions of the
// target patch and marks them filled.
func (in *Inpainter) fillPatch(cx, cy, ex, ey int) {
	conf := in.patchConfidence(cx, cy)

	for dy := -in.patchSize; dy <= in.patchSize; dy++ {
		for dx := -in.patchSize; dx <= in.patchSize; dx++ {
			px, py := cx+dx, cy+dy

			if px < 0 || px >= in.img.W || py < 0 || py >= in.img.H {
				continue
			}

			if in.target.GrayAt(px, py) == 0 {
				continue
			}

			sx, sy := ex+dx, ey+dy

			if sx < 0 || sx >= in.img.W || sy < 0 || sy >= in.img.H {
				continue
			}

			r, g, b, a := in.img.RGBA8At(sx, sy)
			in.img.SetRGBA8(px, py, r, g, b, a)

			in.target.SetGray(px, py, 0)
			in.confidence[py*in.img.W+px] = conf
			in.remaining--
		}
	}
}
