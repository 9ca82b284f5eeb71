package effect

import (
	"fmt"
	"image"
	"math"

	"github.com/facepaint/facepaint/internal/blend"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/internal/warp"
	"github.com/facepaint/facepaint/pkg/geom"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// referenceEyePoints are the canonical right-eye contour positions the
// bundled eye cosmetics are authored against, in texture coordinates
// and in the same order as landmark indices 34-41. Calibration data,
// kept verbatim.
var referenceEyePoints = [landmark.EyePointCount]geom.Point{
	{X: 633, Y: 287}, {X: 534, Y: 228}, {X: 458, Y: 213}, {X: 386, Y: 228},
	{X: 290, Y: 287}, {X: 386, Y: 350}, {X: 458, Y: 362}, {X: 534, Y: 353},
}

// Eye maps a cosmetic texture authored against the canonical eye
// geometry onto both detected eyes and blends it into dst. The left
// side reuses the right-side geometry through reflection and mirrors
// the warped texture. dst may alias src.
func Eye(dst, src *pixmap.Pixmap, pts landmark.Sequence, cosmetic *pixmap.Pixmap, amount float64) error {
	if err := validate(dst, src, pts, amount); err != nil {
		return err
	}

	if cosmetic == nil || cosmetic.Format != pixmap.NRGBA8 {
		return fmt.Errorf("%w: eye cosmetic must be nrgba8", pixmap.ErrFormat)
	}

	result := src.Clone()

	refSim := warp.NewSimilarity(referenceEyePoints[0], referenceEyePoints[4])

	for _, right := range []bool{true, false} {
		if err := applyEyeSide(result, pts, cosmetic, refSim, right, amount); err != nil {
			return err
		}
	}

	return commit(dst, result)
}

func applyEyeSide(result *pixmap.Pixmap, pts landmark.Sequence, cosmetic *pixmap.Pixmap,
	refSim warp.Similarity, right bool, amount float64) error {

	detected := landmark.EyeContour(pts, right)
	detSim := warp.NewSimilarity(detected[0], detected[4])

	log.Debugf("eye: %s pivot (%.1f, %.1f), radius %.1f, angle %.2f",
		side(right), detSim.Pivot.X, detSim.Pivot.Y, detSim.Radius, detSim.Angle)

	// Similarity step: rotate and uniformly scale the canonical
	// texture about the canonical pivot.
	m := refSim.TransformTo(detSim)

	warped, err := warp.Affine(cosmetic, m, cosmetic.W, cosmetic.H)

	if err != nil {
		return err
	}

	movedRef := m.ApplyAll(geom.Polygon(referenceEyePoints[:]))
	pivot := m.Apply(refSim.Pivot)

	// Shift the detected contour so both pivots coincide, then absorb
	// the residual shape difference with a local rigid warp.
	offset := geom.Mid(movedRef[0], movedRef[4]).Sub(detSim.Pivot)
	target := geom.Polygon(detected[:]).Translate(offset)

	var rigid warp.Rigid
	rigid.SetMappingPoints(target, movedRef)
	rigid.SetSourceSize(cosmetic.W, cosmetic.H)
	rigid.SetTargetSize(cosmetic.W, cosmetic.H)

	if err := rigid.CalculateDelta(1); err != nil {
		return err
	}

	deformed, err := rigid.GenNewImage(warped, 1)

	if err != nil {
		return err
	}

	if !right {
		// Mirroring a discrete raster: left(0) + right(w-1) == w-1.
		pivot.X = float64(deformed.W-1) - pivot.X
		deformed.FlipH()
	}

	origin := image.Pt(
		int(math.Round(detSim.Pivot.X-pivot.X)),
		int(math.Round(detSim.Pivot.Y-pivot.Y)),
	)

	return blend.Blend(result, result, deformed, origin, amount)
}

// EyeLash packs the lash mask with the given color and applies it as an
// eye cosmetic.
func EyeLash(dst, src *pixmap.Pixmap, pts landmark.Sequence, lashMask *pixmap.Pixmap,
	color pixmap.Color, amount float64) error {

	tile, err := blend.Pack(lashMask, color)

	if err != nil {
		return err
	}

	return Eye(dst, src, pts, tile, amount)
}

func side(right bool) string {
	if right {
		return "right"
	}

	return "left"
}
