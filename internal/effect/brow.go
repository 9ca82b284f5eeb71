package effect

import (
	"fmt"
	"image"
	"math"

	"github.com/facepaint/facepaint/internal/blend"
	"github.com/facepaint/facepaint/internal/inpaint"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/internal/mask"
	"github.com/facepaint/facepaint/internal/warp"
	"github.com/facepaint/facepaint/pkg/geom"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

const (
	// browMaskMargin tolerates imprecise cosmetic brow masks when
	// computing their bounding rectangle.
	browMaskMargin = 4

	// browInpaintMargin widens the restored patch around the brow
	// polygon so the inpainter sees enough exemplar content.
	browInpaintMargin = 8

	// browPatchSize is the exemplar patch radius used when removing
	// the existing brow hair.
	browPatchSize = 4
)

// Brow replaces both eyebrows: the existing brow hair is removed with
// content-aware inpainting, then the cosmetic brow mask is rotated to
// the face's symmetry-axis tilt, scaled to the detected brow size,
// packed with the given color, and blended in. offsetY shifts the
// overlay along the axis slant. dst may alias src.
func Brow(dst, src *pixmap.Pixmap, pts landmark.Sequence, browMask *pixmap.Pixmap,
	color pixmap.Color, amount, offsetY float64) error {

	if err := validate(dst, src, pts, amount); err != nil {
		return err
	}

	if browMask == nil || browMask.Format != pixmap.Gray8 {
		return fmt.Errorf("%w: brow mask must be gray8", pixmap.ErrFormat)
	}

	axis, err := landmark.SymmetryAxis(pts)

	if err != nil {
		return err
	}

	angle := axis.Angle() - math.Pi/2

	makeupRect := mask.BoundingRect(browMask, browMaskMargin)

	if makeupRect.Empty() {
		return fmt.Errorf("%w: brow cosmetic mask has no coverage", mask.ErrEmpty)
	}

	makeupCenter, err := mask.Centroid(browMask)

	if err != nil {
		return err
	}

	// Work in cropped mask coordinates from here on.
	makeup := browMask.Crop(makeupRect)
	center := makeupCenter.Sub(geom.Pt(float64(makeupRect.Min.X), float64(makeupRect.Min.Y)))

	result := src.Clone()

	for _, right := range []bool{true, false} {
		if !right {
			// Mirror the cosmetic for the left side.
			makeup = makeup.Clone()
			makeup.FlipH()
			center.X = float64(makeup.W-1) - center.X
		}

		if err := applyBrowSide(result, pts, makeup, center, axis, angle, right, color, amount, offsetY); err != nil {
			return err
		}
	}

	return commit(dst, result)
}

func applyBrowSide(result *pixmap.Pixmap, pts landmark.Sequence, makeup *pixmap.Pixmap,
	makeupCenter geom.Point, axis geom.Line, angle float64, right bool,
	color pixmap.Color, amount, offsetY float64) error {

	polygon := landmark.BrowPolygon(pts, right)

	polyCenter, ok := polygon.Centroid()

	if !ok {
		return fmt.Errorf("%w: brow polygon has zero area", landmark.ErrDegenerate)
	}

	rect := polygon.BoundingRect().Intersect(result.Bounds())

	if rect.Empty() {
		return fmt.Errorf("%w: brow polygon outside image", mask.ErrEmpty)
	}

	if err := removeBrow(result, polygon, rect); err != nil {
		return err
	}

	// Scale the cosmetic mask onto the detected brow size, tilted to
	// the symmetry-axis angle, and carry its center of mass onto the
	// brow polygon centroid in rect-local coordinates.
	sx := float64(rect.Dx()) / float64(makeup.W)
	sy := float64(rect.Dy()) / float64(makeup.H)

	local := polyCenter.Sub(geom.Pt(float64(rect.Min.X), float64(rect.Min.Y)))

	m := geom.Translation(local.X-makeupCenter.X, local.Y-makeupCenter.Y).
		Mul(geom.TransformAbout(makeupCenter, angle, sx, sy))

	tile, err := blend.Pack(makeup, color)

	if err != nil {
		return err
	}

	warped, err := warp.Affine(tile, m, rect.Dx(), rect.Dy())

	if err != nil {
		return err
	}

	// Move along the axis slant so a vertical offset follows the face
	// tilt.
	translation := geom.Pt(0, offsetY)

	if axis.DY != 0 {
		translation.X = offsetY / axis.DY * axis.DX
	}

	origin := geom.Pt(float64(rect.Min.X), float64(rect.Min.Y)).Add(translation)

	log.Debugf("brow: %s side at (%.1f, %.1f), angle %.3f", side(right), origin.X, origin.Y, angle)

	return blend.Blend(result, result, warped,
		image.Pt(int(math.Round(origin.X)), int(math.Round(origin.Y))), amount)
}

// removeBrow clears the existing brow hair inside the polygon by
// inpainting a widened patch around it and lerping the restored color
// back through the polygon mask. The destination alpha channel stays
// untouched.
func removeBrow(result *pixmap.Pixmap, polygon geom.Polygon, rect image.Rectangle) error {
	margin := rect.Inset(-browInpaintMargin).Intersect(result.Bounds())

	roi := result.Crop(margin)
	roiMask := mask.FromPolygon(margin, polygon)

	var in inpaint.Inpainter
	in.SetSourceImage(roi)
	in.SetSourceMask(mask.Invert(roiMask))
	in.SetTargetMask(roiMask)
	in.SetPatchSize(browPatchSize)

	if err := in.Initialize(); err != nil {
		return err
	}

	steps := 0

	for in.HasMoreSteps() {
		if err := in.Step(); err != nil {
			return err
		}

		steps++
	}

	log.Debugf("brow: restored %dx%d patch in %d steps", margin.Dx(), margin.Dy(), steps)

	restored := in.Image()

	for y := margin.Min.Y; y < margin.Max.Y; y++ {
		for x := margin.Min.X; x < margin.Max.X; x++ {
			localX, localY := x-margin.Min.X, y-margin.Min.Y

			alpha := roiMask.GrayAt(localX, localY)

			if alpha == 0 {
				continue
			}

			sr, sg, sb, _ := restored.RGBA8At(localX, localY)
			dr, dg, db, da := result.RGBA8At(x, y)

			result.SetRGBA8(x, y,
				lerp8(dr, sr, alpha),
				lerp8(dg, sg, alpha),
				lerp8(db, sb, alpha),
				da,
			)
		}
	}

	return nil
}

// lerp8 mixes a toward b by alpha/255 with correct rounding.
func lerp8(a, b, alpha uint8) uint8 {
	return uint8((int(a)*(255-int(alpha)) + int(b)*int(alpha) + 127) / 255)
}
