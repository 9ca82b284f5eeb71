package effect

import (
	"github.com/facepaint/facepaint/internal/blend"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/internal/mask"
	"github.com/facepaint/facepaint/internal/shape"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// blushFeatherLevel is the edge feathering radius of the blush mask.
const blushFeatherLevel = 8

// Blush draws a colored blush of the given style onto both cheeks.
// Each side is processed independently: style polygon, feathered mask,
// packed color tile, rectangular blend. dst may alias src.
func Blush(dst, src *pixmap.Pixmap, pts landmark.Sequence, style shape.Style,
	color pixmap.Color, amount float64) error {

	if err := validate(dst, src, pts, amount); err != nil {
		return err
	}

	result := src.Clone()

	for _, right := range []bool{true, false} {
		polygon, err := shape.Blush(pts, style, right)

		if err != nil {
			return err
		}

		rect := polygon.BoundingRect()

		m := mask.FromPolygonSmooth(rect, polygon, blushFeatherLevel)

		tile, err := blend.Pack(m, color)

		if err != nil {
			return err
		}

		if err := blend.Blend(result, result, tile, rect.Min, amount); err != nil {
			return err
		}

		log.Debugf("blush: %s cheek, style %s, rect %v", side(right), style, rect)
	}

	return commit(dst, result)
}
