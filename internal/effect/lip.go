package effect

import (
	"fmt"
	"image"

	"github.com/facepaint/facepaint/internal/blend"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/internal/mask"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// lipFeatherLevel softens the lip mask boundary.
const lipFeatherLevel = 2

// Lip blends a uniform-color tile through the lip-shaped mask derived
// from the landmarks. The mouth opening (inner lip ring) stays
// untouched. Lip is single-region; there is no left/right split.
// dst may alias src.
func Lip(dst, src *pixmap.Pixmap, pts landmark.Sequence, color pixmap.Color, amount float64) error {
	if err := validate(dst, src, pts, amount); err != nil {
		return err
	}

	outer, inner := landmark.LipPolygons(pts)

	rect := outer.BoundingRect().Inset(-lipFeatherLevel).Intersect(src.Bounds())

	if rect.Empty() {
		return fmt.Errorf("%w: lip region outside image", mask.ErrEmpty)
	}

	m := mask.FromPolygonSmooth(rect, outer, lipFeatherLevel)

	// Subtract the mouth opening.
	hole := mask.FromPolygon(rect, inner)

	for i, v := range hole.Pix {
		if v >= m.Pix[i] {
			m.Pix[i] = 0
		} else {
			m.Pix[i] -= v
		}
	}

	if _, err := mask.Centroid(m); err != nil {
		return err
	}

	// The tile shares the mask size, so the masked blend's centering
	// offset is zero and origin = pivot - size/2 is the mask rect
	// origin.
	tile := pixmap.New(rect.Dx(), rect.Dy(), pixmap.NRGBA8)

	if err := tile.FillColor(color); err != nil {
		return err
	}

	result := src.Clone()

	if err := blend.BlendMasked(result, src, tile, m, image.Pt(rect.Min.X, rect.Min.Y), amount); err != nil {
		return err
	}

	return commit(dst, result)
}
