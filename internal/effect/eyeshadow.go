package effect

import (
	"fmt"

	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// ShadowLayers is the number of pigment layers an eyeshadow cosmetic
// is composed of.
const ShadowLayers = 3

// CreateEyeShadow fuses three (mask, color) pigment layers into one
// tile: per pixel, the color is the alpha-weighted average of the layer
// colors and the alpha is the maximum of the three mask samples. The
// max-alpha rule keeps overlapping layers from compounding into an
// opaque blot while the weighted average preserves the layered pigment
// look.
func CreateEyeShadow(masks [ShadowLayers]*pixmap.Pixmap, colors [ShadowLayers]pixmap.Color) (*pixmap.Pixmap, error) {
	for i, m := range masks {
		if m == nil || m.Format != pixmap.Gray8 {
			return nil, fmt.Errorf("%w: shadow mask %d must be gray8", pixmap.ErrFormat, i)
		}

		if m.W != masks[0].W || m.H != masks[0].H {
			return nil, fmt.Errorf("effect: shadow mask %d size %dx%d does not match %dx%d",
				i, m.W, m.H, masks[0].W, masks[0].H)
		}
	}

	w, h := masks[0].W, masks[0].H
	out := pixmap.New(w, h, pixmap.NRGBA8)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, sum, maxAlpha int

			for i := 0; i < ShadowLayers; i++ {
				alpha := int(masks[i].GrayAt(x, y))

				r += int(colors[i].R()) * alpha
				g += int(colors[i].G()) * alpha
				b += int(colors[i].B()) * alpha
				sum += alpha

				if alpha > maxAlpha {
					maxAlpha = alpha
				}
			}

			if sum != 0 {
				r, g, b = r/sum, g/sum, b/sum
			}

			out.SetRGBA8(x, y, uint8(r), uint8(g), uint8(b), uint8(maxAlpha))
		}
	}

	return out, nil
}

// EyeShadow fuses the three pigment layers and applies the result as an
// eye cosmetic.
func EyeShadow(dst, src *pixmap.Pixmap, pts landmark.Sequence,
	masks [ShadowLayers]*pixmap.Pixmap, colors [ShadowLayers]pixmap.Color, amount float64) error {

	tile, err := CreateEyeShadow(masks, colors)

	if err != nil {
		return err
	}

	return Eye(dst, src, pts, tile, amount)
}
