// Package warp provides the geometric transforms used to transplant a
// cosmetic texture authored against a canonical pose onto a detected
// pose: high-quality affine resampling, similarity descriptors, and a
// rigid point-correspondence deformation.
package warp

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/facepaint/facepaint/pkg/geom"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// Affine warps src through m into a new pixmap of the given size,
// resampling with a Catmull-Rom kernel. Pixels outside the projected
// source stay fully transparent. This is the quality-sensitive path
// used for cosmetic textures; only NRGBA8 is supported.
func Affine(src *pixmap.Pixmap, m geom.Affine, width, height int) (*pixmap.Pixmap, error) {
	if src.Format != pixmap.NRGBA8 {
		return nil, fmt.Errorf("%w: affine warp supports nrgba8 only, got %s", pixmap.ErrFormat, src.Format)
	}

	srcImg := src.Image().(*image.NRGBA)
	dstImg := image.NewNRGBA(image.Rect(0, 0, width, height))

	xdraw.CatmullRom.Transform(dstImg, m.Aff3(), srcImg, srcImg.Bounds(), xdraw.Src, nil)

	return pixmap.FromImage(dstImg), nil
}
