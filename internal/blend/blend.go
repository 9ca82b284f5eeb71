// Package blend implements the engine's compositing primitives: packing
// an opacity mask with a color into an image tile, and blending a
// source tile into a destination image over a rectangle or through an
// auxiliary mask.
package blend

import (
	"errors"
	"fmt"
	"image"

	"github.com/facepaint/facepaint/pkg/pixmap"
)

// ErrAmount is returned when a blend amount lies outside [0, 1].
var ErrAmount = errors.New("blend: amount out of range")

// Pack turns a single-channel opacity mask plus a packed color into a
// 4-channel tile: every pixel carries the color's RGB and an alpha of
// round(color.A * mask / 255). A zero mask sample yields a fully
// transparent pixel regardless of color.
func Pack(mask *pixmap.Pixmap, color pixmap.Color) (*pixmap.Pixmap, error) {
	if mask.Format != pixmap.Gray8 {
		return nil, fmt.Errorf("%w: pack mask must be gray8, got %s", pixmap.ErrFormat, mask.Format)
	}

	out := pixmap.New(mask.W, mask.H, pixmap.NRGBA8)

	r, g, b := color.R(), color.G(), color.B()
	a := uint32(color.A())

	parallelRows(mask.H, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < mask.W; x++ {
				alpha := uint8((a*uint32(mask.GrayAt(x, y)) + 127) / 255)
				out.SetRGBA8(x, y, r, g, b, alpha)
			}
		}
	})

	return out, nil
}

// Blend writes dst blended with src into result over the intersection
// of dst's bounds and src placed at origin, per channel:
//
//	result = dst*(1-amount) + src*amount
//
// Pixels outside the intersection keep dst's value. result may alias
// dst, in which case the initial copy is skipped; otherwise result
// must match dst in size and format. Supported formats: NRGBA8 and
// NRGBAF32, identical for src and dst.
func Blend(result, dst, src *pixmap.Pixmap, origin image.Point, amount float64) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	if !dst.SameFormat(src) {
		return fmt.Errorf("%w: blend %s onto %s", pixmap.ErrFormat, src.Format, dst.Format)
	}

	if dst.Format != pixmap.NRGBA8 && dst.Format != pixmap.NRGBAF32 {
		return fmt.Errorf("%w: blend does not support %s", pixmap.ErrFormat, dst.Format)
	}

	if !result.Aliases(dst) {
		if err := result.CopyFrom(dst); err != nil {
			return err
		}
	}

	rect := dst.Bounds().Intersect(src.Bounds().Add(origin))

	if rect.Empty() {
		return nil
	}

	if dst.Format == pixmap.NRGBA8 {
		parallelRows(rect.Dy(), func(y0, y1 int) {
			for y := rect.Min.Y + y0; y < rect.Min.Y+y1; y++ {
				for x := rect.Min.X; x < rect.Max.X; x++ {
					si := ((y-origin.Y)*src.W + (x - origin.X)) * 4
					di := (y*result.W + x) * 4
					for c := 0; c < 4; c++ {
						result.Pix[di+c] = mix8(dst.Pix[di+c], src.Pix[si+c], amount)
					}
				}
			}
		})

		return nil
	}

	parallelRows(rect.Dy(), func(y0, y1 int) {
		for y := rect.Min.Y + y0; y < rect.Min.Y+y1; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				si := ((y-origin.Y)*src.W + (x - origin.X)) * 4
				di := (y*result.W + x) * 4
				for c := 0; c < 4; c++ {
					result.PixF[di+c] = mixf(dst.PixF[di+c], src.PixF[si+c], amount)
				}
			}
		}
	})

	return nil
}

// BlendMasked blends like Blend but resolves an additional opacity
// sample per pixel: the mask is centered under src with offset
// (src.size - mask.size)/2, and a pixel whose mask sample falls outside
// the mask bounds or is zero keeps dst's original value. Supported
// formats: NRGBA8, RGBF32, and NRGBAF32, identical for src and dst; the
// mask must be Gray8.
func BlendMasked(result, dst, src, mask *pixmap.Pixmap, origin image.Point, amount float64) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	if !dst.SameFormat(src) {
		return fmt.Errorf("%w: blend %s onto %s", pixmap.ErrFormat, src.Format, dst.Format)
	}

	if mask.Format != pixmap.Gray8 {
		return fmt.Errorf("%w: blend mask must be gray8, got %s", pixmap.ErrFormat, mask.Format)
	}

	switch dst.Format {
	case pixmap.NRGBA8, pixmap.RGBF32, pixmap.NRGBAF32:
	default:
		return fmt.Errorf("%w: masked blend does not support %s", pixmap.ErrFormat, dst.Format)
	}

	if !result.Aliases(dst) {
		if err := result.CopyFrom(dst); err != nil {
			return err
		}
	}

	rect := dst.Bounds().Intersect(src.Bounds().Add(origin))

	if rect.Empty() {
		return nil
	}

	offsetX := (src.W - mask.W) / 2
	offsetY := (src.H - mask.H) / 2
	channels := dst.Format.Channels()
	isFloat := dst.Format.Float()

	parallelRows(rect.Dy(), func(y0, y1 int) {
		for y := rect.Min.Y + y0; y < rect.Min.Y+y1; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				srcX, srcY := x-origin.X, y-origin.Y
				maskX, maskY := srcX-offsetX, srcY-offsetY

				if maskX < 0 || maskX >= mask.W || maskY < 0 || maskY >= mask.H {
					continue
				}

				if mask.GrayAt(maskX, maskY) == 0 {
					continue
				}

				si := (srcY*src.W + srcX) * channels
				di := (y*result.W + x) * channels

				for c := 0; c < channels; c++ {
					if isFloat {
						result.PixF[di+c] = mixf(dst.PixF[di+c], src.PixF[si+c], amount)
					} else {
						result.Pix[di+c] = mix8(dst.Pix[di+c], src.Pix[si+c], amount)
					}
				}
			}
		}
	})

	return nil
}

func checkAmount(amount float64) error {
	if amount < 0 || amount > 1 {
		return fmt.Errorf("%w: %g", ErrAmount, amount)
	}

	return nil
}

// mix8 linearly interpolates 8-bit channel values with correct
// rounding.
func mix8(dst, src uint8, amount float64) uint8 {
	return uint8(float64(dst) + (float64(src)-float64(dst))*amount + 0.5)
}

// mixf linearly interpolates float channel values without rounding.
func mixf(dst, src float32, amount float64) float32 {
	return dst + (src-dst)*float32(amount)
}
