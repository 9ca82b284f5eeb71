// Package pixmap provides the in-memory image buffers the compositing
// engine operates on: single-channel opacity masks, 8-bit color images
// with alpha, and float color images with and without alpha.
package pixmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Format identifies the pixel layout of a Pixmap.
type Format int

const (
	// Gray8 is a single-channel 8-bit opacity mask.
	Gray8 Format = iota + 1
	// NRGBA8 is a 4-channel 8-bit color image with non-premultiplied alpha.
	NRGBA8
	// RGBF32 is a 3-channel float32 color image.
	RGBF32
	// NRGBAF32 is a 4-channel float32 color image with alpha.
	NRGBAF32
)

// ErrFormat is returned when a pixel format or format combination is not
// among the supported set for an operation.
var ErrFormat = errors.New("pixmap: unsupported pixel format")

// Channels returns the number of channels per pixel.
func (f Format) Channels() int {
	switch f {
	case Gray8:
		return 1
	case RGBF32:
		return 3
	case NRGBA8, NRGBAF32:
		return 4
	}

	return 0
}

// Float reports whether channel values are stored as float32.
func (f Format) Float() bool {
	return f == RGBF32 || f == NRGBAF32
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case Gray8:
		return "gray8"
	case NRGBA8:
		return "nrgba8"
	case RGBF32:
		return "rgbf32"
	case NRGBAF32:
		return "nrgbaf32"
	}

	return fmt.Sprintf("format(%d)", int(f))
}

// Pixmap is a rectangular pixel buffer. Dimensions and format are fixed
// after creation. Exactly one of Pix and PixF is non-nil, depending on
// whether the format stores 8-bit or float32 channels.
type Pixmap struct {
	W, H   int
	Format Format

	// Pix holds channel values for 8-bit formats, row-major.
	Pix []uint8
	// PixF holds channel values for float formats, row-major.
	PixF []float32
}

// New allocates a zeroed pixmap of the given size and format.
func New(w, h int, f Format) *Pixmap {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("pixmap: invalid size %dx%d", w, h))
	}

	p := &Pixmap{W: w, H: h, Format: f}

	n := w * h * f.Channels()

	if f.Float() {
		p.PixF = make([]float32, n)
	} else {
		p.Pix = make([]uint8, n)
	}

	return p
}

// Bounds returns the pixmap rectangle anchored at the origin.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.W, p.H)
}

// Size returns the pixmap dimensions as a point.
func (p *Pixmap) Size() image.Point {
	return image.Pt(p.W, p.H)
}

// Empty reports whether the pixmap has no pixels.
func (p *Pixmap) Empty() bool {
	return p == nil || p.W <= 0 || p.H <= 0
}

// SameFormat reports whether both pixmaps share format and channel count.
func (p *Pixmap) SameFormat(q *Pixmap) bool {
	return p != nil && q != nil && p.Format == q.Format
}

// Aliases reports whether both pixmaps share the same backing store.
func (p *Pixmap) Aliases(q *Pixmap) bool {
	if p == nil || q == nil {
		return false
	}

	if len(p.Pix) > 0 && len(q.Pix) > 0 {
		return &p.Pix[0] == &q.Pix[0]
	}

	if len(p.PixF) > 0 && len(q.PixF) > 0 {
		return &p.PixF[0] == &q.PixF[0]
	}

	return false
}

// Clone returns a deep copy.
func (p *Pixmap) Clone() *Pixmap {
	q := &Pixmap{W: p.W, H: p.H, Format: p.Format}

	if p.PixF != nil {
		q.PixF = make([]float32, len(p.PixF))
		copy(q.PixF, p.PixF)
	} else {
		q.Pix = make([]uint8, len(p.Pix))
		copy(q.Pix, p.Pix)
	}

	return q
}

// CopyFrom overwrites the pixmap contents with those of q.
// Both pixmaps must share size and format.
func (p *Pixmap) CopyFrom(q *Pixmap) error {
	if p.W != q.W || p.H != q.H || p.Format != q.Format {
		return fmt.Errorf("%w: copy %s %dx%d from %s %dx%d", ErrFormat,
			p.Format, p.W, p.H, q.Format, q.W, q.H)
	}

	if p.Aliases(q) {
		return nil
	}

	copy(p.Pix, q.Pix)
	copy(p.PixF, q.PixF)

	return nil
}

// index returns the offset of the first channel of pixel (x, y).
func (p *Pixmap) index(x, y int) int {
	return (y*p.W + x) * p.Format.Channels()
}

// GrayAt returns the opacity value at (x, y) of a Gray8 pixmap.
func (p *Pixmap) GrayAt(x, y int) uint8 {
	return p.Pix[y*p.W+x]
}

// SetGray sets the opacity value at (x, y) of a Gray8 pixmap.
func (p *Pixmap) SetGray(x, y int, v uint8) {
	p.Pix[y*p.W+x] = v
}

// RGBA8At returns the channel values at (x, y) of an NRGBA8 pixmap.
func (p *Pixmap) RGBA8At(x, y int) (r, g, b, a uint8) {
	i := p.index(x, y)
	return p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
}

// SetRGBA8 sets the channel values at (x, y) of an NRGBA8 pixmap.
func (p *Pixmap) SetRGBA8(x, y int, r, g, b, a uint8) {
	i := p.index(x, y)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = r, g, b, a
}

// FloatAt returns channel ch at (x, y) of a float pixmap.
func (p *Pixmap) FloatAt(x, y, ch int) float32 {
	return p.PixF[p.index(x, y)+ch]
}

// SetFloat sets channel ch at (x, y) of a float pixmap.
func (p *Pixmap) SetFloat(x, y, ch int, v float32) {
	p.PixF[p.index(x, y)+ch] = v
}

// Fill sets every channel of every pixel to the given 8-bit value.
func (p *Pixmap) Fill(v uint8) {
	if p.Format.Float() {
		f := float32(v) / 255
		for i := range p.PixF {
			p.PixF[i] = f
		}
		return
	}

	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// FillColor sets every pixel of an NRGBA8 pixmap to the given color.
func (p *Pixmap) FillColor(c Color) error {
	if p.Format != NRGBA8 {
		return fmt.Errorf("%w: fill color on %s", ErrFormat, p.Format)
	}

	r, g, b, a := c.R(), c.G(), c.B(), c.A()

	for i := 0; i < len(p.Pix); i += 4 {
		p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = r, g, b, a
	}

	return nil
}

// FlipH mirrors the pixmap horizontally in place.
func (p *Pixmap) FlipH() {
	ch := p.Format.Channels()

	for y := 0; y < p.H; y++ {
		row := y * p.W * ch
		for x0, x1 := 0, p.W-1; x0 < x1; x0, x1 = x0+1, x1-1 {
			i0, i1 := row+x0*ch, row+x1*ch
			for c := 0; c < ch; c++ {
				if p.Format.Float() {
					p.PixF[i0+c], p.PixF[i1+c] = p.PixF[i1+c], p.PixF[i0+c]
				} else {
					p.Pix[i0+c], p.Pix[i1+c] = p.Pix[i1+c], p.Pix[i0+c]
				}
			}
		}
	}
}

// Crop returns a copy of the given region. The rectangle is clipped to
// the pixmap bounds.
func (p *Pixmap) Crop(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.Bounds())

	out := New(r.Dx(), r.Dy(), p.Format)
	ch := p.Format.Channels()

	for y := 0; y < out.H; y++ {
		srcOff := ((r.Min.Y+y)*p.W + r.Min.X) * ch
		dstOff := y * out.W * ch

		if p.Format.Float() {
			copy(out.PixF[dstOff:dstOff+out.W*ch], p.PixF[srcOff:srcOff+out.W*ch])
		} else {
			copy(out.Pix[dstOff:dstOff+out.W*ch], p.Pix[srcOff:srcOff+out.W*ch])
		}
	}

	return out
}

// FromImage converts a stdlib image to an NRGBA8 pixmap.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := New(b.Dx(), b.Dy(), NRGBA8)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < p.H; y++ {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+p.W*4]
			copy(p.Pix[y*p.W*4:], src)
		}
		return p
	}

	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p.SetRGBA8(x, y, c.R, c.G, c.B, c.A)
		}
	}

	return p
}

// FromGray converts a stdlib grayscale image to a Gray8 pixmap.
func FromGray(img *image.Gray) *Pixmap {
	b := img.Bounds()
	p := New(b.Dx(), b.Dy(), Gray8)

	for y := 0; y < p.H; y++ {
		copy(p.Pix[y*p.W:], img.Pix[y*img.Stride:y*img.Stride+p.W])
	}

	return p
}

// Image converts the pixmap to a stdlib image. Float formats are
// clamped to 8 bits.
func (p *Pixmap) Image() image.Image {
	switch p.Format {
	case Gray8:
		img := image.NewGray(p.Bounds())
		for y := 0; y < p.H; y++ {
			copy(img.Pix[y*img.Stride:], p.Pix[y*p.W:(y+1)*p.W])
		}
		return img
	case NRGBA8:
		img := image.NewNRGBA(p.Bounds())
		for y := 0; y < p.H; y++ {
			copy(img.Pix[y*img.Stride:], p.Pix[y*p.W*4:(y+1)*p.W*4])
		}
		return img
	default:
		img := image.NewNRGBA(p.Bounds())
		ch := p.Format.Channels()
		for y := 0; y < p.H; y++ {
			for x := 0; x < p.W; x++ {
				i := p.index(x, y)
				c := color.NRGBA{
					R: clamp8(p.PixF[i] * 255),
					G: clamp8(p.PixF[i+1] * 255),
					B: clamp8(p.PixF[i+2] * 255),
					A: 255,
				}
				if ch == 4 {
					c.A = clamp8(p.PixF[i+3] * 255)
				}
				img.SetNRGBA(x, y, c)
			}
		}
		return img
	}
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}

	if v >= 255 {
		return 255
	}

	return uint8(v + 0.5)
}
