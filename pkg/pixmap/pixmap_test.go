package pixmap

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, 1, Gray8.Channels())
	assert.Equal(t, 4, NRGBA8.Channels())
	assert.Equal(t, 3, RGBF32.Channels())
	assert.Equal(t, 4, NRGBAF32.Channels())

	assert.False(t, Gray8.Float())
	assert.False(t, NRGBA8.Float())
	assert.True(t, RGBF32.Float())
	assert.True(t, NRGBAF32.Float())
}

func TestNew(t *testing.T) {
	p := New(4, 3, NRGBA8)
	assert.Len(t, p.Pix, 4*3*4)
	assert.Nil(t, p.PixF)

	f := New(4, 3, RGBF32)
	assert.Len(t, f.PixF, 4*3*3)
	assert.Nil(t, f.Pix)

	assert.Equal(t, image.Rect(0, 0, 4, 3), p.Bounds())
}

func TestCloneAndAliases(t *testing.T) {
	p := New(2, 2, Gray8)
	p.SetGray(1, 1, 200)

	q := p.Clone()
	assert.False(t, p.Aliases(q))
	assert.Equal(t, uint8(200), q.GrayAt(1, 1))

	q.SetGray(1, 1, 10)
	assert.Equal(t, uint8(200), p.GrayAt(1, 1))

	assert.True(t, p.Aliases(p))
}

func TestCopyFrom(t *testing.T) {
	p := New(2, 2, NRGBA8)
	q := New(2, 2, NRGBA8)
	q.SetRGBA8(0, 1, 1, 2, 3, 4)

	assert.NoError(t, p.CopyFrom(q))

	r, g, b, a := p.RGBA8At(0, 1)
	assert.Equal(t, [4]uint8{1, 2, 3, 4}, [4]uint8{r, g, b, a})

	bad := New(3, 2, NRGBA8)
	assert.ErrorIs(t, p.CopyFrom(bad), ErrFormat)

	gray := New(2, 2, Gray8)
	assert.ErrorIs(t, p.CopyFrom(gray), ErrFormat)
}

func TestCrop(t *testing.T) {
	p := New(4, 4, Gray8)
	p.SetGray(2, 1, 99)

	c := p.Crop(image.Rect(1, 1, 4, 3))
	assert.Equal(t, 3, c.W)
	assert.Equal(t, 2, c.H)
	assert.Equal(t, uint8(99), c.GrayAt(1, 0))

	clipped := p.Crop(image.Rect(2, 2, 10, 10))
	assert.Equal(t, 2, clipped.W)
	assert.Equal(t, 2, clipped.H)
}

func TestFlipH(t *testing.T) {
	p := New(3, 1, NRGBA8)
	p.SetRGBA8(0, 0, 10, 0, 0, 255)
	p.SetRGBA8(2, 0, 30, 0, 0, 255)

	p.FlipH()

	r, _, _, _ := p.RGBA8At(0, 0)
	assert.Equal(t, uint8(30), r)
	r, _, _, _ = p.RGBA8At(2, 0)
	assert.Equal(t, uint8(10), r)
}

func TestImageRoundTrip(t *testing.T) {
	p := New(3, 2, NRGBA8)
	p.SetRGBA8(1, 1, 12, 34, 56, 78)

	q := FromImage(p.Image())

	assert.Equal(t, p.Pix, q.Pix)
}

func TestFillColor(t *testing.T) {
	p := New(2, 1, NRGBA8)
	assert.NoError(t, p.FillColor(NewColor(1, 2, 3, 4)))

	r, g, b, a := p.RGBA8At(1, 0)
	assert.Equal(t, [4]uint8{1, 2, 3, 4}, [4]uint8{r, g, b, a})

	gray := New(2, 1, Gray8)
	assert.ErrorIs(t, gray.FillColor(NewColor(1, 2, 3, 4)), ErrFormat)
}
