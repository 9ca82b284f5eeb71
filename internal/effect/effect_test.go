package effect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facepaint/facepaint/internal/blend"
	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/geom"
	"github.com/facepaint/facepaint/pkg/pixmap"
)

// testFace returns a synthetic sequence that is symmetric about the
// vertical line x=300, sized for a 600x500 image.
func testFace() landmark.Sequence {
	pts := make(landmark.Sequence, landmark.Count)

	for i := 0; i <= 12; i++ {
		t := math.Pi * float64(i) / 12
		pts[i] = geom.Pt(300-180*math.Cos(t), 260+180*math.Sin(t))
	}

	for i := 0; i < 7; i++ {
		pts[13+i] = geom.Pt(180+float64(i)*40, 60)
	}

	browY := []float64{185, 178, 174, 174, 178, 185}

	for i := 0; i < 6; i++ {
		x := 150 + float64(i)*20
		pts[landmark.BrowRightFirst+i] = geom.Pt(x, browY[i])
		pts[landmark.BrowLeftFirst+i] = geom.Pt(600-x, browY[i])
	}

	pts[landmark.CheekboneRight] = geom.Pt(160, 250)
	pts[landmark.CheekboneLeft] = geom.Pt(440, 250)

	rightEye := []geom.Point{
		{X: 260, Y: 210}, {X: 235, Y: 195}, {X: 210, Y: 190}, {X: 185, Y: 195},
		{X: 160, Y: 210}, {X: 185, Y: 222}, {X: 210, Y: 225}, {X: 235, Y: 222},
	}

	for i, p := range rightEye {
		pts[landmark.EyeRightFirst+i] = p
		pts[landmark.EyeLeftFirst+i] = geom.Pt(600-p.X, p.Y)
	}

	pts[landmark.EyeRightCenter] = geom.Pt(210, 210)
	pts[landmark.EyeLeftCenter] = geom.Pt(390, 210)

	pts[52] = geom.Pt(330, 300)
	pts[landmark.NoseBridgeTop] = geom.Pt(300, 200)
	pts[54] = geom.Pt(270, 300)
	pts[55] = geom.Pt(300, 250)
	pts[landmark.NoseBase] = geom.Pt(300, 310)
	pts[57] = geom.Pt(300, 320)

	pts[58] = geom.Pt(340, 305)
	pts[59] = geom.Pt(320, 310)
	pts[60] = geom.Pt(300, 312)
	pts[61] = geom.Pt(280, 310)
	pts[62] = geom.Pt(260, 305)

	for i := 0; i < 12; i++ {
		t := 2 * math.Pi * float64(i) / 12
		pts[landmark.LipOuterFirst+i] = geom.Pt(300+60*math.Cos(t), 370+25*math.Sin(t))
	}

	for i := 0; i < 6; i++ {
		t := 2 * math.Pi * float64(i) / 6
		pts[landmark.LipInnerFirst+i] = geom.Pt(300+35*math.Cos(t), 370+10*math.Sin(t))
	}

	return pts
}

// skin returns an opaque uniform face image.
func skin(w, h int) *pixmap.Pixmap {
	p := pixmap.New(w, h, pixmap.NRGBA8)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.SetRGBA8(x, y, 200, 164, 140, 255)
		}
	}

	return p
}

func TestValidate(t *testing.T) {
	src := skin(32, 32)
	pts := testFace()

	assert.Error(t, validate(nil, src, pts, 0.5))
	assert.Error(t, validate(src, nil, pts, 0.5))
	assert.Error(t, validate(src.Clone(), pixmap.New(32, 32, pixmap.Gray8), pts, 0.5))
	assert.Error(t, validate(pixmap.New(16, 16, pixmap.NRGBA8), src, pts, 0.5))
	assert.ErrorIs(t, validate(src.Clone(), src, landmark.Sequence{}, 0.5), landmark.ErrCount)
	assert.ErrorIs(t, validate(src.Clone(), src, pts, 1.5), blend.ErrAmount)
	assert.NoError(t, validate(src.Clone(), src, pts, 0.5))
}

func TestCreateEyeShadowSingleLayer(t *testing.T) {
	var masks [ShadowLayers]*pixmap.Pixmap
	var colors [ShadowLayers]pixmap.Color

	for i := range masks {
		masks[i] = pixmap.New(4, 4, pixmap.Gray8)
		colors[i] = pixmap.NewColor(0, 0, 255, 255)
	}

	// Only the first layer carries coverage; the fusion reduces to its
	// color and mask.
	masks[0].SetGray(1, 1, 200)
	colors[0] = pixmap.NewColor(120, 40, 40, 255)

	tile, err := CreateEyeShadow(masks, colors)
	assert.NoError(t, err)

	r, g, b, a := tile.RGBA8At(1, 1)
	assert.Equal(t, [4]uint8{120, 40, 40, 200}, [4]uint8{r, g, b, a})

	// Pixels with no coverage anywhere stay fully transparent.
	_, _, _, a = tile.RGBA8At(0, 0)
	assert.Equal(t, uint8(0), a)
}

func TestCreateEyeShadowIdenticalLayers(t *testing.T) {
	var masks [ShadowLayers]*pixmap.Pixmap
	var colors [ShadowLayers]pixmap.Color

	for i := range masks {
		m := pixmap.New(2, 2, pixmap.Gray8)
		m.SetGray(0, 0, 90)
		m.SetGray(1, 1, 255)

		masks[i] = m
		colors[i] = pixmap.NewColor(200, 80, 40, 255)
	}

	tile, err := CreateEyeShadow(masks, colors)
	assert.NoError(t, err)

	// Identical layers collapse to a single-layer pack: the alpha is the
	// mask value, not tripled, and the color is unchanged.
	r, g, b, a := tile.RGBA8At(0, 0)
	assert.Equal(t, [4]uint8{200, 80, 40, 90}, [4]uint8{r, g, b, a})

	_, _, _, a = tile.RGBA8At(1, 1)
	assert.Equal(t, uint8(255), a)
}

func TestCreateEyeShadowFusion(t *testing.T) {
	var masks [ShadowLayers]*pixmap.Pixmap

	for i := range masks {
		masks[i] = pixmap.New(1, 1, pixmap.Gray8)
	}

	masks[0].SetGray(0, 0, 100)
	masks[1].SetGray(0, 0, 200)
	masks[2].SetGray(0, 0, 50)

	colors := [ShadowLayers]pixmap.Color{
		pixmap.NewColor(255, 0, 0, 255),
		pixmap.NewColor(0, 255, 0, 255),
		pixmap.NewColor(0, 0, 255, 255),
	}

	tile, err := CreateEyeShadow(masks, colors)
	assert.NoError(t, err)

	r, g, b, a := tile.RGBA8At(0, 0)

	// Alpha is the layer maximum, the color the coverage-weighted
	// average.
	assert.Equal(t, uint8(200), a)
	assert.Equal(t, uint8(255*100/350), r)
	assert.Equal(t, uint8(255*200/350), g)
	assert.Equal(t, uint8(255*50/350), b)
}

func TestCreateEyeShadowErrors(t *testing.T) {
	var masks [ShadowLayers]*pixmap.Pixmap
	var colors [ShadowLayers]pixmap.Color

	masks[0] = pixmap.New(4, 4, pixmap.Gray8)
	masks[1] = pixmap.New(4, 4, pixmap.Gray8)
	masks[2] = pixmap.New(2, 2, pixmap.Gray8)

	_, err := CreateEyeShadow(masks, colors)
	assert.Error(t, err)

	masks[2] = pixmap.New(4, 4, pixmap.NRGBA8)
	_, err = CreateEyeShadow(masks, colors)
	assert.ErrorIs(t, err, pixmap.ErrFormat)
}

// identityEyeFace builds a landmark sequence whose right eye matches the
// canonical texture geometry exactly and whose left eye mirrors it about
// x=1200, far enough away that the two deposits cannot overlap.
func identityEyeFace() landmark.Sequence {
	pts := make(landmark.Sequence, landmark.Count)

	for i := range pts {
		pts[i] = geom.Pt(float64(1100+i), 600)
	}

	for i, p := range referenceEyePoints {
		pts[landmark.EyeRightFirst+i] = p
		pts[landmark.EyeLeftFirst+i] = geom.Pt(2400-p.X, p.Y)
	}

	return pts
}

func TestEyeIdentityPose(t *testing.T) {
	pts := identityEyeFace()

	src := skin(2500, 700)

	// Opaque marker square centered on the canonical pivot (461.5, 287).
	cosmetic := pixmap.New(640, 400, pixmap.NRGBA8)

	for y := 277; y <= 297; y++ {
		for x := 451; x <= 471; x++ {
			cosmetic.SetRGBA8(x, y, 255, 0, 0, 255)
		}
	}

	dst := src.Clone()
	assert.NoError(t, Eye(dst, src, pts, cosmetic, 1))

	// With the detected geometry equal to the canonical geometry the
	// texture lands unmoved: the marker sits at the detected pivot.
	r, g, b, a := dst.RGBA8At(461, 287)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, [4]uint8{r, g, b, a})

	r, _, _, _ = dst.RGBA8At(455, 280)
	assert.Equal(t, uint8(255), r)

	// The left eye receives the mirrored deposit around its own pivot.
	r, g, b, a = dst.RGBA8At(1938, 287)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, [4]uint8{r, g, b, a})

	// The source image is left untouched.
	r, _, _, _ = src.RGBA8At(461, 287)
	assert.Equal(t, uint8(200), r)
}

func TestEyeRejectsCosmetic(t *testing.T) {
	pts := identityEyeFace()
	src := skin(64, 64)
	dst := src.Clone()

	assert.ErrorIs(t, Eye(dst, src, pts, pixmap.New(4, 4, pixmap.Gray8), 1), pixmap.ErrFormat)
	assert.Error(t, Eye(dst, src, pts, nil, 1))

	// Failed runs leave the destination untouched.
	assert.Equal(t, src.Pix, dst.Pix)
}

func TestEyeLash(t *testing.T) {
	pts := identityEyeFace()
	src := skin(2500, 700)

	lash := pixmap.New(640, 400, pixmap.Gray8)

	for y := 277; y <= 297; y++ {
		for x := 451; x <= 471; x++ {
			lash.SetGray(x, y, 255)
		}
	}

	dst := src.Clone()
	assert.NoError(t, EyeLash(dst, src, pts, lash, pixmap.NewColor(10, 10, 10, 255), 1))

	r, g, b, _ := dst.RGBA8At(461, 287)
	assert.Equal(t, [3]uint8{10, 10, 10}, [3]uint8{r, g, b})
}
