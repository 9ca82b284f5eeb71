package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/geom"
)

// testFace returns a synthetic sequence that is symmetric about the
// vertical line x=300.
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

func TestParseStyle(t *testing.T) {
	for _, s := range []Style{StyleDefault, StyleDisk, StyleOval, StyleTriangle, StyleHeart, StyleSeagull} {
		parsed, err := ParseStyle(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseStyle("")
	assert.NoError(t, err)
	assert.Equal(t, StyleDefault, parsed)

	_, err = ParseStyle("sparkle")
	assert.Error(t, err)
}

func TestHeartDeterministic(t *testing.T) {
	a := Heart(geom.Pt(100, 100), 40, 0.3)
	b := Heart(geom.Pt(100, 100), 40, 0.3)

	assert.Equal(t, a, b)
	assert.Len(t, a, heartPointCount)
}

func TestHeartSymmetry(t *testing.T) {
	center := geom.Pt(50, 80)
	heart := Heart(center, 30, 0)

	// At zero rotation the curve mirrors about the vertical through the
	// center: samples at t and 2π-t match.
	for i := 1; i < heartPointCount; i++ {
		p, q := heart[i], heart[heartPointCount-i]

		assert.InDelta(t, center.X-p.X, q.X-center.X, 1e-9)
		assert.InDelta(t, p.Y, q.Y, 1e-9)
	}
}

func TestHeartRotation(t *testing.T) {
	center := geom.Pt(10, 20)
	angle := 0.9

	base := Heart(center, 25, 0)
	rotated := Heart(center, 25, angle)
	m := geom.TransformAbout(center, angle, 1, 1)

	for i := range base {
		want := m.Apply(base[i])

		assert.InDelta(t, want.X, rotated[i].X, 1e-9)
		assert.InDelta(t, want.Y, rotated[i].Y, 1e-9)
	}
}

func TestBlushStyles(t *testing.T) {
	pts := testFace()

	counts := map[Style]int{
		StyleDefault:  7,
		StyleDisk:     diskPointCount,
		StyleOval:     7,
		StyleTriangle: 7,
		StyleHeart:    heartPointCount,
		StyleSeagull:  10,
	}

	for style, want := range counts {
		for _, right := range []bool{true, false} {
			poly, err := Blush(pts, style, right)

			assert.NoError(t, err, style.String())
			assert.Len(t, poly, want, style.String())
		}
	}
}

func TestBlushValidates(t *testing.T) {
	_, err := Blush(landmark.Sequence{geom.Pt(1, 1)}, StyleDefault, true)
	assert.ErrorIs(t, err, landmark.ErrCount)

	_, err = Blush(testFace(), Style(99), true)
	assert.Error(t, err)
}

func TestDiskBlushIsCircle(t *testing.T) {
	pts := testFace()

	poly, err := Blush(pts, StyleDisk, true)
	assert.NoError(t, err)

	// Anchors: outer nostril (260,305) and third jaw point.
	jaw2 := pts[2]
	center := geom.Pt((260+jaw2.X)/2, 305)
	radius := math.Abs(260-jaw2.X) / 2

	for _, p := range poly {
		assert.InDelta(t, radius, geom.Distance(p, center), 1e-9)
	}
}

func TestBlushSidesMirror(t *testing.T) {
	pts := testFace()

	right, err := Blush(pts, StyleDefault, true)
	assert.NoError(t, err)
	left, err := Blush(pts, StyleDefault, false)
	assert.NoError(t, err)

	// The synthetic face is symmetric about x=300, so the cheek
	// polygons mirror each other exactly.
	for i := range right {
		assert.InDelta(t, 600-right[i].X, left[i].X, 1e-9)
		assert.InDelta(t, right[i].Y, left[i].Y, 1e-9)
	}
}

func TestHeartBlushUsesAxis(t *testing.T) {
	pts := testFace()

	poly, err := Blush(pts, StyleHeart, true)
	assert.NoError(t, err)

	// Right cheek heart stays on the right half of the face.
	c, ok := poly.Centroid()
	assert.True(t, ok)
	assert.Less(t, c.X, 300.0)
}
