// Package shape generates the ordered point sequences (polygons and
// parametric curves) that outline each cosmetic region, from landmark
// subsets per style variant.
package shape

import (
	"fmt"
	"math"
	"strings"

	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/geom"
)

// Style selects one of the blush shape variants.
type Style int

const (
	StyleDefault Style = iota
	StyleDisk
	StyleOval
	StyleTriangle
	StyleHeart
	StyleSeagull
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleDefault:
		return "default"
	case StyleDisk:
		return "disk"
	case StyleOval:
		return "oval"
	case StyleTriangle:
		return "triangle"
	case StyleHeart:
		return "heart"
	case StyleSeagull:
		return "seagull"
	}

	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle returns the style matching the given name.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return StyleDefault, nil
	case "disk":
		return StyleDisk, nil
	case "oval":
		return StyleOval, nil
	case "triangle":
		return StyleTriangle, nil
	case "heart":
		return StyleHeart, nil
	case "seagull":
		return StyleSeagull, nil
	}

	return StyleDefault, fmt.Errorf("shape: unknown style %q", name)
}

// blushAnchorIndex lists the mirrored landmark anchors the blush styles
// are calibrated against; row 0 is the right cheek, row 1 the left.
// The columns are: four jawline points, cheekbone, lower eye contour,
// inner and outer nostril. The table is empirically tuned calibration
// data and is kept verbatim.
var blushAnchorIndex = [2][8]int{
	{0, 1, 2, 3, 33, 41, 61, 62},
	{12, 11, 10, 9, 32, 51, 59, 58},
}

// seagullKnotIndex lists the landmark knots the seagull wing sweeps
// through, per side: the eye center followed by four brow-bone points.
// Calibration data, kept verbatim.
var seagullKnotIndex = [2][5]int{
	{42, 22, 23, 24, 25},
	{43, 29, 30, 31, 26},
}

// diskPointCount is the number of samples on the disk style circle.
const diskPointCount = 12

// anchors holds the per-side blush anchor points.
type anchors struct {
	jaw0, jaw1, jaw2, jaw3 geom.Point
	cheekbone              geom.Point
	eyeLow                 geom.Point
	nostrilInner           geom.Point
	nostrilOuter           geom.Point
}

func anchorsFor(pts landmark.Sequence, right bool) anchors {
	row := blushAnchorIndex[1]

	if right {
		row = blushAnchorIndex[0]
	}

	return anchors{
		jaw0:         pts[row[0]],
		jaw1:         pts[row[1]],
		jaw2:         pts[row[2]],
		jaw3:         pts[row[3]],
		cheekbone:    pts[row[4]],
		eyeLow:       pts[row[5]],
		nostrilInner: pts[row[6]],
		nostrilOuter: pts[row[7]],
	}
}

// Blush returns the blush placement polygon for one cheek in the given
// style. The landmark sequence must have the published length.
func Blush(pts landmark.Sequence, style Style, right bool) (geom.Polygon, error) {
	if err := pts.Validate(); err != nil {
		return nil, err
	}

	a := anchorsFor(pts, right)

	switch style {
	case StyleDefault:
		return defaultBlush(pts, a), nil
	case StyleDisk:
		return diskBlush(a), nil
	case StyleOval:
		return ovalBlush(pts, a), nil
	case StyleTriangle:
		return triangleBlush(a), nil
	case StyleHeart:
		return heartBlush(pts, right)
	case StyleSeagull:
		return seagullBlush(pts, a, right), nil
	}

	return nil, fmt.Errorf("shape: unknown style %d", int(style))
}

func defaultBlush(pts landmark.Sequence, a anchors) geom.Polygon {
	return geom.Polygon{
		geom.Lerp(a.jaw0, a.jaw1, 2.0/3),
		a.jaw1,
		geom.Mid(a.jaw1, a.jaw2),
		a.jaw2,
		geom.Pt(a.eyeLow.X, a.nostrilOuter.Y),
		a.nostrilOuter,
		geom.Pt(a.cheekbone.X, a.nostrilInner.Y),
	}
}

func diskBlush(a anchors) geom.Polygon {
	center := geom.Pt((a.nostrilOuter.X+a.jaw2.X)/2, a.nostrilOuter.Y)
	radius := math.Abs(a.nostrilOuter.X-a.jaw2.X) / 2

	circle := make(geom.Polygon, diskPointCount)

	for i := 0; i < diskPointCount; i++ {
		t := float64(i) * (2 * math.Pi / diskPointCount)
		circle[i] = center.Add(geom.Pt(math.Cos(t), math.Sin(t)).Scale(radius))
	}

	return circle
}

func ovalBlush(pts landmark.Sequence, a anchors) geom.Polygon {
	return geom.Polygon{
		geom.Lerp(a.jaw0, a.jaw1, 2.0/3),
		a.jaw1,
		geom.Lerp(a.jaw1, a.jaw2, 1.0/3),
		geom.Lerp(a.jaw1, a.jaw2, 2.0/3),
		geom.Pt(a.cheekbone.X, a.nostrilInner.Y),
		a.nostrilOuter,
		geom.Pt(a.eyeLow.X, pts[landmark.NoseBridgeTop].Y),
	}
}

func triangleBlush(a anchors) geom.Polygon {
	return geom.Polygon{
		geom.Pt(a.cheekbone.X, a.nostrilOuter.Y),
		geom.Mid(a.jaw2, a.jaw3),
		a.jaw2,
		geom.CatmullRom(2.0/3, a.jaw0, a.jaw1, a.jaw2, a.jaw3),
		geom.CatmullRom(1.0/3, a.jaw0, a.jaw1, a.jaw2, a.jaw3),
		a.jaw1,
		geom.Lerp(a.jaw0, a.jaw1, 2.0/3),
	}
}

// heartBlush derives the heart's center, radius, and rotation from the
// asymmetry between the nostril and jaw anchors' distances to the
// face's symmetry axis.
func heartBlush(pts landmark.Sequence, right bool) (geom.Polygon, error) {
	a := anchorsFor(pts, right)

	axis, err := landmark.SymmetryAxis(pts)

	if err != nil {
		return nil, err
	}

	anchor := geom.Lerp(pts[landmark.NoseBridgeTop], pts[landmark.NoseBase], 2.0/3)
	mid := geom.Mid(a.nostrilOuter, a.jaw2)

	radius := math.Abs(geom.DistanceToLine(a.nostrilOuter, axis) - geom.DistanceToLine(a.jaw2, axis))
	d := geom.DistanceToLine(mid, axis)

	// Perpendicular pointing away from the axis toward this cheek. With
	// the axis oriented downward, the subject's right cheek lies toward
	// negative x.
	normal := geom.Pt(axis.DY, -axis.DX)

	if right {
		normal = geom.Pt(-axis.DY, axis.DX)
	}

	center := anchor.Add(normal.Scale(d))
	angle := axis.Angle() - math.Pi/2

	return Heart(center, radius, angle), nil
}

func seagullBlush(pts landmark.Sequence, a anchors, right bool) geom.Polygon {
	knots := seagullKnotIndex[1]
	wingTip := pts[landmark.NoseWingLeft]

	if right {
		knots = seagullKnotIndex[0]
		wingTip = pts[landmark.NoseWingRight]
	}

	// The full symmetry axis fit is not needed here; the nose bridge
	// to nose base segment approximates the downward direction.
	down := pts[landmark.NoseBase].Sub(pts[landmark.NoseBridgeTop]).Normalize()

	seagull := make(geom.Polygon, 10)
	seagull[0] = a.jaw1
	seagull[5] = wingTip

	carriage := pts[knots[0]]

	for i := 1; i < 5; i++ {
		point := pts[knots[i]]
		dot := carriage.Sub(point).Dot(down)

		seagull[i] = point.Add(down.Scale(3 * dot))
		seagull[10-i] = point.Add(down.Scale(2 * dot))
	}

	return seagull
}
