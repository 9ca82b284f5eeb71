// Package landmark publishes the facial landmark contract shared with
// the upstream detector: the fixed sequence length, named indices, and
// geometry derived from the full point set.
package landmark

import (
	"errors"
	"fmt"

	"github.com/facepaint/facepaint/pkg/geom"
)

// Count is the published length of a landmark sequence. Index meaning
// is a versioned contract with the upstream detector.
const Count = 81

// Named landmark indices. The sequence is laid out as follows: jawline
// right to left (0-12, chin tip at 6), hairline (13-19), right brow
// (20-25), left brow (26-31), cheekbones (32 left, 33 right), right eye
// contour (34-41) with center 42, left eye contour (44-51) with center
// 43, nose (52-57, bridge top 53, base 56), nostril arc (58-62), and
// lips (63-80, outer ring 63-74, inner ring 75-80).
const (
	JawRight = 0
	ChinTip  = 6
	JawLeft  = 12

	BrowRightFirst = 20
	BrowRightLast  = 25
	BrowLeftFirst  = 26
	BrowLeftLast   = 31

	CheekboneLeft  = 32
	CheekboneRight = 33

	EyeRightFirst  = 34
	EyeRightInner  = 34
	EyeRightOuter  = 38
	EyeRightCenter = 42
	EyeLeftCenter  = 43
	EyeLeftFirst   = 44
	EyeLeftInner   = 44
	EyeLeftOuter   = 48

	// EyePointCount is the number of contour points per eye.
	EyePointCount = 8

	NoseWingLeft  = 52
	NoseBridgeTop = 53
	NoseWingRight = 54
	NoseBase      = 56

	NostrilLeftOuter  = 58
	NostrilRightOuter = 62

	LipOuterFirst = 63
	LipOuterLast  = 74
	LipInnerFirst = 75
	LipInnerLast  = 80
)

// ErrCount is returned when a landmark sequence does not have exactly
// Count points.
var ErrCount = errors.New("landmark: invalid sequence length")

// Sequence is an ordered, fixed-length facial landmark point set.
type Sequence []geom.Point

// Validate checks the sequence length against the published contract.
func (pts Sequence) Validate() error {
	if len(pts) != Count {
		return fmt.Errorf("%w: got %d points, want %d", ErrCount, len(pts), Count)
	}

	return nil
}

// mirrorPairs lists jawline index pairs that mirror each other across
// the face's symmetry axis.
var mirrorPairs = [6][2]int{
	{0, 12}, {1, 11}, {2, 10}, {3, 9}, {4, 8}, {5, 7},
}

// axisPoints lists landmarks that lie on the symmetry axis itself.
var axisPoints = [3]int{ChinTip, NoseBridgeTop, NoseBase}

// EyeContour returns the eight eye contour points for one side. The
// left side is derived by reflection about the eye corner midline,
// never re-estimated: point i is the detected point at index
// EyeLeftFirst+i with its x-coordinate reflected about
// (x[44]+x[48])/2, so the returned order matches the right-eye order.
func EyeContour(pts Sequence, right bool) [EyePointCount]geom.Point {
	var out [EyePointCount]geom.Point

	if right {
		copy(out[:], pts[EyeRightFirst:EyeRightFirst+EyePointCount])
		return out
	}

	sum := pts[EyeLeftInner].X + pts[EyeLeftOuter].X

	for i := 0; i < EyePointCount; i++ {
		p := pts[EyeLeftFirst+i]
		out[i] = geom.Pt(sum-p.X, p.Y)
	}

	return out
}

// EyePivot returns the midpoint of the eye corners for one side, in
// detected (unmirrored) coordinates.
func EyePivot(pts Sequence, right bool) geom.Point {
	if right {
		return geom.Mid(pts[EyeRightInner], pts[EyeRightOuter])
	}

	return geom.Mid(pts[EyeLeftInner], pts[EyeLeftOuter])
}

// BrowPolygon returns the closed brow boundary for one side.
func BrowPolygon(pts Sequence, right bool) geom.Polygon {
	first := BrowLeftFirst

	if right {
		first = BrowRightFirst
	}

	poly := make(geom.Polygon, 0, BrowRightLast-BrowRightFirst+1)

	for i := first; i <= first+(BrowRightLast-BrowRightFirst); i++ {
		poly = append(poly, pts[i])
	}

	return poly
}

// LipPolygons returns the outer and inner lip boundaries. The lip mask
// is the outer region minus the inner (mouth opening) region.
func LipPolygons(pts Sequence) (outer, inner geom.Polygon) {
	outer = make(geom.Polygon, 0, LipOuterLast-LipOuterFirst+1)

	for i := LipOuterFirst; i <= LipOuterLast; i++ {
		outer = append(outer, pts[i])
	}

	inner = make(geom.Polygon, 0, LipInnerLast-LipInnerFirst+1)

	for i := LipInnerFirst; i <= LipInnerLast; i++ {
		inner = append(inner, pts[i])
	}

	return outer, inner
}
