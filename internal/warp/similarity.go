package warp

import (
	"math"

	"github.com/facepaint/facepaint/pkg/geom"
)

// Similarity describes the pose of a feature through two anchor
// points: the pivot they straddle, the anchor radius, and the tilt
// angle.
type Similarity struct {
	Pivot  geom.Point
	Radius float64
	Angle  float64
}

// NewSimilarity derives the descriptor from two anchor points (for an
// eye: the inner and outer corner). The angle is mapped into
// [-π/2, π/2] so that left/right anchor order does not matter.
func NewSimilarity(inner, outer geom.Point) Similarity {
	pivot := geom.Mid(inner, outer)

	delta := inner.Sub(outer)

	if delta.X < 0 {
		delta = delta.Scale(-1)
	}

	return Similarity{
		Pivot:  pivot,
		Radius: geom.Distance(pivot, outer),
		Angle:  math.Atan2(delta.Y, delta.X),
	}
}

// TransformTo builds the affine map that carries the canonical
// descriptor s onto the detected descriptor d: a rotation by d.Angle
// and a uniform scale of d.Radius/s.Radius anchored at s.Pivot.
func (s Similarity) TransformTo(d Similarity) geom.Affine {
	scale := 1.0

	if s.Radius > 0 {
		scale = d.Radius / s.Radius
	}

	return geom.TransformAbout(s.Pivot, d.Angle, scale, scale)
}
