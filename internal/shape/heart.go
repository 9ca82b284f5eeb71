package shape

import (
	"math"

	"github.com/facepaint/facepaint/pkg/geom"
)

// heartPointCount is the number of samples taken along the closed
// analytic heart curve.
const heartPointCount = 32

// Heart samples the analytic heart curve
//
//	x = sin³t
//	y = 13·cos t − 5·cos 2t − 2·cos 3t − cos 4t
//
// uniformly over [0, 2π), normalized to unit size with y pointing down,
// rotated by angle, then scaled by radius and translated to center.
// Identical inputs always yield identical output.
func Heart(center geom.Point, radius, angle float64) geom.Polygon {
	heart := make(geom.Polygon, heartPointCount)

	cosa, sina := math.Cos(angle), math.Sin(angle)

	for i := 0; i < heartPointCount; i++ {
		t := float64(i) * (2 * math.Pi / heartPointCount)

		sint, cost := math.Sin(t), math.Cos(t)
		sin2t, cos2t := 2*sint*cost, cost*cost-sint*sint
		cos3t := cost*cos2t - sint*sin2t
		cos4t := cos2t*cos2t - sin2t*sin2t

		x := sint * sint * sint
		// The sign flip converts the curve's y-up form to image
		// coordinates.
		y := (13*cost - 5*cos2t - 2*cos3t - cos4t) / -16

		rotated := geom.Pt(x*cosa-y*sina, x*sina+y*cosa)
		heart[i] = center.Add(rotated.Scale(radius))
	}

	return heart
}
