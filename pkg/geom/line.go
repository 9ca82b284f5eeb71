package geom

import (
	"math"
)

// Line is an infinite 2D line given by a unit direction vector and a
// point on the line.
type Line struct {
	DX, DY float64 // unit direction
	PX, PY float64 // point on the line
}

// NewLine returns a line through p with direction d. The direction is
// normalized.
func NewLine(d, p Point) Line {
	d = d.Normalize()

	return Line{DX: d.X, DY: d.Y, PX: p.X, PY: p.Y}
}

// Direction returns the line's unit direction vector.
func (l Line) Direction() Point {
	return Point{l.DX, l.DY}
}

// DistanceToLine returns the perpendicular distance from p to l.
func DistanceToLine(p Point, l Line) float64 {
	// Cross product of the direction with the offset to p.
	return math.Abs(l.DX*(p.Y-l.PY) - l.DY*(p.X-l.PX))
}

// Angle returns the direction angle of the line in radians.
func (l Line) Angle() float64 {
	return math.Atan2(l.DY, l.DX)
}
