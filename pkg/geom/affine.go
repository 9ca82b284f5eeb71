package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2x3 affine transform in row-major order:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translation returns a pure translation.
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, C: dx, E: 1, F: dy}
}

// TransformAbout builds a rotation plus non-uniform scale anchored at
// pivot: the pivot maps onto itself.
func TransformAbout(pivot Point, angle, sx, sy float64) Affine {
	cos, sin := math.Cos(angle), math.Sin(angle)

	m := Affine{
		A: cos * sx, B: -sin * sy,
		D: sin * sx, E: cos * sy,
	}

	// Translate so that the pivot stays fixed.
	q := m.Apply(pivot)
	m.C = pivot.X - q.X
	m.F = pivot.Y - q.Y

	return m
}

// Apply maps the point p through the transform.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyAll maps every point of the polygon through the transform.
func (m Affine) ApplyAll(poly Polygon) Polygon {
	out := make(Polygon, len(poly))

	for i, p := range poly {
		out[i] = m.Apply(p)
	}

	return out
}

// Mul returns the composition m∘n (n applied first).
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Invert returns the inverse transform and false if the transform is
// singular.
func (m Affine) Invert() (Affine, bool) {
	det := m.A*m.E - m.B*m.D

	if det == 0 {
		return Affine{}, false
	}

	inv := Affine{
		A: m.E / det, B: -m.B / det,
		D: -m.D / det, E: m.A / det,
	}
	inv.C = -(inv.A*m.C + inv.B*m.F)
	inv.F = -(inv.D*m.C + inv.E*m.F)

	return inv, true
}

// Aff3 returns the transform as an x/image affine matrix.
func (m Affine) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
