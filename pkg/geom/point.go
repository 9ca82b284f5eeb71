// Package geom provides the 2D primitives used by the compositing
// engine: points in image space (x right, y down), lines, axis-aligned
// rectangles, and 2x3 affine transforms.
package geom

import (
	"image"
	"math"
)

// Point is a 2D coordinate in image space.
type Point struct {
	X, Y float64
}

// Pt returns a point with the given coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns p scaled to unit length. The zero vector is
// returned unchanged.
func (p Point) Normalize() Point {
	n := p.Norm()

	if n == 0 {
		return p
	}

	return p.Scale(1 / n)
}

// Mid returns the midpoint of p and q.
func Mid(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Lerp returns the linear interpolation between p and q at t.
func Lerp(p, q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polygon is an ordered point sequence describing a closed region
// boundary. Orientation is not guaranteed and consumers must not
// assume it.
type Polygon []Point

// BoundingRect returns the smallest integer rectangle containing all
// polygon points.
func (poly Polygon) BoundingRect() image.Rectangle {
	if len(poly) == 0 {
		return image.Rectangle{}
	}

	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY

	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
}

// Centroid returns the area centroid of the polygon and false if the
// polygon area is degenerate (zero).
func (poly Polygon) Centroid() (Point, bool) {
	if len(poly) < 3 {
		return Point{}, false
	}

	var area, cx, cy float64

	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		cross := p.X*q.Y - q.X*p.Y
		area += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}

	if area == 0 {
		return Point{}, false
	}

	area /= 2

	return Point{cx / (6 * area), cy / (6 * area)}, true
}

// Translate returns the polygon shifted by offset.
func (poly Polygon) Translate(offset Point) Polygon {
	out := make(Polygon, len(poly))

	for i, p := range poly {
		out[i] = p.Add(offset)
	}

	return out
}
