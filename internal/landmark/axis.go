package landmark

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/facepaint/facepaint/pkg/geom"
)

// ErrDegenerate is returned when the landmark geometry collapses and no
// meaningful axis or centroid can be derived from it.
var ErrDegenerate = errors.New("landmark: degenerate geometry")

// SymmetryAxis fits the face's left-right mirror axis: a total
// least-squares line through the midpoints of mirrored jawline pairs
// and the landmarks that lie on the axis itself. The returned direction
// points downward in image coordinates.
func SymmetryAxis(pts Sequence) (geom.Line, error) {
	if err := pts.Validate(); err != nil {
		return geom.Line{}, err
	}

	xs := make([]float64, 0, len(mirrorPairs)+len(axisPoints))
	ys := make([]float64, 0, len(mirrorPairs)+len(axisPoints))

	for _, pair := range mirrorPairs {
		m := geom.Mid(pts[pair[0]], pts[pair[1]])
		xs = append(xs, m.X)
		ys = append(ys, m.Y)
	}

	for _, i := range axisPoints {
		xs = append(xs, pts[i].X)
		ys = append(ys, pts[i].Y)
	}

	mx, _ := stats.Mean(xs)
	my, _ := stats.Mean(ys)

	var sxx, sxy, syy float64

	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	var eig mat.EigenSym

	if !eig.Factorize(mat.NewSymDense(2, []float64{sxx, sxy, sxy, syy}), true) {
		return geom.Line{}, fmt.Errorf("%w: axis eigendecomposition failed", ErrDegenerate)
	}

	values := eig.Values(nil)

	// Eigenvalues come in ascending order; the principal direction is
	// the second column.
	if values[1] <= 0 {
		return geom.Line{}, fmt.Errorf("%w: landmark midpoints coincide", ErrDegenerate)
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	dir := geom.Pt(vectors.At(0, 1), vectors.At(1, 1))

	// Orient the axis downward: chin below forehead.
	if dir.Y < 0 {
		dir = dir.Scale(-1)
	}

	return geom.NewLine(dir, geom.Pt(mx, my)), nil
}

// Centroid returns the mean position of the full landmark set.
func Centroid(pts Sequence) (geom.Point, error) {
	if err := pts.Validate(); err != nil {
		return geom.Point{}, err
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))

	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	mx, errX := stats.Mean(xs)
	my, errY := stats.Mean(ys)

	if errX != nil || errY != nil {
		return geom.Point{}, fmt.Errorf("%w: empty landmark set", ErrDegenerate)
	}

	return geom.Pt(mx, my), nil
}
