package geom

// CatmullRom evaluates the uniform Catmull-Rom spline through the four
// control points at parameter t in [0, 1]. The curve interpolates the
// two inner points: t=0 yields p1 and t=1 yields p2.
func CatmullRom(t float64, p0, p1, p2, p3 Point) Point {
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: catmullRom1(t, t2, t3, p0.X, p1.X, p2.X, p3.X),
		Y: catmullRom1(t, t2, t3, p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

func catmullRom1(t, t2, t3, v0, v1, v2, v3 float64) float64 {
	return 0.5 * (2*v1 +
		(v2-v0)*t +
		(2*v0-5*v1+4*v2-v3)*t2 +
		(3*v1-3*v2+v3-v0)*t3)
}
