package geom

import "math"

// Circumradius returns the radius of the circle passing through the three
// points, using R = abc / 4K with K from Heron's formula. Collinear or
// coincident points yield 0.
func Circumradius(p1, p2, p3 Point) float64 {
	if !p1.Valid() || !p2.Valid() || !p3.Valid() {
		return 0
	}
	a := Distance3D(p2, p3)
	b := Distance3D(p1, p3)
	c := Distance3D(p1, p2)
	if a == 0 || b == 0 || c == 0 {
		return 0
	}
	s := (a + b + c) / 2
	k2 := s * (s - a) * (s - b) * (s - c)
	if k2 <= 0 {
		return 0
	}
	return a * b * c / (4 * math.Sqrt(k2))
}
