package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Distance3D returns the Euclidean distance between two points.
// Non-finite input yields 0.
func Distance3D(a, b Point) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	return r3.Norm(r3.Sub(b.Vec(), a.Vec()))
}

// DistanceHorizontal returns the plan-view distance between two points,
// ignoring vertical (Y) separation. This is the default metric for warehouse
// floor measurement; it is NOT interchangeable with Distance3D and callers
// must pick one deliberately.
func DistanceHorizontal(a, b Point) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	dx := b.X - a.X
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// ChainDistance returns the cumulative plan-view length of a polyline along
// with the per-segment lengths. Fewer than two points yields a zero total and
// no segments.
func ChainDistance(points []Point) (total float64, segments []float64) {
	if len(points) < 2 {
		return 0, nil
	}
	segments = make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		d := DistanceHorizontal(points[i-1], points[i])
		segments = append(segments, d)
		total += d
	}
	return total, segments
}

// Direction returns the unit vector from a to b, or the zero point when the
// points coincide or are invalid.
func Direction(a, b Point) Point {
	if !a.Valid() || !b.Valid() {
		return Point{}
	}
	d := r3.Sub(b.Vec(), a.Vec())
	n := r3.Norm(d)
	if n == 0 {
		return Point{}
	}
	return FromVec(r3.Scale(1/n, d))
}
