package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PolygonArea returns the area of the polygon described by the ordered
// boundary points, projected onto the horizontal (XZ) plane and computed with
// the shoelace formula. The result is invariant to the starting vertex and to
// winding direction. Fewer than three points, or any non-finite point,
// yields 0.
func PolygonArea(points []Point) float64 {
	if len(points) < 3 || !allValid(points) {
		return 0
	}
	sum := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Z - points[j].X*points[i].Z
	}
	return math.Abs(sum) / 2
}

// PolygonArea3D returns the area of a near-planar polygon in arbitrary
// orientation using Newell's method: half the magnitude of the summed cross
// products. Use this for boundaries that are not horizontal; PolygonArea is
// the plan-view default.
func PolygonArea3D(points []Point) float64 {
	if len(points) < 3 || !allValid(points) {
		return 0
	}
	var normal r3.Vec
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		normal = r3.Add(normal, r3.Cross(points[i].Vec(), points[j].Vec()))
	}
	return r3.Norm(normal) / 2
}

// Perimeter returns the summed 3D edge length of the polyline. When closed
// is true the closing edge from the last point back to the first is included.
func Perimeter(points []Point, closed bool) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance3D(points[i-1], points[i])
	}
	if closed && len(points) > 2 {
		total += Distance3D(points[len(points)-1], points[0])
	}
	return total
}

// Centroid returns the arithmetic mean of the vertices. This is deliberately
// NOT the area-weighted polygon centroid: for concave or unevenly sampled
// boundaries the two differ, and the simpler vertex mean is the established
// behaviour for label placement. A zero-length input yields the origin.
func Centroid(points []Point) Point {
	if len(points) == 0 || !allValid(points) {
		return Point{}
	}
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(points))
	return Point{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}
