// Package geom implements the pure numeric primitives behind all
// measurements: distances, angles, polygon area, box volume and nearest-pair
// clearance. Every function is deterministic, holds no state and tolerates
// degenerate or non-finite input by returning a zero-value result instead of
// panicking, so a live measurement preview can never crash mid-capture.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in world space. Units are feet by convention; the Y
// axis is vertical (plan-view measurements ignore it).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Valid reports whether all components are finite. Invalid points are the
// normal case mid-capture (e.g. an unproject miss) and are rejected upstream
// rather than treated as errors.
func (p Point) Valid() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

// Vec converts the point to a gonum r3 vector.
func (p Point) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// FromVec converts a gonum r3 vector back to a Point.
func FromVec(v r3.Vec) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// Min returns the component-wise minimum of two points.
func (p Point) Min(q Point) Point {
	return Point{X: math.Min(p.X, q.X), Y: math.Min(p.Y, q.Y), Z: math.Min(p.Z, q.Z)}
}

// Max returns the component-wise maximum of two points.
func (p Point) Max(q Point) Point {
	return Point{X: math.Max(p.X, q.X), Y: math.Max(p.Y, q.Y), Z: math.Max(p.Z, q.Z)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allValid(points []Point) bool {
	for _, p := range points {
		if !p.Valid() {
			return false
		}
	}
	return true
}
