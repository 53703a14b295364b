package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Angle returns the angle at vertex between the arms vertex→start and
// vertex→end, in radians in [0, π]. It is symmetric in start and end. A
// zero-length arm or non-finite input yields 0.
func Angle(start, vertex, end Point) float64 {
	if !start.Valid() || !vertex.Valid() || !end.Valid() {
		return 0
	}
	a := r3.Sub(start.Vec(), vertex.Vec())
	b := r3.Sub(end.Vec(), vertex.Vec())
	na := r3.Norm(a)
	nb := r3.Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	// Clamp to guard against acos domain errors from rounding.
	cos := r3.Dot(a, b) / (na * nb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}
