package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestAngle(t *testing.T) {
	t.Parallel()

	vertex := Point{}

	t.Run("right angle", func(t *testing.T) {
		t.Parallel()
		got := Angle(Point{X: 5}, vertex, Point{Z: 3})
		assert.True(t, scalar.EqualWithinAbs(got, math.Pi/2, 1e-12))
	})

	t.Run("straight line", func(t *testing.T) {
		t.Parallel()
		got := Angle(Point{X: -1}, vertex, Point{X: 4})
		assert.True(t, scalar.EqualWithinAbs(got, math.Pi, 1e-12))
	})

	t.Run("symmetric in arms", func(t *testing.T) {
		t.Parallel()
		a := Point{X: 2, Y: 1, Z: -3}
		b := Point{X: -1, Y: 4, Z: 0.5}
		assert.Equal(t, Angle(a, vertex, b), Angle(b, vertex, a))
	})

	t.Run("coincident arms yield zero", func(t *testing.T) {
		t.Parallel()
		a := Point{X: 2, Y: 2, Z: 2}
		assert.Zero(t, Angle(a, vertex, a))
	})

	t.Run("zero-length arm yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Angle(vertex, vertex, Point{X: 1}))
	})

	t.Run("non-finite input yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Angle(Point{X: math.NaN()}, vertex, Point{X: 1}))
	})
}

func TestCircumradius(t *testing.T) {
	t.Parallel()

	t.Run("unit circle through three points", func(t *testing.T) {
		t.Parallel()
		r := Circumradius(Point{X: 1}, Point{X: -1}, Point{Z: 1})
		assert.True(t, scalar.EqualWithinAbs(r, 1.0, 1e-12))
	})

	t.Run("collinear points", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Circumradius(Point{}, Point{X: 1}, Point{X: 2}))
	})
}
