package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("feet to meters round trip", func(t *testing.T) {
		t.Parallel()
		for _, v := range []float64{0, 1, 12.5, 1000, 0.001} {
			got := Convert(Convert(v, Feet, Meters), Meters, Feet)
			assert.True(t, scalar.EqualWithinAbs(got, v, 1e-9), "value %v", v)
		}
	})

	t.Run("known factors", func(t *testing.T) {
		t.Parallel()
		assert.True(t, scalar.EqualWithinAbs(Convert(1, Feet, Inches), 12, 1e-12))
		assert.True(t, scalar.EqualWithinAbs(Convert(1, Meters, Centimeters), 100, 1e-9))
		assert.True(t, scalar.EqualWithinAbs(Convert(180, Degrees, Radians), math.Pi, 1e-12))
		assert.True(t, scalar.EqualWithinAbs(Convert(1, SquareFeet, SquareInches), 144, 1e-9))
		assert.True(t, scalar.EqualWithinAbs(Convert(1, CubicMeters, Liters), 1000, 1e-9))
	})

	t.Run("same unit is identity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 7.25, Convert(7.25, Feet, Feet))
	})

	t.Run("cross-category leaves value unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 5.0, Convert(5, Feet, Degrees))
	})

	t.Run("unknown unit leaves value unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 5.0, Convert(5, "furlongs", Feet))
	})

	t.Run("non-finite passes through", func(t *testing.T) {
		t.Parallel()
		assert.True(t, math.IsNaN(Convert(math.NaN(), Feet, Meters)))
	})
}

func TestRoundToPrecision(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3.14, RoundToPrecision(3.14159, 2))
	assert.Equal(t, 3.0, RoundToPrecision(3.14159, 0))
	assert.Equal(t, -2.5, RoundToPrecision(-2.4999, 1))
	assert.True(t, math.IsNaN(RoundToPrecision(math.NaN(), 2)))
}

func TestSnapToIncrement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.5, SnapToIncrement(10.4, 0.5))
	assert.Equal(t, 10.0, SnapToIncrement(10.2, 0.5))
	assert.Equal(t, 7.3, SnapToIncrement(7.3, 0))
	assert.Equal(t, 7.3, SnapToIncrement(7.3, -1))
}

func TestIsValidLengthUnit(t *testing.T) {
	t.Parallel()

	for _, u := range ValidLengthUnits {
		assert.True(t, IsValidLengthUnit(u), u)
	}
	assert.False(t, IsValidLengthUnit(Degrees))
	assert.False(t, IsValidLengthUnit("cubits"))
}
