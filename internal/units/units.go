// Package units provides the measurement unit vocabulary, conversion between
// units, and the stable display formatting contract. Lengths are stored in
// feet, angles in radians, areas in square feet and volumes in cubic feet;
// conversion always passes through those base units.
package units

import "math"

// Length units.
const (
	Feet        = "feet"
	Inches      = "inches"
	FeetInches  = "ft-in"
	Meters      = "meters"
	Millimeters = "millimeters"
	Centimeters = "centimeters"
)

// Angle units.
const (
	Degrees = "degrees"
	Radians = "radians"
)

// Area units.
const (
	SquareFeet        = "sqft"
	SquareInches      = "sqin"
	SquareMeters      = "sqm"
	SquareCentimeters = "sqcm"
)

// Volume units.
const (
	CubicFeet   = "cuft"
	CubicInches = "cuin"
	CubicMeters = "cum"
	Liters      = "liters"
)

// ValidLengthUnits contains all valid length unit values.
var ValidLengthUnits = []string{Feet, Inches, FeetInches, Meters, Millimeters, Centimeters}

// feet per meter
const feetPerMeter = 1 / 0.3048

// toBase maps every unit to its factor into the category base unit
// (feet, radians, sqft, cuft). ft-in shares the feet scale; it differs only
// in formatting.
var toBase = map[string]float64{
	Feet:        1,
	Inches:      1.0 / 12,
	FeetInches:  1,
	Meters:      feetPerMeter,
	Millimeters: feetPerMeter / 1000,
	Centimeters: feetPerMeter / 100,

	Radians: 1,
	Degrees: math.Pi / 180,

	SquareFeet:        1,
	SquareInches:      1.0 / 144,
	SquareMeters:      feetPerMeter * feetPerMeter,
	SquareCentimeters: feetPerMeter * feetPerMeter / 10000,

	CubicFeet:   1,
	CubicInches: 1.0 / 1728,
	CubicMeters: feetPerMeter * feetPerMeter * feetPerMeter,
	Liters:      feetPerMeter * feetPerMeter * feetPerMeter / 1000,
}

// category groups units so Convert never crosses dimensions.
var category = map[string]string{
	Feet: "length", Inches: "length", FeetInches: "length",
	Meters: "length", Millimeters: "length", Centimeters: "length",
	Degrees: "angle", Radians: "angle",
	SquareFeet: "area", SquareInches: "area", SquareMeters: "area", SquareCentimeters: "area",
	CubicFeet: "volume", CubicInches: "volume", CubicMeters: "volume", Liters: "volume",
}

// IsValidLengthUnit checks if the given unit is a known length unit.
func IsValidLengthUnit(unit string) bool {
	return category[unit] == "length"
}

// Convert converts a value between two units of the same category via the
// category base unit. Unknown or mismatched units leave the value unchanged
// rather than failing, so a stale display setting can never break a preview.
func Convert(value float64, from, to string) float64 {
	if from == to {
		return value
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	cf, okf := category[from]
	ct, okt := category[to]
	if !okf || !okt || cf != ct {
		return value
	}
	return value * toBase[from] / toBase[to]
}

// RoundToPrecision rounds to the given number of decimal places.
// Non-finite values pass through untouched.
func RoundToPrecision(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}

// SnapToIncrement rounds a value to the nearest multiple of increment.
// A non-positive increment leaves the value unchanged.
func SnapToIncrement(value, increment float64) float64 {
	if increment <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return math.Round(value/increment) * increment
}
