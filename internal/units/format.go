package units

import (
	"fmt"
	"math"
)

// FormatLength formats a length stored in feet for display in the given
// unit. The output strings are a stable contract:
//
//	feet        12.50'
//	inches      150.00"
//	ft-in       12' 6"
//	meters      3.81 m
//	millimeters 3810 mm
//	centimeters 381.00 cm
func FormatLength(feet float64, unit string, precision int) string {
	switch unit {
	case Feet:
		return fmt.Sprintf("%.*f'", precision, feet)
	case Inches:
		return fmt.Sprintf("%.*f\"", precision, Convert(feet, Feet, Inches))
	case FeetInches:
		return formatFeetInches(feet)
	case Meters:
		return fmt.Sprintf("%.*f m", precision, Convert(feet, Feet, Meters))
	case Millimeters:
		return fmt.Sprintf("%.0f mm", Convert(feet, Feet, Millimeters))
	case Centimeters:
		return fmt.Sprintf("%.*f cm", precision, Convert(feet, Feet, Centimeters))
	default:
		return fmt.Sprintf("%.*f'", precision, feet)
	}
}

// formatFeetInches renders whole feet plus inches rounded to the nearest
// whole inch, carrying 12" into the next foot.
func formatFeetInches(feet float64) string {
	sign := ""
	if feet < 0 {
		sign = "-"
		feet = -feet
	}
	whole := math.Floor(feet)
	inches := math.Round((feet - whole) * 12)
	if inches >= 12 {
		whole++
		inches = 0
	}
	return fmt.Sprintf("%s%.0f' %.0f\"", sign, whole, inches)
}

// FormatArea formats an area stored in square feet, e.g. "3.20 ft²".
func FormatArea(sqft float64, unit string, precision int) string {
	switch unit {
	case SquareFeet:
		return fmt.Sprintf("%.*f ft²", precision, sqft)
	case SquareInches:
		return fmt.Sprintf("%.*f in²", precision, Convert(sqft, SquareFeet, SquareInches))
	case SquareMeters:
		return fmt.Sprintf("%.*f m²", precision, Convert(sqft, SquareFeet, SquareMeters))
	case SquareCentimeters:
		return fmt.Sprintf("%.*f cm²", precision, Convert(sqft, SquareFeet, SquareCentimeters))
	default:
		return fmt.Sprintf("%.*f ft²", precision, sqft)
	}
}

// FormatVolume formats a volume stored in cubic feet, e.g. "4.00 ft³".
func FormatVolume(cuft float64, unit string, precision int) string {
	switch unit {
	case CubicFeet:
		return fmt.Sprintf("%.*f ft³", precision, cuft)
	case CubicInches:
		return fmt.Sprintf("%.*f in³", precision, Convert(cuft, CubicFeet, CubicInches))
	case CubicMeters:
		return fmt.Sprintf("%.*f m³", precision, Convert(cuft, CubicFeet, CubicMeters))
	case Liters:
		return fmt.Sprintf("%.*f L", precision, Convert(cuft, CubicFeet, Liters))
	default:
		return fmt.Sprintf("%.*f ft³", precision, cuft)
	}
}

// AreaUnitFor maps a length display unit to its area counterpart.
func AreaUnitFor(lengthUnit string) string {
	switch lengthUnit {
	case Inches:
		return SquareInches
	case Meters:
		return SquareMeters
	case Millimeters, Centimeters:
		return SquareCentimeters
	default:
		return SquareFeet
	}
}

// VolumeUnitFor maps a length display unit to its volume counterpart.
func VolumeUnitFor(lengthUnit string) string {
	switch lengthUnit {
	case Inches:
		return CubicInches
	case Meters, Millimeters, Centimeters:
		return CubicMeters
	default:
		return CubicFeet
	}
}

// FormatAngle formats an angle stored in radians, e.g. "45.0°".
// Degrees render with one decimal regardless of precision; that matches the
// on-screen dimension style.
func FormatAngle(radians float64, unit string, precision int) string {
	switch unit {
	case Degrees:
		return fmt.Sprintf("%.1f°", Convert(radians, Radians, Degrees))
	case Radians:
		return fmt.Sprintf("%.*f rad", precision, radians)
	default:
		return fmt.Sprintf("%.1f°", Convert(radians, Radians, Degrees))
	}
}
