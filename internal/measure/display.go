package measure

import (
	"github.com/fieldline-data/measurekit/internal/units"
)

// DisplayValue renders the primary derived value of a measurement in its
// display unit. This string feeds dimension labels and the summary report;
// see the units package for the exact formats.
func DisplayValue(m *Measurement) string {
	switch m.Kind {
	case Linear, Path:
		return units.FormatLength(m.Result.TotalDistance, m.Unit, m.Precision)
	case Angular:
		angleUnit := units.Degrees
		if m.Unit == units.Radians {
			angleUnit = units.Radians
		}
		return units.FormatAngle(m.Result.Radians, angleUnit, m.Precision)
	case Area:
		return units.FormatArea(m.Result.Area, units.AreaUnitFor(m.Unit), m.Precision)
	case Volume:
		return units.FormatVolume(m.Result.Volume, units.VolumeUnitFor(m.Unit), m.Precision)
	case Radius:
		return "R " + units.FormatLength(m.Result.Radius, m.Unit, m.Precision)
	case Diameter:
		return "⌀ " + units.FormatLength(m.Result.Diameter, m.Unit, m.Precision)
	case Clearance:
		return units.FormatLength(m.Result.TotalDistance, m.Unit, m.Precision)
	default:
		return ""
	}
}
