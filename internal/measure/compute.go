package measure

import (
	"github.com/fieldline-data/measurekit/internal/geom"
)

// PathStep is the derived distance and direction of one path segment.
type PathStep struct {
	Distance  float64    `json:"distance"`
	Direction geom.Point `json:"direction"`
}

// Result holds the scalar values derived from a measurement's geometry.
// Only the fields for the measurement's kind are populated; everything is
// recomputed by Compute, never edited directly.
type Result struct {
	TotalDistance float64             `json:"total_distance,omitempty"`
	Segments      []float64           `json:"segments,omitempty"`
	Radians       float64             `json:"radians,omitempty"`
	Area          float64             `json:"area,omitempty"`
	Perimeter     float64             `json:"perimeter,omitempty"`
	Centroid      *geom.Point         `json:"centroid,omitempty"`
	Volume        float64             `json:"volume,omitempty"`
	SurfaceArea   float64             `json:"surface_area,omitempty"`
	Radius        float64             `json:"radius,omitempty"`
	Diameter      float64             `json:"diameter,omitempty"`
	Steps         []PathStep          `json:"steps,omitempty"`
	Clearance     *geom.ClearancePair `json:"clearance,omitempty"`
	Compliant     *bool               `json:"compliant,omitempty"`
}

func (r Result) clone() Result {
	out := r
	out.Segments = append([]float64(nil), r.Segments...)
	out.Steps = append([]PathStep(nil), r.Steps...)
	if r.Centroid != nil {
		c := *r.Centroid
		out.Centroid = &c
	}
	if r.Clearance != nil {
		c := *r.Clearance
		out.Clearance = &c
	}
	if r.Compliant != nil {
		b := *r.Compliant
		out.Compliant = &b
	}
	return out
}

// Compute derives the result for a geometry variant. Degenerate geometry
// produces zero values, never an error: previews run through here on every
// click and must stay crash-free.
func Compute(g Geometry) Result {
	switch v := g.(type) {
	case LinearGeometry:
		total, segments := geom.ChainDistance(v.Points)
		return Result{TotalDistance: total, Segments: segments}

	case AngularGeometry:
		return Result{Radians: geom.Angle(v.Start, v.Vertex, v.End)}

	case AreaGeometry:
		c := geom.Centroid(v.Points)
		return Result{
			Area:      geom.PolygonArea(v.Points),
			Perimeter: geom.Perimeter(v.Points, true),
			Centroid:  &c,
		}

	case VolumeGeometry:
		c := geom.BoxCentroid(v.Min, v.Max)
		return Result{
			Volume:      geom.BoxVolume(v.Min, v.Max),
			SurfaceArea: geom.BoxSurfaceArea(v.Min, v.Max),
			Centroid:    &c,
		}

	case RadiusGeometry:
		r := arcRadius(v.Center, v.Edge, v.Points)
		return Result{Radius: r, Diameter: 2 * r}

	case DiameterGeometry:
		r := arcRadius(v.Center, v.Edge, v.Points)
		return Result{Radius: r, Diameter: 2 * r}

	case PathGeometry:
		total, segments := geom.ChainDistance(v.Waypoints)
		steps := make([]PathStep, 0, len(segments))
		for i, d := range segments {
			steps = append(steps, PathStep{
				Distance:  d,
				Direction: geom.Direction(v.Waypoints[i], v.Waypoints[i+1]),
			})
		}
		return Result{TotalDistance: total, Steps: steps}

	case ClearanceGeometry:
		pair, ok := geom.MinClearance(v.PointsA, v.PointsB)
		if !ok {
			return Result{}
		}
		res := Result{TotalDistance: pair.Distance, Clearance: &pair}
		if v.Threshold != nil {
			compliant := pair.Distance >= *v.Threshold
			res.Compliant = &compliant
		}
		return res

	default:
		return Result{}
	}
}

// arcRadius resolves the radius from either three arc points or a
// center/edge pair. Three points win when present.
func arcRadius(center, edge geom.Point, points []geom.Point) float64 {
	if len(points) == 3 {
		return geom.Circumradius(points[0], points[1], points[2])
	}
	return geom.Distance3D(center, edge)
}
