package measure

import (
	"errors"
	"fmt"

	"github.com/fieldline-data/measurekit/internal/geom"
)

// ErrInvalidGeometry reports geometry that violates a kind invariant.
// Callers mid-capture treat this as "not yet ready", not as a failure.
var ErrInvalidGeometry = errors.New("invalid measurement geometry")

// Validate checks the kind invariants of a geometry variant:
// Linear/Path need at least two points, Area at least three, Angular and
// Diameter an explicit vertex with two distinct arms, Clearance exactly two
// distinct object references.
func Validate(g Geometry) error {
	switch v := g.(type) {
	case LinearGeometry:
		if len(v.Points) < 2 {
			return fmt.Errorf("%w: linear needs at least 2 points, have %d", ErrInvalidGeometry, len(v.Points))
		}

	case AngularGeometry:
		if v.Start == v.Vertex || v.End == v.Vertex || v.Start == v.End {
			return fmt.Errorf("%w: angular needs a vertex and two distinct arms", ErrInvalidGeometry)
		}

	case AreaGeometry:
		if len(v.Points) < 3 {
			return fmt.Errorf("%w: area needs at least 3 boundary points, have %d", ErrInvalidGeometry, len(v.Points))
		}

	case VolumeGeometry:
		if !v.Min.Valid() || !v.Max.Valid() {
			return fmt.Errorf("%w: volume corners must be finite", ErrInvalidGeometry)
		}

	case RadiusGeometry:
		if err := validateArc(v.Center, v.Edge, len(v.Points), "radius"); err != nil {
			return err
		}

	case DiameterGeometry:
		if len(v.Points) == 3 {
			if v.Points[0] == v.Points[1] || v.Points[1] == v.Points[2] || v.Points[0] == v.Points[2] {
				return fmt.Errorf("%w: diameter needs a vertex and two distinct arm points", ErrInvalidGeometry)
			}
		} else if err := validateArc(v.Center, v.Edge, len(v.Points), "diameter"); err != nil {
			return err
		}

	case PathGeometry:
		if len(v.Waypoints) < 2 {
			return fmt.Errorf("%w: path needs at least 2 waypoints, have %d", ErrInvalidGeometry, len(v.Waypoints))
		}

	case ClearanceGeometry:
		if v.ObjectA == "" || v.ObjectB == "" || v.ObjectA == v.ObjectB {
			return fmt.Errorf("%w: clearance needs two distinct object references", ErrInvalidGeometry)
		}

	default:
		return fmt.Errorf("%w: unrecognised geometry", ErrInvalidGeometry)
	}
	return nil
}

func validateArc(center, edge geom.Point, points int, what string) error {
	if points == 3 {
		return nil
	}
	if points != 0 {
		return fmt.Errorf("%w: %s arc capture needs exactly 3 points, have %d", ErrInvalidGeometry, what, points)
	}
	if !center.Valid() || !edge.Valid() {
		return fmt.Errorf("%w: %s center and edge must be finite", ErrInvalidGeometry, what)
	}
	return nil
}
