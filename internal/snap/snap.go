// Package snap builds candidate snap points from scene object bounds and
// resolves the best candidate for a query position. The resolver is pure and
// deterministic: the same candidates, position and tolerance always produce
// the same snap, which is what makes point capture predictable for the user
// and testable without a renderer.
package snap

import (
	"github.com/fieldline-data/measurekit/internal/geom"
)

// Type classifies a snap candidate by the geometric feature it represents.
type Type string

const (
	TypeEndpoint      Type = "endpoint"
	TypeCorner        Type = "corner"
	TypeIntersection  Type = "intersection"
	TypeCenter        Type = "center"
	TypePerpendicular Type = "perpendicular"
	TypeTangent       Type = "tangent"
	TypeMidpoint      Type = "midpoint"
	TypeEdge          Type = "edge"
	TypeQuadrant      Type = "quadrant"
	TypeGrid          Type = "grid"
)

// typePriority fixes the total order used to rank candidates of different
// types at comparable distance. The exact ordering is load-bearing: users
// learn it, and changing it silently changes what every click lands on.
// High to low: endpoint, corner, intersection, center, perpendicular,
// tangent, midpoint, edge, quadrant, grid.
var typePriority = map[Type]float64{
	TypeEndpoint:      1.0,
	TypeCorner:        0.9,
	TypeIntersection:  0.8,
	TypeCenter:        0.7,
	TypePerpendicular: 0.6,
	TypeTangent:       0.5,
	TypeMidpoint:      0.4,
	TypeEdge:          0.3,
	TypeQuadrant:      0.2,
	TypeGrid:          0.1,
}

// Priority returns the rank weight of a snap type in [0, 1].
// Unknown types rank below grid.
func Priority(t Type) float64 {
	return typePriority[t]
}

// Point is a single snap candidate.
type Point struct {
	Position    geom.Point `json:"position"`
	Type        Type       `json:"type"`
	Confidence  float64    `json:"confidence"`
	ElementID   string     `json:"element_id,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Provider kinds. Round providers additionally yield quadrant points.
const (
	KindGeneric = "generic"
	KindRound   = "round"
)

// Provider describes one scene object contributing snap candidates.
// Deriving bounds from an actual scene graph is the caller's job.
type Provider struct {
	ElementID string      `json:"element_id"`
	Bounds    geom.Bounds `json:"bounds"`
	Kind      string      `json:"kind,omitempty"`
}
