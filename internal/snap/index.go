package snap

import (
	"fmt"

	"github.com/fieldline-data/measurekit/internal/geom"
)

// GridOptions configures the optional planar fallback grid appended after
// all object-derived candidates.
type GridOptions struct {
	Spacing float64 `json:"spacing"`
	Extent  float64 `json:"extent"`
	Y       float64 `json:"y"`
}

// Index holds the current candidate set. Rebuild on scene-topology change
// only — the pairwise intersection pass is quadratic in provider count and
// rebuilding per frame is wasted work.
type Index struct {
	candidates []Point
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Len returns the number of candidates currently indexed.
func (ix *Index) Len() int {
	return len(ix.candidates)
}

// Build replaces the candidate set from the given providers: per provider
// its 8 corners, volumetric center, 6 face centers and 12 edge midpoints
// (plus 4 quadrant points for round providers), then a low-confidence
// overlap candidate per intersecting provider pair, then the optional grid.
// Zero-volume providers still contribute 8 coincident corners; duplicates
// are harmless and deliberately not deduplicated.
func (ix *Index) Build(providers []Provider, grid *GridOptions) {
	ix.candidates = ix.candidates[:0]
	for _, p := range providers {
		ix.addProvider(p)
	}
	ix.addIntersections(providers)
	if grid != nil {
		ix.addGrid(*grid)
	}
}

// Add appends caller-supplied candidates, e.g. endpoints of existing
// measurements. Callers own the type and confidence.
func (ix *Index) Add(points ...Point) {
	ix.candidates = append(ix.candidates, points...)
}

func (ix *Index) addProvider(p Provider) {
	min, max := p.Bounds.Min, p.Bounds.Max
	c := p.Bounds.Center()

	// 8 corners.
	for _, x := range []float64{min.X, max.X} {
		for _, y := range []float64{min.Y, max.Y} {
			for _, z := range []float64{min.Z, max.Z} {
				ix.candidates = append(ix.candidates, Point{
					Position:    geom.Point{X: x, Y: y, Z: z},
					Type:        TypeCorner,
					Confidence:  0.95,
					ElementID:   p.ElementID,
					Description: "corner",
				})
			}
		}
	}

	// Volumetric center.
	ix.candidates = append(ix.candidates, Point{
		Position:    c,
		Type:        TypeCenter,
		Confidence:  0.9,
		ElementID:   p.ElementID,
		Description: "center",
	})

	// 6 face centers.
	faces := []geom.Point{
		{X: min.X, Y: c.Y, Z: c.Z},
		{X: max.X, Y: c.Y, Z: c.Z},
		{X: c.X, Y: min.Y, Z: c.Z},
		{X: c.X, Y: max.Y, Z: c.Z},
		{X: c.X, Y: c.Y, Z: min.Z},
		{X: c.X, Y: c.Y, Z: max.Z},
	}
	for _, f := range faces {
		ix.candidates = append(ix.candidates, Point{
			Position:    f,
			Type:        TypeCenter,
			Confidence:  0.8,
			ElementID:   p.ElementID,
			Description: "face center",
		})
	}

	// 12 edge midpoints: four edges along each axis.
	for _, y := range []float64{min.Y, max.Y} {
		for _, z := range []float64{min.Z, max.Z} {
			ix.addMidpoint(p.ElementID, geom.Point{X: c.X, Y: y, Z: z})
		}
	}
	for _, x := range []float64{min.X, max.X} {
		for _, z := range []float64{min.Z, max.Z} {
			ix.addMidpoint(p.ElementID, geom.Point{X: x, Y: c.Y, Z: z})
		}
	}
	for _, x := range []float64{min.X, max.X} {
		for _, y := range []float64{min.Y, max.Y} {
			ix.addMidpoint(p.ElementID, geom.Point{X: x, Y: y, Z: c.Z})
		}
	}

	// Quadrant points for round objects: N/S/E/W on the equatorial plane.
	if p.Kind == KindRound {
		quadrants := []geom.Point{
			{X: min.X, Y: c.Y, Z: c.Z},
			{X: max.X, Y: c.Y, Z: c.Z},
			{X: c.X, Y: c.Y, Z: min.Z},
			{X: c.X, Y: c.Y, Z: max.Z},
		}
		for _, q := range quadrants {
			ix.candidates = append(ix.candidates, Point{
				Position:    q,
				Type:        TypeQuadrant,
				Confidence:  0.7,
				ElementID:   p.ElementID,
				Description: "quadrant",
			})
		}
	}
}

func (ix *Index) addMidpoint(elementID string, pos geom.Point) {
	ix.candidates = append(ix.candidates, Point{
		Position:    pos,
		Type:        TypeMidpoint,
		Confidence:  0.85,
		ElementID:   elementID,
		Description: "edge midpoint",
	})
}

// addIntersections emits one candidate per overlapping provider pair at the
// center of the bounding-box overlap. This is an approximation of a surface
// intersection, not a real one — bounds overlap even where surfaces do not —
// hence the low confidence.
func (ix *Index) addIntersections(providers []Provider) {
	for i := 0; i < len(providers); i++ {
		for j := i + 1; j < len(providers); j++ {
			overlap, ok := providers[i].Bounds.Intersect(providers[j].Bounds)
			if !ok {
				continue
			}
			ix.candidates = append(ix.candidates, Point{
				Position:    overlap.Center(),
				Type:        TypeIntersection,
				Confidence:  0.5,
				ElementID:   providers[i].ElementID,
				Description: fmt.Sprintf("overlap %s/%s", providers[i].ElementID, providers[j].ElementID),
			})
		}
	}
}

// addGrid appends a uniform planar grid as lowest-confidence fallback
// candidates.
func (ix *Index) addGrid(g GridOptions) {
	if g.Spacing <= 0 || g.Extent <= 0 {
		return
	}
	for x := -g.Extent; x <= g.Extent; x += g.Spacing {
		for z := -g.Extent; z <= g.Extent; z += g.Spacing {
			ix.candidates = append(ix.candidates, Point{
				Position:    geom.Point{X: x, Y: g.Y, Z: z},
				Type:        TypeGrid,
				Confidence:  0.3,
				Description: "grid",
			})
		}
	}
}
