package snap

import (
	"sort"

	"github.com/fieldline-data/measurekit/internal/geom"
)

// Weights of the ranking score. Priority dominates so that type ordering
// holds at comparable distance; distance breaks ties within a type.
const (
	priorityWeight   = 0.6
	distanceWeight   = 0.3
	confidenceWeight = 0.1
)

func score(p Point, dist, tolerance float64) float64 {
	return Priority(p.Type)*priorityWeight +
		(1-dist/tolerance)*distanceWeight +
		p.Confidence*confidenceWeight
}

// FindBest returns the highest-scoring candidate within tolerance of pos,
// or false when none qualifies. A non-positive tolerance matches nothing.
func (ix *Index) FindBest(pos geom.Point, tolerance float64) (Point, bool) {
	if tolerance <= 0 {
		return Point{}, false
	}
	var (
		best      Point
		bestScore float64
		found     bool
	)
	for _, c := range ix.candidates {
		d := geom.Distance3D(pos, c.Position)
		if d > tolerance {
			continue
		}
		s := score(c, d, tolerance)
		if !found || s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}

// Within returns all candidates inside tolerance of pos, nearest first.
func (ix *Index) Within(pos geom.Point, tolerance float64) []Point {
	if tolerance <= 0 {
		return nil
	}
	type ranked struct {
		p Point
		d float64
	}
	var hits []ranked
	for _, c := range ix.candidates {
		if d := geom.Distance3D(pos, c.Position); d <= tolerance {
			hits = append(hits, ranked{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]Point, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return out
}

// ByType returns all candidates of the given type, in index order.
func (ix *Index) ByType(t Type) []Point {
	var out []Point
	for _, c := range ix.candidates {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// ByElement returns all candidates contributed by the given element.
func (ix *Index) ByElement(elementID string) []Point {
	var out []Point
	for _, c := range ix.candidates {
		if c.ElementID == elementID {
			out = append(out, c)
		}
	}
	return out
}
