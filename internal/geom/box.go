package geom

import "math"

// BoxVolume returns the volume of the axis-aligned box spanned by min and
// max. Extents are taken as absolute values so a swapped corner pair still
// yields a positive volume. Non-finite input yields 0.
func BoxVolume(min, max Point) float64 {
	if !min.Valid() || !max.Valid() {
		return 0
	}
	return math.Abs(max.X-min.X) * math.Abs(max.Y-min.Y) * math.Abs(max.Z-min.Z)
}

// BoxSurfaceArea returns the total surface area of the axis-aligned box.
func BoxSurfaceArea(min, max Point) float64 {
	if !min.Valid() || !max.Valid() {
		return 0
	}
	dx := math.Abs(max.X - min.X)
	dy := math.Abs(max.Y - min.Y)
	dz := math.Abs(max.Z - min.Z)
	return 2 * (dx*dy + dy*dz + dx*dz)
}

// BoxCentroid returns the center of the axis-aligned box.
func BoxCentroid(min, max Point) Point {
	if !min.Valid() || !max.Valid() {
		return Point{}
	}
	return Point{
		X: (min.X + max.X) / 2,
		Y: (min.Y + max.Y) / 2,
		Z: (min.Z + max.Z) / 2,
	}
}

// Center returns the volumetric center of the bounds.
func (b Bounds) Center() Point {
	return BoxCentroid(b.Min, b.Max)
}

// Intersect returns the overlap of two bounds and whether they overlap at
// all. Touching faces count as overlapping.
func (b Bounds) Intersect(o Bounds) (Bounds, bool) {
	min := b.Min.Max(o.Min)
	max := b.Max.Min(o.Max)
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return Bounds{}, false
	}
	return Bounds{Min: min, Max: max}, true
}
