package geom

// ClearancePair is the result of a nearest-pair search between two point
// sets.
type ClearancePair struct {
	Distance float64 `json:"distance"`
	A        Point   `json:"a"`
	B        Point   `json:"b"`
}

// MinClearance finds the closest pair of points between setA and setB by
// brute force. The sets are bound samples of two scene objects (corners,
// face centers) and stay in the tens of points, so the O(|A|·|B|) scan is
// fine and a spatial index would be overkill. Returns false when either set
// is empty or contains no valid points.
func MinClearance(setA, setB []Point) (ClearancePair, bool) {
	best := ClearancePair{}
	found := false
	for _, a := range setA {
		if !a.Valid() {
			continue
		}
		for _, b := range setB {
			if !b.Valid() {
				continue
			}
			d := Distance3D(a, b)
			if !found || d < best.Distance {
				best = ClearancePair{Distance: d, A: a, B: b}
				found = true
			}
		}
	}
	return best, found
}
