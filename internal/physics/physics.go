// Package physics provides the proximity test used by the collision engine
// and a broad-phase grid to narrow candidate pairs.
package physics

import "math"

// BoxesOverlap reports whether two entities are "too close": both axis
// distances are below the sum of radii. This is a square approximation
// of a circle test, not a Euclidean distance check.
func BoxesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	reach := r1 + r2
	return math.Abs(x1-x2) < reach && math.Abs(y1-y2) < reach
}
