package proj

import "math"

// DefaultGridSize is the snapping step in pixels used when none is configured.
const DefaultGridSize = 20.0

// Snap rounds px to the nearest multiple of grid. Values exactly halfway
// between two grid lines round towards positive infinity, so Snap(10, 20)
// is 20 and Snap(-10, 20) is 0.
//
// grid must be positive; callers validate it once at configuration time.
func Snap(px, grid float64) float64 {
	q := px / grid
	// q-Floor(q) is exact, unlike q+0.5
	n := math.Floor(q)
	if q-n >= 0.5 {
		n++
	}
	return n * grid
}
