package ledger

import "math"

// Clamp bounds v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPercent bounds v to [0, 100].
func ClampPercent(v float64) float64 {
	return Clamp(v, 0, 100)
}

// FloorZero raises negative values (and NaN) to zero.
func FloorZero(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// FloorZeroInt raises negative amounts to zero.
func FloorZeroInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
