package wave

import "math"

// saturatingAdd returns a+b clamped to the int range.
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	default:
		return a + b
	}
}

// saturatingSub returns a-b floored at zero and capped at math.MaxInt.
func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	if b < 0 && a > math.MaxInt+b {
		return math.MaxInt
	}
	return a - b
}
