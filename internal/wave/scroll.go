package wave

// NavKey is a symbolic navigation key name as delivered by the host's
// keyboard events.
type NavKey string

// Recognized navigation keys. Any other key leaves the scroll offset unchanged.
const (
	KeyPageDown  NavKey = "PageDown"
	KeyPageUp    NavKey = "PageUp"
	KeyArrowDown NavKey = "ArrowDown"
	KeyArrowUp   NavKey = "ArrowUp"
	KeyHome      NavKey = "Home"
	KeyEnd       NavKey = "End"
)

// navKeys lists the closed key set in a stable order.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var navKeys = []NavKey{KeyPageDown, KeyPageUp, KeyArrowDown, KeyArrowUp, KeyHome, KeyEnd}

// NavKeys returns the recognized navigation keys.
func NavKeys() []NavKey {
	out := make([]NavKey, len(navKeys))
	copy(out, navKeys)
	return out
}

// ParseNavKey reports whether name is one of the recognized navigation keys.
// Matching is exact; host key names are case sensitive.
func ParseNavKey(name string) (NavKey, bool) {
	for _, k := range navKeys {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// ComputeScrollTarget returns the scroll offset that results from pressing key.
//
//	PageDown   min(current+containerHeight, maxScroll)
//	PageUp     max(current-containerHeight, 0)
//	ArrowDown  min(current+itemHeight, maxScroll)
//	ArrowUp    max(current-itemHeight, 0)
//	Home       0
//	End        maxScroll
//	other      current
//
// Subtraction saturates at zero and addition at math.MaxInt.
func ComputeScrollTarget(key string, current, containerHeight, itemHeight, maxScroll int) int {
	switch NavKey(key) {
	case KeyPageDown:
		return min(saturatingAdd(current, containerHeight), maxScroll)
	case KeyPageUp:
		return saturatingSub(current, containerHeight)
	case KeyArrowDown:
		return min(saturatingAdd(current, itemHeight), maxScroll)
	case KeyArrowUp:
		return saturatingSub(current, itemHeight)
	case KeyHome:
		return 0
	case KeyEnd:
		return maxScroll
	default:
		return current
	}
}
