package wave

// VisibleIndexes returns the elements of revealed that fall inside the
// half-open range [start, end), in their original order.
//
// revealed is never modified. When start >= end no value can satisfy both
// bounds and the result is an empty, non-nil slice.
func VisibleIndexes(start, end int, revealed []int) []int {
	if start >= end {
		return []int{}
	}

	// end-start overflows for wide ranges; it only narrows the capacity when positive.
	capacity := len(revealed)
	if span := end - start; span > 0 && span < capacity {
		capacity = span
	}
	visible := make([]int, 0, capacity)
	for _, idx := range revealed {
		if idx >= start && idx < end {
			visible = append(visible, idx)
		}
	}
	return visible
}
