package wave

import (
	"fmt"
	"math"
	"sort"
)

// Layout holds the vertical geometry of a list whose items default to a
// fixed height but may carry measured heights.
type Layout struct {
	// offsets[i] is the top of item i; offsets[count] is the total height.
	offsets []int
}

// Window is a half-open range [Start, End) of item indexes.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indexes in the window.
func (w Window) Len() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// Contains reports whether i lies inside the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// MaxLayoutItems bounds the number of items a Layout holds; the prefix offsets
// take one int per item.
const MaxLayoutItems = 1 << 24

// NewLayout builds a layout for count items of defaultHeight pixels.
// measured overrides the height of individual items; entries outside
// [0, count) are ignored.
func NewLayout(count, defaultHeight int, measured map[int]int) (*Layout, error) {
	if defaultHeight <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidItemHeight, defaultHeight)
	}
	if count < 0 {
		count = 0
	}
	if count > MaxLayoutItems {
		return nil, fmt.Errorf("%w: %d > %d", ErrLayoutTooLarge, count, MaxLayoutItems)
	}

	offsets := make([]int, count+1)
	for i := range count {
		h := defaultHeight
		if m, ok := measured[i]; ok {
			if m < 0 {
				return nil, fmt.Errorf("%w: item %d measured %d", ErrInvalidItemHeight, i, m)
			}
			h = m
		}
		if h > math.MaxInt-offsets[i] {
			return nil, fmt.Errorf("%w: total height at item %d", ErrOffsetOverflow, i)
		}
		offsets[i+1] = offsets[i] + h
	}

	return &Layout{offsets: offsets}, nil
}

// Count returns the number of items.
func (l *Layout) Count() int {
	return len(l.offsets) - 1
}

// OffsetForIndex returns the top pixel of item i, clamped to the list bounds.
func (l *Layout) OffsetForIndex(i int) int {
	switch {
	case i <= 0:
		return 0
	case i >= l.Count():
		return l.TotalHeight()
	default:
		return l.offsets[i]
	}
}

// HeightOf returns the height of item i, or 0 when i is out of range.
func (l *Layout) HeightOf(i int) int {
	if i < 0 || i >= l.Count() {
		return 0
	}
	return l.offsets[i+1] - l.offsets[i]
}

// TotalHeight returns the summed height of all items.
func (l *Layout) TotalHeight() int {
	return l.offsets[len(l.offsets)-1]
}

// MaxScroll returns the largest scroll offset for a container of the given height.
func (l *Layout) MaxScroll(containerHeight int) int {
	return max(l.TotalHeight()-max(containerHeight, 0), 0)
}

// firstBottomAfter returns the first item whose bottom edge lies below px,
// or Count() when no such item exists.
func (l *Layout) firstBottomAfter(px int) int {
	return sort.Search(l.Count(), func(i int) bool {
		return l.offsets[i+1] > px
	})
}

// IndexAtOffset returns the item whose span contains px. Offsets above the
// list map to 0 and offsets past the end map to the last item. An empty list
// returns 0.
func (l *Layout) IndexAtOffset(px int) int {
	if l.Count() == 0 || px <= 0 {
		return 0
	}
	return min(l.firstBottomAfter(px), l.Count()-1)
}

// Window returns the items to render for a viewport starting at scrollTop,
// widened by overscan items on each side.
func (l *Layout) Window(scrollTop, containerHeight, overscan int) Window {
	count := l.Count()
	if count == 0 {
		return Window{}
	}
	overscan = max(overscan, 0)

	start := max(l.IndexAtOffset(scrollTop)-overscan, 0)

	end := count
	bottom := saturatingAdd(scrollTop, max(containerHeight, 1)-1)
	if last := l.firstBottomAfter(bottom); last < count {
		end = min(saturatingAdd(last+1, overscan), count)
	}

	return Window{Start: start, End: end}
}

// CurrentGroup returns the label of the item at the top of the viewport.
// It reports false when scrollTop is past the content or labels does not
// cover that item.
func CurrentGroup(layout *Layout, labels []string, scrollTop int) (string, bool) {
	if layout == nil || layout.Count() == 0 || scrollTop >= layout.TotalHeight() {
		return "", false
	}
	i := layout.IndexAtOffset(scrollTop)
	if i >= len(labels) {
		return "", false
	}
	return labels[i], true
}
