package wave

import (
	"context"
	"fmt"
	"time"
)

// Wave reveals the indexes of a list of length items in batches, so a host
// can render the head of a large list first and fill the rest in over time.
//
// A Wave is not safe for concurrent use; hosts step it from a single loop.
type Wave struct {
	length    int
	batchSize int
	count     int
}

// NewWave creates a wave whose first batch covers [0, startIndex+batchSize).
func NewWave(length, batchSize, startIndex int) (*Wave, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	length = max(length, 0)
	startIndex = max(startIndex, 0)

	return &Wave{
		length:    length,
		batchSize: batchSize,
		count:     min(saturatingAdd(startIndex, batchSize), length),
	}, nil
}

// Step reveals the next batch. It reports whether the revealed count grew.
func (w *Wave) Step() bool {
	next := min(saturatingAdd(w.count, w.batchSize), w.length)
	if next == w.count {
		return false
	}
	w.count = next
	return true
}

// Count returns the number of revealed indexes.
func (w *Wave) Count() int {
	return w.count
}

// Len returns the list length the wave was built for.
func (w *Wave) Len() int {
	return w.length
}

// Done reports whether every index has been revealed.
func (w *Wave) Done() bool {
	return w.count >= w.length
}

// IsRevealed reports whether index i has been revealed.
func (w *Wave) IsRevealed(i int) bool {
	return i >= 0 && i < w.count
}

// Revealed returns the revealed indexes in ascending order.
func (w *Wave) Revealed() []int {
	out := make([]int, w.count)
	for i := range out {
		out[i] = i
	}
	return out
}

// Run steps the wave every interval until it is done or ctx is cancelled.
// onStep is called after each step that revealed new indexes.
func (w *Wave) Run(ctx context.Context, interval time.Duration, onStep func(count int)) error {
	if w.Done() {
		return nil
	}
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if w.Step() && onStep != nil {
				onStep(w.count)
			}
			if w.Done() {
				return nil
			}
		}
	}
}
