package wave_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/renderwave/internal/wave"
)

// TestSnapToBatchOffset tests rounding to the nearest batch boundary.
func TestSnapToBatchOffset(t *testing.T) {
	tests := []struct {
		name       string
		scrollTop  int
		itemHeight int
		batchSize  int
		want       int
	}{
		{name: "worked example", scrollTop: 55, itemHeight: 10, batchSize: 5, want: 50},
		{name: "zero offset", scrollTop: 0, itemHeight: 10, batchSize: 5, want: 0},
		{name: "just below half rounds down", scrollTop: 24, itemHeight: 10, batchSize: 5, want: 0},
		{name: "exact half rounds up", scrollTop: 25, itemHeight: 10, batchSize: 5, want: 50},
		{name: "already aligned", scrollTop: 100, itemHeight: 10, batchSize: 5, want: 100},
		{name: "large offset", scrollTop: 1234, itemHeight: 45, batchSize: 20, want: 900},
		{name: "batch of one", scrollTop: 17, itemHeight: 10, batchSize: 1, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wave.SnapToBatchOffset(tt.scrollTop, tt.itemHeight, tt.batchSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSnapToBatchOffset_ZeroBatchPixelSize verifies the division-by-zero guard.
func TestSnapToBatchOffset_ZeroBatchPixelSize(t *testing.T) {
	tests := []struct {
		name       string
		itemHeight int
		batchSize  int
	}{
		{name: "zero item height", itemHeight: 0, batchSize: 5},
		{name: "zero batch size", itemHeight: 10, batchSize: 0},
		{name: "both zero", itemHeight: 0, batchSize: 0},
		{name: "negative item height", itemHeight: -1, batchSize: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wave.SnapToBatchOffset(55, tt.itemHeight, tt.batchSize)
			require.ErrorIs(t, err, wave.ErrZeroBatchPixelSize)
			assert.Zero(t, got)
		})
	}
}

// TestSnapToBatchOffset_NegativeOffset verifies negative scroll offsets are rejected.
func TestSnapToBatchOffset_NegativeOffset(t *testing.T) {
	_, err := wave.SnapToBatchOffset(-1, 10, 5)
	require.ErrorIs(t, err, wave.ErrNegativeOffset)
}

// TestSnapToBatchOffset_AlignedAndIdempotent checks alignment and idempotence over a sweep.
func TestSnapToBatchOffset_AlignedAndIdempotent(t *testing.T) {
	for _, dims := range [][2]int{{10, 5}, {45, 20}, {1, 1}, {7, 3}} {
		h, b := dims[0], dims[1]
		for scrollTop := 0; scrollTop < 2000; scrollTop += 13 {
			got, err := wave.SnapToBatchOffset(scrollTop, h, b)
			require.NoError(t, err)
			assert.Zero(t, got%(h*b), "offset %d not aligned to %d", got, h*b)

			again, err := wave.SnapToBatchOffset(got, h, b)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		}
	}
}

// TestSnapToBatchOffset_Overflow verifies sizes whose products do not fit in an int.
func TestSnapToBatchOffset_Overflow(t *testing.T) {
	tests := []struct {
		name       string
		scrollTop  int
		itemHeight int
		batchSize  int
		wantErr    error
	}{
		{name: "batch pixel size wraps to zero", scrollTop: 100, itemHeight: 1 << 32, batchSize: 1 << 32, wantErr: wave.ErrBatchPixelSizeOverflow},
		{name: "batch pixel size wraps", scrollTop: 100, itemHeight: math.MaxInt, batchSize: 2, wantErr: wave.ErrBatchPixelSizeOverflow},
		{name: "half step overflows", scrollTop: math.MaxInt, itemHeight: 10, batchSize: 5, wantErr: wave.ErrOffsetOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got int
				err error
			)
			require.NotPanics(t, func() { got, err = wave.SnapToBatchOffset(tt.scrollTop, tt.itemHeight, tt.batchSize) })
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, got)
		})
	}

	got, err := wave.SnapToBatchOffset(math.MaxInt-25, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, (math.MaxInt/50)*50, got)

	got, err = wave.SnapToBatchOffset(7, math.MaxInt, 1)
	require.NoError(t, err)
	assert.Zero(t, got)
}
