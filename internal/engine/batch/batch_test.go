package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)

		var offsets []int
		var processed int
		callback := func(_ context.Context, batch []int, offset int) error {
			offsets = append(offsets, offset)
			processed += len(batch)
			assert.Equal(t, offset, batch[0])
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback))
		assert.Equal(t, 25, processed)
		assert.Equal(t, []int{0, 10, 20}, offsets)
	})

	t.Run("Concurrent", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		var processed int32

		callback := func(_ context.Context, batch []int, _ int) error {
			atomic.AddInt32(&processed, int32(len(batch)))
			return nil
		}

		require.NoError(t, p.ProcessConcurrent(context.Background(), items, callback, 2))
		assert.Equal(t, int32(25), processed)
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)
		callback := func(_ context.Context, _ []int, offset int) error {
			if offset == 10 {
				return errors.New("fail")
			}
			return nil
		}

		err = p.Process(context.Background(), items, callback)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch 1 failed")
	})

	t.Run("ConcurrentErrorsJoined", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		sentinel := errors.New("odd batch")
		var ran int32
		callback := func(_ context.Context, _ []int, offset int) error {
			atomic.AddInt32(&ran, 1)
			if (offset/5)%2 == 1 {
				return sentinel
			}
			return nil
		}

		err = p.ProcessConcurrent(context.Background(), items, callback, 3)
		require.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "batch 1 failed")
		assert.Contains(t, err.Error(), "batch 3 failed")
		assert.Equal(t, int32(5), ran)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrEmptyItems, p.Process(context.Background(), nil, nil))
	})

	t.Run("NilCallback", func(t *testing.T) {
		p := NewProcessorWithDefaults[int]()
		assert.Equal(t, ErrNilCallback, p.Process(context.Background(), items, nil))
	})

	t.Run("InvalidBatchSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		require.ErrorIs(t, err, ErrInvalidBatchSize)
		_, err = NewProcessor[int](2000)
		require.ErrorIs(t, err, ErrInvalidBatchSize)
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		callback := func(context.Context, []int, int) error { return nil }
		require.ErrorIs(t, p.Process(ctx, items, callback), context.Canceled)
		require.ErrorIs(t, p.ProcessConcurrent(ctx, items, callback, 2), context.Canceled)
	})
}

func TestProcessor_Progress(t *testing.T) {
	items := make([]string, 7)

	var mu sync.Mutex
	var snapshots []ProgressSnapshot
	p, err := NewProcessor[string](3)
	require.NoError(t, err)
	p.WithProgressCallback(func(s ProgressSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, s)
	})

	require.NoError(t, p.Process(context.Background(), items, func(context.Context, []string, int) error {
		return nil
	}))

	require.Len(t, snapshots, 3)
	last := snapshots[2]
	assert.Equal(t, 7, last.ProcessedItems)
	assert.Equal(t, 3, last.ProcessedBatches)
	assert.Equal(t, 3, last.TotalBatches)
	assert.InDelta(t, 100.0, last.PercentComplete, 0.001)
	assert.True(t, last.Complete())
	assert.False(t, snapshots[0].Complete())
}

func TestProcessor_Bounds(t *testing.T) {
	p, err := NewProcessor[int](4)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 4}, {4, 8}, {8, 10}}, p.Bounds(10))
	assert.Empty(t, p.Bounds(0))
	assert.Equal(t, 4, p.BatchSize())
}
