package wave_test

import (
	"encoding/json"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/renderwave/internal/wave"
)

// TestGroupIndexes tests first-occurrence grouping.
func TestGroupIndexes(t *testing.T) {
	idx := wave.GroupIndexes([]string{"a", "b", "a", "c"})

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"a", "b", "c"}, idx.Keys())
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 3}, maps.Collect(idx.All()))

	i, ok := idx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = idx.Get("z")
	assert.False(t, ok)
	assert.False(t, idx.Has("z"))
}

// TestGroupIndexes_Empty tests an empty label sequence.
func TestGroupIndexes_Empty(t *testing.T) {
	idx := wave.GroupIndexes(nil)
	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.Keys())

	data, err := json.Marshal(idx)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

// TestGroupOptionalIndexes tests that missing labels group under DefaultLabel.
func TestGroupOptionalIndexes(t *testing.T) {
	a, b := "a", "b"
	empty := ""
	idx := wave.GroupOptionalIndexes([]*string{nil, &a, &empty, &b, nil})

	assert.Equal(t, []string{wave.DefaultLabel, "a", "b"}, idx.Keys())
	i, ok := idx.Get(wave.DefaultLabel)
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

// TestLabelIndex_AllOrder tests iteration order and early termination.
func TestLabelIndex_AllOrder(t *testing.T) {
	idx := wave.GroupIndexes([]string{"z", "y", "z", "x", "y", "w"})

	var keys []string
	var values []int
	for k, v := range idx.All() {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []string{"z", "y", "x", "w"}, keys)
	assert.Equal(t, []int{0, 1, 3, 5}, values)

	seen := 0
	for range idx.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

// TestLabelIndex_MarshalJSON verifies keys are emitted in first-appearance order.
func TestLabelIndex_MarshalJSON(t *testing.T) {
	idx := wave.GroupIndexes([]string{"zeta", "alpha", "zeta", `q"uote`})

	data, err := json.Marshal(idx)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":0,"alpha":1,"q\"uote":3}`, string(data))
}

// TestLabelIndex_KeysIsCopy verifies callers cannot mutate internal order.
func TestLabelIndex_KeysIsCopy(t *testing.T) {
	idx := wave.GroupIndexes([]string{"a", "b"})
	keys := idx.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, idx.Keys())
}
