package batch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PreservesOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	results := Run(items, 7, func(i int) int { return i * 2 }, nil)

	require.Len(t, results, 100)
	for i, r := range results {
		assert.Equal(t, i*2, r)
	}
}

func TestRun_RespectsConcurrencyLimit(t *testing.T) {
	const limit = 5
	var current, peak atomic.Int32
	var mu sync.Mutex

	items := make([]int, 40)
	Run(items, limit, func(int) struct{} {
		n := current.Add(1)
		mu.Lock()
		if n > peak.Load() {
			peak.Store(n)
		}
		mu.Unlock()
		current.Add(-1)
		return struct{}{}
	}, nil)

	assert.LessOrEqual(t, peak.Load(), int32(limit))
}

func TestRun_EmptyInput(t *testing.T) {
	results := Run(nil, 10, func(int) int { return 1 }, nil)
	assert.Empty(t, results)
}

func TestRun_ZeroLimitUsesDefault(t *testing.T) {
	results := Run([]int{1, 2, 3}, 0, func(i int) int { return i }, nil)
	assert.Equal(t, []int{1, 2, 3}, results)
}

func TestRun_PanicAbsorbed(t *testing.T) {
	items := []int{0, 1, 2, 3}
	results := Run(items, 2, func(i int) int {
		if i == 1 {
			panic("boom")
		}
		return i + 10
	}, nil)

	require.Len(t, results, 4)
	assert.Equal(t, 10, results[0])
	assert.Equal(t, 0, results[1], "panicked item keeps its zero value")
	assert.Equal(t, 12, results[2])
	assert.Equal(t, 13, results[3])
}

func TestFlatten(t *testing.T) {
	grouped := [][]string{{"a", "b"}, nil, {"c"}}
	assert.Equal(t, []string{"a", "b", "c"}, Flatten(grouped))
	assert.Empty(t, Flatten[string](nil))
}
