package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSizeBounds(t *testing.T) {
	size := PoolSize()
	assert.GreaterOrEqual(t, size, 4, "Pool size should never drop below the floor")
	assert.LessOrEqual(t, size, 32, "Pool size should never exceed the ceiling")
}

func TestPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 7, PoolSizeWithOverride(7), "A positive override wins")
	assert.Equal(t, PoolSize(), PoolSizeWithOverride(0), "Zero means the CPU-based default")
	assert.Equal(t, PoolSize(), PoolSizeWithOverride(-3), "Negative values fall back to the default")
}
