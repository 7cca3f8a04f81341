package util

import "runtime"

// PoolSize returns the parser pool size for CPU-bound parse work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// The 2× factor allows parallelism while goroutines are blocked inside
// CGO calls; the bounds keep weak machines responsive and cap memory on
// high-core machines.
func PoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// PoolSizeWithOverride returns the pool size, honoring an explicit override.
// An override of 0 means "use the CPU-based default".
func PoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return PoolSize()
}
