// Package batch runs an operation over an ordered item list under a
// bounded concurrency limit.
//
// Items are partitioned into ceil(N/L) sequential batches of at most L.
// Every item in a batch starts concurrently; the next batch starts only
// after the whole current batch has settled. Results come back as one
// flat slice in the original item order.
package batch

import (
	"fmt"
	"log/slog"
	"sync"
)

// DefaultLimit is the concurrency limit used when the caller passes 0.
const DefaultLimit = 10

// Run applies fn to every item and returns the results in item order.
//
// A panic inside fn is absorbed: the item's result stays at its zero
// value and sibling items and later batches are unaffected. fn itself is
// expected to fold recoverable errors into its result type.
func Run[T, R any](items []T, limit int, fn func(T) R, logger *slog.Logger) []R {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]R, len(items))
	for start := 0; start < len(items); start += limit {
		end := start + limit
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						logger.Error("batch item panicked",
							"index", i, "panic", fmt.Sprint(rec))
					}
				}()
				results[i] = fn(items[i])
			}(i)
		}
		wg.Wait()
	}
	return results
}

// Flatten concatenates per-item result slices into one flat list,
// preserving item order.
func Flatten[R any](grouped [][]R) []R {
	total := 0
	for _, g := range grouped {
		total += len(g)
	}
	flat := make([]R, 0, total)
	for _, g := range grouped {
		flat = append(flat, g...)
	}
	return flat
}
