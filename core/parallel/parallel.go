// Package parallel splits an index range [0, n) into contiguous chunks
// processed on separate goroutines. Callers write only into the indices of
// their own chunk, so the final wait is the only synchronization.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the item count at or below which work stays on the
// calling goroutine. stats.ZScores, linear.PredictBatch and the scalers use it.
const DefaultThreshold = 1000

// Parallelize runs fn over GOMAXPROCS contiguous chunks of [0, items) and
// waits for all of them.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), items)
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < items; lo += chunk {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, min(lo+chunk, items))
	}
	wg.Wait()
}

// ParallelizeWithThreshold calls fn(0, items) directly when items <= threshold.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
