// Package parallel schedules independent per-row work across goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Workers returns the number of goroutines Rows uses for n rows when asked
// for workers. Zero or negative workers means GOMAXPROCS.
func Workers(workers, n int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n))
}

// Rows calls fn once for every row in [0, n) and returns when all calls
// have finished.
//
// Rows are handed out one at a time from a shared counter, so a slow row
// never holds back the others. fn must be safe to call concurrently for
// different rows; calls happen in no particular order.
func Rows(n, workers int, fn func(row int)) {
	if n <= 0 {
		return
	}
	workers = Workers(workers, n)
	if workers == 1 {
		for row := range n {
			fn(row)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				row := int(next.Add(1) - 1)
				if row >= n {
					return
				}
				fn(row)
			}
		}()
	}
	wg.Wait()
}

// Chunks splits [0, n) into contiguous ranges of at most size rows and calls
// fn for each range concurrently. It suits work whose per-row cost is too
// small to schedule rows individually.
func Chunks(n, size, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if size <= 0 {
		size = 1
	}
	count := (n + size - 1) / size
	Rows(count, workers, func(i int) {
		lo := i * size
		fn(lo, min(lo+size, n))
	})
}
