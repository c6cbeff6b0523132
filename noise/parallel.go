package noise

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum row count to split work across goroutines.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 32

// workChunk represents a range of rows for a worker to process.
type workChunk struct {
	start, end int
}

// forEachRows calls fn over disjoint [start, end) row ranges covering
// [0, n). Workers <= 0 uses GOMAXPROCS. fn must only write rows it was given.
func forEachRows(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n < parallelThreshold {
		fn(0, n)
		return
	}

	workChan := make(chan workChunk, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range workChan {
				fn(chunk.start, chunk.end)
			}
		}()
	}

	chunkSize := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		workChan <- workChunk{start: start, end: end}
	}
	close(workChan)
	wg.Wait()
}
