package blend

import (
	"runtime"
	"sync"
)

// parallelRows splits the half-open row range [0, rows) across worker
// goroutines and blocks until all are done. Safe only for loops with no
// cross-pixel data dependency; used purely for throughput.
func parallelRows(rows int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}

	workers := runtime.NumCPU()

	if workers > rows {
		workers = rows
	}

	if workers <= 1 {
		fn(0, rows)
		return
	}

	chunk := (rows + workers - 1) / workers

	var wg sync.WaitGroup

	for y0 := 0; y0 < rows; y0 += chunk {
		y1 := min(y0+chunk, rows)

		wg.Add(1)

		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}

	wg.Wait()
}
