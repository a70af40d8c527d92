package integrator

import (
	"runtime"
	"sync"
)

// parallelDegree mirrors the teacher's Euler.SetParallelDegree: NumCPU
// goroutines by default, clamped so a small unit of work never spins up more
// workers than there are items (model_problems/Euler2D/parallelism.go).
func parallelDegree(n int) int {
	d := runtime.NumCPU()
	if d > n {
		d = n
	}
	if d < 1 {
		d = 1
	}
	return d
}

// parallelFor runs fn(i) for every i in [0,n), fanned out across a bounded
// pool of goroutines and joined with a sync.WaitGroup — the same
// wg.Add/go func/wg.Done shape the teacher's RungeKutta4SSP.Step uses to
// shard each stage across Partitions.ParallelDegree goroutines. Every line a
// single sweepAxis call processes touches a disjoint set of cell indices, so
// concurrent calls to fn never race on the shared divergence arrays.
func parallelFor(n int, fn func(i int)) {
	workers := parallelDegree(n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	work := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		work <- i
	}
	close(work)
	wg.Wait()
}
