// Package lpuf implements the Label-Propagation Union-Find engine: the
// base connected-components primitive every other engine in this module
// builds on (spec component B). It labels each vertex with the minimum
// vertex uid in its component by iterating a bulk-synchronous
// min-over-neighbours sweep to a fixed point.
//
// Grounded on the original `union_find.py` prototype's table-rebuild
// loop: "representatives" becomes a pre-allocated []int64 buffer,
// "updated_representatives" its double-buffer twin, and the
// DROP TABLE / ALTER TABLE RENAME idiom becomes a pointer swap between
// the two (spec §9, "representative-table rename idiom").
package lpuf

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RobinL/clustergraph/core"
)

const engineName = "lpuf"

// Run computes, for every vertex in n, the uid of the minimum-id vertex
// reachable through n (spec §4.B). The returned map is uid -> label.
//
// Errors: ErrIterationBudgetExceeded (as a *BudgetExceededError) if the
// fixed point is not reached within MaxIterations; ErrEngineFailure if an
// internal monotonicity invariant is violated; ctx.Err() if the supplied
// context is cancelled between iterations.
func Run(n *core.Neighbors, opts ...Option) (map[int64]int64, Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	size := n.Len()
	if size == 0 {
		return map[int64]int64{}, Stats{}, nil
	}

	cur := make([]int64, size)
	next := make([]int64, size)

	// Initialise: rep(v) := min{u : (v,u) ∈ N_τ}. The self-loop guarantees
	// at least one term, so cur[v] <= n.UID(v) always holds (invariant 4).
	parallelFor(size, func(v int) {
		m := n.UID(int32(v))
		for _, nb := range n.NeighborIndices(int32(v)) {
			if u := n.UID(nb); u < m {
				m = u
			}
		}
		cur[v] = m
	})

	prevSum := sumOf(cur)
	iterations := 0
	for {
		select {
		case <-o.ctx.Done():
			return nil, Stats{Iterations: iterations}, o.ctx.Err()
		default:
		}

		var changes int64
		parallelFor(size, func(v int) {
			m := cur[v]
			for _, nb := range n.NeighborIndices(int32(v)) {
				if r := cur[nb]; r < m {
					m = r
				}
			}
			next[v] = m
			if m != cur[v] {
				addInt64(&changes, 1)
			}
		})

		iterations++
		o.logger.Debug().Int("iteration", iterations).Int64("changes", changes).Msg("lpuf: sweep complete")
		o.recorder.Iteration(engineName, int(changes))

		cur, next = next, cur

		nextSum := sumOf(cur)
		if nextSum > prevSum {
			return nil, Stats{Iterations: iterations}, fmt.Errorf("%w: representative sum increased from %d to %d", ErrEngineFailure, prevSum, nextSum)
		}
		prevSum = nextSum

		if changes == 0 {
			break
		}
		if iterations >= o.maxIterations {
			last := make(map[int64]int64, size)
			for v := 0; v < size; v++ {
				last[n.UID(int32(v))] = cur[v]
			}
			return nil, Stats{Iterations: iterations}, &BudgetExceededError{Iterations: iterations, LastRepresentatives: last}
		}
	}

	out := make(map[int64]int64, size)
	for v := 0; v < size; v++ {
		out[n.UID(int32(v))] = cur[v]
	}
	return out, Stats{Iterations: iterations}, nil
}

// parallelFor applies fn to every index in [0,size) across a worker pool
// sized to GOMAXPROCS, then blocks until all workers finish — the
// "within an iteration the substrate is free to parallelise, the
// iteration boundary is a hard synchronisation point" model of spec §5.
func parallelFor(size int, fn func(int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > size {
		workers = size
	}
	if workers <= 1 {
		for i := 0; i < size; i++ {
			fn(i)
		}
		return
	}

	chunk := (size + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= size {
			break
		}
		if end > size {
			end = size
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

func sumOf(rep []int64) int64 {
	var s int64
	for _, r := range rep {
		s += r
	}
	return s
}

func addInt64(addr *int64, delta int64) {
	atomic.AddInt64(addr, delta)
}
