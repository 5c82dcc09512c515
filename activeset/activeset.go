// Package activeset implements the Active-Set Engine: an LPUF variant
// that restricts each iteration's recompute sweep to vertices whose
// label may still change (spec component C), cutting per-iteration cost
// once most of the graph has stabilised.
//
// Grounded on `union_find_with_active.py`'s active-flag representative
// table, with one deliberate correction (spec §9, Open Question 1): the
// original only recomputes a vertex when the vertex itself was active in
// the prior iteration ("WHERE r1.active = TRUE"), which misses updates
// that should propagate from an active neighbour into an otherwise
// stable vertex. This implementation recomputes whenever the vertex
// itself OR any of its neighbours was active, the variant spec.md names
// as correct.
package activeset

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RobinL/clustergraph/core"
)

const engineName = "activeset"

// Run computes the same min-uid labelling as lpuf.Run but, after the
// first iteration, recomputes only vertices that are active or have an
// active neighbour (spec §4.C).
func Run(n *core.Neighbors, opts ...Option) (map[int64]int64, Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	size := n.Len()
	if size == 0 {
		return map[int64]int64{}, Stats{}, nil
	}

	curRep := make([]int64, size)
	nextRep := make([]int64, size)
	curActive := make([]bool, size)
	nextActive := make([]bool, size)

	// Initialise rep(v) exactly as lpuf does; every vertex starts active
	// so the first sweep evaluates the whole graph, same as LPUF's first pass.
	parallelFor(size, func(v int) {
		m := n.UID(int32(v))
		for _, nb := range n.NeighborIndices(int32(v)) {
			if u := n.UID(nb); u < m {
				m = u
			}
		}
		curRep[v] = m
		curActive[v] = true
	})

	prevSum := sumOf(curRep)
	iterations := 0
	for {
		select {
		case <-o.ctx.Done():
			return nil, Stats{Iterations: iterations}, o.ctx.Err()
		default:
		}

		var activeCount int64
		parallelFor(size, func(v int) {
			nbs := n.NeighborIndices(int32(v))
			work := curActive[v]
			if !work {
				for _, nb := range nbs {
					if curActive[nb] {
						work = true
						break
					}
				}
			}
			if !work {
				nextRep[v] = curRep[v]
				nextActive[v] = false
				return
			}
			m := curRep[v]
			for _, nb := range nbs {
				if r := curRep[nb]; r < m {
					m = r
				}
			}
			nextRep[v] = m
			changed := m != curRep[v]
			nextActive[v] = changed
			if changed {
				atomic.AddInt64(&activeCount, 1)
			}
		})

		iterations++
		o.logger.Debug().Int("iteration", iterations).Int64("active", activeCount).Msg("activeset: sweep complete")
		o.recorder.Iteration(engineName, int(activeCount))
		o.recorder.ActiveSet(engineName, int(activeCount))

		curRep, nextRep = nextRep, curRep
		curActive, nextActive = nextActive, curActive

		nextSum := sumOf(curRep)
		if nextSum > prevSum {
			return nil, Stats{Iterations: iterations}, fmt.Errorf("%w: representative sum increased from %d to %d", ErrEngineFailure, prevSum, nextSum)
		}
		prevSum = nextSum

		if activeCount == 0 {
			break
		}
		if iterations >= o.maxIterations {
			last := make(map[int64]int64, size)
			for v := 0; v < size; v++ {
				last[n.UID(int32(v))] = curRep[v]
			}
			return nil, Stats{Iterations: iterations}, &BudgetExceededError{Iterations: iterations, LastRepresentatives: last}
		}
	}

	out := make(map[int64]int64, size)
	for v := 0; v < size; v++ {
		out[n.UID(int32(v))] = curRep[v]
	}
	return out, Stats{Iterations: iterations}, nil
}

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
