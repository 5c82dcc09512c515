// Package hierarchical implements the Hierarchical Threshold Driver: it
// runs a connected-components engine across an ascending sequence of
// thresholds, reusing each level's stable clusters so only vertices
// whose cluster membership could still change are recomputed at the
// next, stricter threshold (spec component E).
//
// Grounded on `hierarchical.py`'s representatives/updated_representatives
// rebuild loop for the per-level engine call, generalised here to run
// once per threshold instead of once overall, plus a stability
// certificate step with no direct analogue in that script — it is
// derived from spec.md §4.E's correctness argument.
package hierarchical

import (
	"fmt"

	"github.com/RobinL/clustergraph/activeset"
	"github.com/RobinL/clustergraph/core"
	"github.com/RobinL/clustergraph/lpuf"
	"github.com/RobinL/clustergraph/rpc"
)

// Run computes, for every threshold in thresholds (which must be
// strictly ascending), a labelling equivalent to calling the selected
// engine once at that threshold alone — but levels after the first
// only recompute vertices whose cluster is not certified stable at the
// new threshold (spec §4.E).
func Run(vertices []core.Vertex, edges []core.Edge, thresholds []float64, opts ...Option) ([]LevelResult, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(thresholds) == 0 {
		return nil, ErrEmptyThresholds
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, ErrThresholdsNotAscending
		}
	}

	results := make([]LevelResult, 0, len(thresholds))

	n0, err := core.Prepare(vertices, edges, thresholds[0], false)
	if err != nil {
		return nil, err
	}
	labels, iterations0, err := o.runEngine(n0)
	if err != nil {
		return nil, fmt.Errorf("level 0 (tau=%v): %w", thresholds[0], err)
	}
	o.logger.Debug().Float64("threshold", thresholds[0]).Int("vertices", len(vertices)).Msg("hierarchical: level 0 computed from scratch")
	results = append(results, LevelResult{Threshold: thresholds[0], Labels: labels, InPlayCount: len(vertices), Iterations: iterations0})

	labelBase := maxLabel(labels) + 1

	prev := labels
	for j := 1; j < len(thresholds); j++ {
		select {
		case <-o.ctx.Done():
			return nil, o.ctx.Err()
		default:
		}

		tau := thresholds[j]
		stable := stabilityCertificate(edges, prev, tau, o.strictStability)

		stableNodes := make(map[int64]bool, len(prev))
		for uid, cluster := range prev {
			if stable[cluster] {
				stableNodes[uid] = true
			}
		}

		var inPlayVerts []core.Vertex
		for _, v := range vertices {
			if !stableNodes[v.UID] {
				inPlayVerts = append(inPlayVerts, v)
			}
		}
		var inPlayEdges []core.Edge
		for _, e := range edges {
			if !stableNodes[e.UIDL] && !stableNodes[e.UIDR] {
				inPlayEdges = append(inPlayEdges, e)
			}
		}

		next := make(map[int64]int64, len(prev))
		for uid := range stableNodes {
			next[uid] = prev[uid]
		}

		var levelIterations int
		if len(inPlayVerts) > 0 {
			nj, err := core.Prepare(inPlayVerts, inPlayEdges, tau, false)
			if err != nil {
				return nil, err
			}
			var partial map[int64]int64
			partial, levelIterations, err = o.runEngine(nj)
			if err != nil {
				return nil, fmt.Errorf("level %d (tau=%v): %w", j, tau, err)
			}
			if o.engine == RPC {
				base := labelBase
				labelBase = base + maxLabel(partial) + 1
				partial = offsetLabels(partial, base)
			}
			for uid, lbl := range partial {
				next[uid] = lbl
			}
		}

		o.logger.Debug().Float64("threshold", tau).Int("stable", len(stableNodes)).Int("in_play", len(inPlayVerts)).Msg("hierarchical: level computed")
		o.recorder.Iteration("hierarchical", len(inPlayVerts))

		results = append(results, LevelResult{
			Threshold:   tau,
			Labels:      next,
			StableCount: len(stableNodes),
			InPlayCount: len(inPlayVerts),
			Iterations:  levelIterations,
		})
		prev = next
	}

	return results, nil
}

// runEngine dispatches to the configured connected-components engine,
// also returning its iteration (or, for RPC, contraction level) count.
func (o options) runEngine(n *core.Neighbors) (map[int64]int64, int, error) {
	switch o.engine {
	case ActiveSet:
		labels, stats, err := activeset.Run(n, activeset.WithContext(o.ctx), activeset.WithLogger(o.logger), activeset.WithRecorder(o.recorder), activeset.WithMaxIterations(o.maxIterations))
		return labels, stats.Iterations, err
	case RPC:
		labels, stats, err := rpc.Run(n, rpc.WithContext(o.ctx), rpc.WithLogger(o.logger), rpc.WithSeed(o.seed), rpc.WithRecorder(o.recorder))
		return labels, stats.Levels, err
	default:
		labels, stats, err := lpuf.Run(n, lpuf.WithContext(o.ctx), lpuf.WithLogger(o.logger), lpuf.WithRecorder(o.recorder), lpuf.WithMaxIterations(o.maxIterations))
		return labels, stats.Iterations, err
	}
}

// stabilityCertificate computes, for every cluster label appearing in
// labels, whether every edge strictly inside that cluster has
// probability >= tau (or > tau under strictStability). Clusters with
// no internal edges are trivially stable, matching the synthetic
// (v,v,1.0) self-loop spec §4.E credits for singleton stability.
func stabilityCertificate(edges []core.Edge, labels map[int64]int64, tau float64, strict bool) map[int64]bool {
	minProb := make(map[int64]float64)
	for _, cluster := range labels {
		minProb[cluster] = 1.0
	}
	for _, e := range edges {
		if e.UIDL == e.UIDR {
			continue
		}
		lc, lok := labels[e.UIDL]
		rc, rok := labels[e.UIDR]
		if !lok || !rok || lc != rc {
			continue
		}
		if e.MatchProbability < minProb[lc] {
			minProb[lc] = e.MatchProbability
		}
	}

	stable := make(map[int64]bool, len(minProb))
	for cluster, m := range minProb {
		if strict {
			stable[cluster] = m > tau
		} else {
			stable[cluster] = m >= tau
		}
	}
	return stable
}

func maxLabel(labels map[int64]int64) int64 {
	var max int64
	first := true
	for _, l := range labels {
		if first || l > max {
			max = l
			first = false
		}
	}
	return max
}

func offsetLabels(labels map[int64]int64, base int64) map[int64]int64 {
	out := make(map[int64]int64, len(labels))
	for uid, l := range labels {
		out[uid] = l + base
	}
	return out
}
