// Package cluster is the external interface and configuration façade:
// it wires Graph Preparation, the three connected-components engines,
// the Hierarchical Threshold Driver, and the Validation Harness behind
// three calls, with functional options matching the style used by the
// engine packages (`lpuf.Option`, `rpc.Option`).
package cluster

import (
	"fmt"
	"time"

	"github.com/RobinL/clustergraph/activeset"
	"github.com/RobinL/clustergraph/core"
	"github.com/RobinL/clustergraph/hierarchical"
	"github.com/RobinL/clustergraph/lpuf"
	"github.com/RobinL/clustergraph/rpc"
	"github.com/RobinL/clustergraph/validate"
)

// Cluster computes a connected-components labelling of (v, e) at
// threshold using the configured engine (LPUF by default), returning
// the labelling plus summary statistics.
func Cluster(v []core.Vertex, e []core.Edge, threshold float64, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	n, err := core.Prepare(v, e, threshold, false)
	if err != nil {
		return Result{}, err
	}

	labels, iterations, err := runEngine(n, o)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}

	elapsed := time.Since(start)
	o.metrics.observeDuration("cluster", elapsed.Seconds())
	o.logger.Debug().Str("engine", o.engine.String()).Int("vertices", len(v)).Dur("elapsed", elapsed).Msg("cluster: Cluster complete")

	return Result{Labels: labels, Stats: statsFromLabels(labels, iterations, elapsed)}, nil
}

// ClusterHierarchical computes, for each threshold in thresholds
// (strictly ascending), a Result equivalent to calling Cluster once at
// that threshold alone, reusing certified-stable clusters across
// levels (spec §4.E).
func ClusterHierarchical(v []core.Vertex, e []core.Edge, thresholds []float64, opts ...Option) ([]Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()

	hopts := []hierarchical.Option{
		hierarchical.WithContext(o.ctx),
		hierarchical.WithLogger(o.logger),
		hierarchical.WithStrictStability(o.strictStability),
		hierarchical.WithMaxIterations(o.maxIterations),
		hierarchical.WithSeed(o.seed),
		hierarchical.WithEngine(toHierarchicalEngine(o.engine)),
	}
	if o.metrics != nil {
		hopts = append(hopts, hierarchical.WithRecorder(o.metrics))
	}

	levels, err := hierarchical.Run(v, e, thresholds, hopts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineFailure, err)
	}

	elapsed := time.Since(start)
	o.metrics.observeDuration("cluster_hierarchical", elapsed.Seconds())
	o.logger.Debug().Int("levels", len(levels)).Dur("elapsed", elapsed).Msg("cluster: ClusterHierarchical complete")

	results := make([]Result, len(levels))
	for i, lvl := range levels {
		results[i] = Result{Labels: lvl.Labels, Stats: statsFromLabels(lvl.Labels, lvl.Iterations, elapsed)}
	}
	return results, nil
}

// Validate cross-checks got against independent BFS, DFS, and
// disjoint-set reference traversals over (v, e) at threshold (spec
// §4.F).
func Validate(v []core.Vertex, e []core.Edge, threshold float64, got Result) (validate.Report, error) {
	n, err := core.Prepare(v, e, threshold, false)
	if err != nil {
		return validate.Report{}, err
	}
	return validate.Validate(n, got.Labels), nil
}

// runEngine dispatches to the configured connected-components engine
// and normalises each one's (labels, Stats, error) return shape.
func runEngine(n *core.Neighbors, o options) (map[int64]int64, int, error) {
	switch o.engine {
	case ActiveSet:
		asOpts := []activeset.Option{
			activeset.WithContext(o.ctx),
			activeset.WithLogger(o.logger),
			activeset.WithMaxIterations(o.maxIterations),
		}
		if o.metrics != nil {
			asOpts = append(asOpts, activeset.WithRecorder(o.metrics))
		}
		labels, stats, err := activeset.Run(n, asOpts...)
		return labels, stats.Iterations, err
	case RPC:
		rpcOpts := []rpc.Option{
			rpc.WithContext(o.ctx),
			rpc.WithLogger(o.logger),
			rpc.WithSeed(o.seed),
		}
		if o.metrics != nil {
			rpcOpts = append(rpcOpts, rpc.WithRecorder(o.metrics))
		}
		labels, stats, err := rpc.Run(n, rpcOpts...)
		return labels, stats.Levels, err
	default:
		lpOpts := []lpuf.Option{
			lpuf.WithContext(o.ctx),
			lpuf.WithLogger(o.logger),
			lpuf.WithMaxIterations(o.maxIterations),
		}
		if o.metrics != nil {
			lpOpts = append(lpOpts, lpuf.WithRecorder(o.metrics))
		}
		labels, stats, err := lpuf.Run(n, lpOpts...)
		return labels, stats.Iterations, err
	}
}

func toHierarchicalEngine(e Engine) hierarchical.Engine {
	switch e {
	case ActiveSet:
		return hierarchical.ActiveSet
	case RPC:
		return hierarchical.RPC
	default:
		return hierarchical.LPUF
	}
}
