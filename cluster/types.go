package cluster

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrEngineFailure is returned (wrapping the underlying engine's own
// error) whenever a selected engine or the hierarchical driver returns
// an error. Callers distinguish engine sentinels with errors.Is.
var ErrEngineFailure = errors.New("cluster: engine failure")

// Engine selects the connected-components algorithm Cluster and
// ClusterHierarchical call.
type Engine int

const (
	LPUF Engine = iota
	ActiveSet
	RPC
)

func (e Engine) String() string {
	switch e {
	case LPUF:
		return "lpuf"
	case ActiveSet:
		return "activeset"
	case RPC:
		return "rpc"
	default:
		return "unknown"
	}
}

// Option configures a Cluster or ClusterHierarchical call.
type Option func(*options)

type options struct {
	ctx             context.Context
	logger          zerolog.Logger
	metrics         *Metrics
	engine          Engine
	seed            int64
	maxIterations   int
	strictStability bool
}

func defaultOptions() options {
	return options{
		ctx:             context.Background(),
		logger:          zerolog.Nop(),
		metrics:         nil,
		engine:          LPUF,
		seed:            1,
		maxIterations:   64,
		strictStability: false,
	}
}

// WithEngine selects LPUF (default), ActiveSet, or RPC.
func WithEngine(e Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithSeed seeds the RPC engine's hash sequence; ignored by LPUF and Active-Set.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithMaxIterations overrides the per-level iteration safety bound
// (default 64). Panics on n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic("cluster: WithMaxIterations(n<=0)")
	}
	return func(o *options) { o.maxIterations = n }
}

// WithStrictStability selects the exclusive `>` stability comparator
// for ClusterHierarchical (spec §9, Open Question 2). Leave false
// (the default, inclusive `>=`) unless migrating data produced by a
// reference implementation with the flawed strict variant.
func WithStrictStability(strict bool) Option {
	return func(o *options) { o.strictStability = strict }
}

// WithContext allows cancellation between engine iterations and
// threshold levels.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger attaches a zerolog.Logger; the default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics attaches a *Metrics for Prometheus-style instrumentation.
// The default, nil, disables instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Stats summarises one Cluster or ClusterHierarchical level call,
// mirroring the cluster-size statistics and wall-clock timing every
// original_source/ prototype printed after running.
type Stats struct {
	NumClusters    int
	AvgClusterSize float64
	MaxClusterSize int
	Iterations     int
	Elapsed        time.Duration
}

// Result is the output of one Cluster call, or one threshold level of
// a ClusterHierarchical call.
type Result struct {
	Labels map[int64]int64
	Stats  Stats
}

func statsFromLabels(labels map[int64]int64, iterations int, elapsed time.Duration) Stats {
	sizes := make(map[int64]int)
	for _, l := range labels {
		sizes[l]++
	}
	var maxSize int
	for _, sz := range sizes {
		if sz > maxSize {
			maxSize = sz
		}
	}
	var avg float64
	if len(sizes) > 0 {
		avg = float64(len(labels)) / float64(len(sizes))
	}
	return Stats{
		NumClusters:    len(sizes),
		AvgClusterSize: avg,
		MaxClusterSize: maxSize,
		Iterations:     iterations,
		Elapsed:        elapsed,
	}
}
