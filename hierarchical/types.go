package hierarchical

import (
	"context"
	"errors"

	"github.com/RobinL/clustergraph/core"
	"github.com/rs/zerolog"
)

// Sentinel errors for the Hierarchical Threshold Driver.
var (
	// ErrThresholdsNotAscending is returned when the caller's threshold
	// list is not strictly increasing (spec §4.E assumes ascending order).
	ErrThresholdsNotAscending = errors.New("hierarchical: thresholds must be strictly ascending")
	// ErrEmptyThresholds is returned when no threshold levels are given.
	ErrEmptyThresholds = errors.New("hierarchical: at least one threshold is required")
)

// Engine selects which connected-components engine the driver calls at
// each threshold level.
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

// Option configures a Run call.
type Option func(*options)

type options struct {
	ctx             context.Context
	logger          zerolog.Logger
	recorder        core.Recorder
	engine          Engine
	strictStability bool
	maxIterations   int
	seed            int64
}

func defaultOptions() options {
	return options{
		ctx:             context.Background(),
		logger:          zerolog.Nop(),
		recorder:        core.NopRecorder{},
		engine:          LPUF,
		strictStability: false,
		maxIterations:   64,
		seed:            1,
	}
}

// WithContext allows cancellation between threshold levels and engine
// iterations.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger attaches a zerolog.Logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder attaches a core.Recorder for Prometheus-style instrumentation.
func WithRecorder(r core.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithEngine selects the per-level connected-components engine. LPUF by default.
func WithEngine(e Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithStrictStability selects the exclusive `>` stability comparator
// instead of the default inclusive `>=` (spec §9, Open Question 2).
// Only present for bug-compatibility with a flawed reference variant;
// leave false otherwise.
func WithStrictStability(strict bool) Option {
	return func(o *options) { o.strictStability = strict }
}

// WithMaxIterations bounds each per-level engine call. Panics on n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic("hierarchical: WithMaxIterations(n<=0)")
	}
	return func(o *options) { o.maxIterations = n }
}

// WithSeed seeds the RPC engine when WithEngine(RPC) is selected.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// LevelResult is the output of one threshold level.
type LevelResult struct {
	Threshold   float64
	Labels      map[int64]int64
	StableCount int
	InPlayCount int
	Iterations  int
}
