package lpuf

import (
	"context"
	"errors"

	"github.com/RobinL/clustergraph/core"
	"github.com/rs/zerolog"
)

// Sentinel errors for LPUF execution.
var (
	// ErrIterationBudgetExceeded is returned when the engine exceeds
	// MaxIterations before reaching a fixed point. LastRepresentatives on
	// the returned error carries the last-known rep table, uid-keyed, for
	// debugging — it is never treated as a successful result.
	ErrIterationBudgetExceeded = errors.New("lpuf: iteration budget exceeded")

	// ErrEngineFailure wraps an unexpected internal invariant violation
	// (e.g. a non-monotone step, which invariant 4 says cannot happen).
	ErrEngineFailure = errors.New("lpuf: engine failure")
)

// BudgetExceededError is the concrete type behind ErrIterationBudgetExceeded;
// errors.As recovers it to inspect the partial state.
type BudgetExceededError struct {
	Iterations         int
	LastRepresentatives map[int64]int64
}

func (e *BudgetExceededError) Error() string { return ErrIterationBudgetExceeded.Error() }
func (e *BudgetExceededError) Unwrap() error  { return ErrIterationBudgetExceeded }

// Option configures a Run call. Later options override earlier ones,
// exactly as bfs.Option and builder.BuilderOption do in the wider corpus.
type Option func(*options)

type options struct {
	ctx           context.Context
	logger        zerolog.Logger
	recorder      core.Recorder
	maxIterations int
}

func defaultOptions() options {
	return options{
		ctx:           context.Background(),
		logger:        zerolog.Nop(),
		recorder:      core.NopRecorder{},
		maxIterations: 64,
	}
}

// WithContext allows cancellation between iterations (spec §5: mid-iteration
// cancellation is not supported, so the check happens at iteration boundaries).
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger attaches a zerolog.Logger; per-iteration change counts are
// logged at Debug. The default is zerolog.Nop().
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

// WithMaxIterations overrides the safety bound (default 64). Panics on
// n <= 0, following the corpus's option-constructor convention of
// failing fast on structurally meaningless literals (builder.WithSeed's
// siblings validate this way; algorithms themselves never panic).
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic("lpuf: WithMaxIterations(n<=0)")
	}
	return func(o *options) { o.maxIterations = n }
}

// Stats summarises one Run call, mirroring the iteration counters the
// original Python/DuckDB prototypes printed per loop.
type Stats struct {
	Iterations int
}
