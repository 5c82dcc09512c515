package activeset

import (
	"context"
	"errors"

	"github.com/RobinL/clustergraph/core"
	"github.com/rs/zerolog"
)

// Sentinel errors for Active-Set execution — same shape as package lpuf's,
// duplicated per-package in the corpus's own idiom (bfs and dfs each
// define their own ErrGraphNil rather than sharing one).
var (
	ErrIterationBudgetExceeded = errors.New("activeset: iteration budget exceeded")
	ErrEngineFailure           = errors.New("activeset: engine failure")
)

// BudgetExceededError carries the last-known representative table when
// MaxIterations is exceeded before reaching a fixed point.
type BudgetExceededError struct {
	Iterations          int
	LastRepresentatives map[int64]int64
}

func (e *BudgetExceededError) Error() string { return ErrIterationBudgetExceeded.Error() }
func (e *BudgetExceededError) Unwrap() error  { return ErrIterationBudgetExceeded }

// Option configures a Run call.
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

// WithContext allows cancellation between iterations.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger attaches a zerolog.Logger; per-iteration active-set size is
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
// n <= 0, following the corpus's fail-fast option-constructor convention.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic("activeset: WithMaxIterations(n<=0)")
	}
	return func(o *options) { o.maxIterations = n }
}

// Stats summarises one Run call.
type Stats struct {
	Iterations int
}
