package rpc

import (
	"context"
	"errors"
	"math/rand"

	"github.com/RobinL/clustergraph/core"
	"github.com/rs/zerolog"
)

// Sentinel errors for RPC execution.
var (
	// ErrContractionDiverged is returned when the number of contraction
	// levels exceeds the sanity bound without the edge set emptying.
	// Divergence is probabilistically near-impossible with a correct
	// affine hash draw, so this indicates a seed or substrate bug.
	ErrContractionDiverged = errors.New("rpc: contraction diverged")
)

// Option configures a Run call.
type Option func(*options)

type options struct {
	ctx          context.Context
	logger       zerolog.Logger
	recorder     core.Recorder
	rng          *rand.Rand
	maxLevels    int
	canonicalize bool
}

func defaultOptions() options {
	return options{
		ctx:          context.Background(),
		logger:       zerolog.Nop(),
		recorder:     core.NopRecorder{},
		rng:          rand.New(rand.NewSource(1)),
		maxLevels:    64,
		canonicalize: true,
	}
}

// WithContext allows cancellation between contraction levels.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger attaches a zerolog.Logger; per-level edge counts are logged
// at Debug. The default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRecorder attaches a core.Recorder for Prometheus-style
// instrumentation; each contraction level reports the number of edges
// it contracted via Iteration("rpc", ...).
func WithRecorder(r core.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithSeed seeds the affine-hash draw sequence, making Run deterministic
// for a given (graph, seed) pair (spec §5, "RPC is deterministic given
// the seed history S").
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithMaxLevels overrides the divergence sanity bound (default 64).
// Panics on n <= 0.
func WithMaxLevels(n int) Option {
	if n <= 0 {
		panic("rpc: WithMaxLevels(n<=0)")
	}
	return func(o *options) { o.maxLevels = n }
}

// WithCanonicalize controls whether raw hash-derived labels are
// remapped to a dense, first-occurrence-ordered label space after the
// composition lift (Open Question 3). Enabled by default; disable only
// to inspect raw affine-hash output.
func WithCanonicalize(enabled bool) Option {
	return func(o *options) { o.canonicalize = enabled }
}

// Stats summarises one Run call.
type Stats struct {
	Levels int
	Seeds  []Seed
}

// Seed is one level's drawn affine-hash coefficients, kept for
// diagnostics and reproducibility reporting.
type Seed struct {
	A uint64
	B uint64
}
