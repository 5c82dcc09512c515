package core

// Recorder receives lightweight progress signals from an engine run
// without the core or the engines themselves depending on any particular
// metrics backend. cluster.Metrics is the concrete Prometheus-backed
// implementation; engines fall back to NopRecorder{} when none is
// supplied, so instrumentation costs a single nil-check on the hot path.
type Recorder interface {
	// Iteration is called once per bulk-synchronous iteration (or
	// contraction level, or threshold level) an engine completes, naming
	// the engine and a per-step count: the vertices whose representative
	// changed for lpuf and activeset, the edges entering the level for
	// rpc, and the in-play vertices for hierarchical.
	Iteration(engine string, changes int)

	// ActiveSet reports the size of the current active-vertex set; only
	// the Active-Set engine calls this. Other engines never call it.
	ActiveSet(engine string, size int)
}

// NopRecorder discards every observation. It is the zero-cost default.
type NopRecorder struct{}

func (NopRecorder) Iteration(string, int)  {}
func (NopRecorder) ActiveSet(string, int) {}
