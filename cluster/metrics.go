package cluster

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus instrumentation every Cluster and
// ClusterHierarchical call can report into: an iterations-per-engine
// counter, a wall-clock duration histogram per operation, and a gauge
// of the most recently observed active-vertex-set size (Active-Set
// engine only). It implements core.Recorder.
//
// A nil *Metrics disables instrumentation with a cheap nil-check on
// every method, so the hot per-iteration loop pays nothing when the
// caller never wires metrics up — the same "nil means opt out"
// contract core.NopRecorder gives engine callers that skip WithMetrics.
type Metrics struct {
	iterations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	activeSet  prometheus.Gauge
}

// NewMetrics registers the three collectors against reg and returns a
// ready-to-use Metrics. Pass prometheus.DefaultRegisterer for the
// global registry, or a fresh prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clustergraph",
			Name:      "engine_iterations_total",
			Help:      "Engine iterations completed (contraction levels for rpc, threshold levels for hierarchical).",
		}, []string{"engine"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clustergraph",
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock duration of a Cluster or ClusterHierarchical call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		activeSet: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clustergraph",
			Name:      "active_set_size",
			Help:      "Most recently observed Active-Set engine active-vertex-set size.",
		}),
	}
	reg.MustRegister(m.iterations, m.duration, m.activeSet)
	return m
}

// Iteration implements core.Recorder.
func (m *Metrics) Iteration(engine string, changes int) {
	if m == nil {
		return
	}
	m.iterations.WithLabelValues(engine).Inc()
}

// ActiveSet implements core.Recorder.
func (m *Metrics) ActiveSet(engine string, size int) {
	if m == nil {
		return
	}
	m.activeSet.Set(float64(size))
}

// observeDuration records seconds against the named operation. A
// nil Metrics is a no-op.
func (m *Metrics) observeDuration(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(seconds)
}
