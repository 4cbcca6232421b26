// Package telemetry exposes Prometheus counters and histograms for the
// Navigator's decision loop, the persistence backends, and episode
// outcomes. It is intentionally optional and one-directional: neither
// internal/maze nor internal/store imports it at all; a caller (the CLI's
// solve/store commands) wraps its own calls into those packages and
// reports the outcome through a nil-safe *Recorder, so the core stays
// free of any telemetry dependency.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maze_navigator"

// Recorder holds every metric this module exposes. The zero value is not
// usable — construct one with NewRecorder, which registers each metric
// against reg.
type Recorder struct {
	decisionsTotal   *prometheus.CounterVec
	replansTotal     prometheus.Counter
	episodesTotal    *prometheus.CounterVec
	stepScore        prometheus.Histogram
	storeOpsTotal    *prometheus.CounterVec
	storeOpDuration  *prometheus.HistogramVec
}

// NewRecorder registers this module's metrics against reg and returns a
// Recorder ready for use. Passing prometheus.NewRegistry() keeps a
// test's metrics isolated from the process-wide default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		decisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Decisions made by the Navigator, by chosen action.",
			},
			[]string{"action"},
		),
		replansTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replans_total",
				Help:      "Number of PlanRoute calls that produced a route.",
			},
		),
		episodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "episodes_total",
				Help:      "Completed episodes, by terminal outcome.",
			},
			[]string{"outcome"},
		),
		stepScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "decision_score",
				Help:      "Distribution of the 0..10 score attached to each decision.",
				Buckets:   prometheus.LinearBuckets(0, 1, 11),
			},
		),
		storeOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Persistence operations, by backend, kind, and result.",
			},
			[]string{"backend", "kind", "result"},
		),
		storeOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Latency of persistence operations, by backend and kind.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"backend", "kind"},
		),
	}
}

// RecordDecision increments the per-action decision counter and observes
// its score.
func (r *Recorder) RecordDecision(action string, score int) {
	if r == nil {
		return
	}
	r.decisionsTotal.WithLabelValues(action).Inc()
	r.stepScore.Observe(float64(score))
}

// RecordReplan increments the replan counter.
func (r *Recorder) RecordReplan() {
	if r == nil {
		return
	}
	r.replansTotal.Inc()
}

// RecordEpisode increments the episode-outcome counter, outcome being
// one of "success" or "fail".
func (r *Recorder) RecordEpisode(outcome string) {
	if r == nil {
		return
	}
	r.episodesTotal.WithLabelValues(outcome).Inc()
}

// RecordStoreOp records one persistence operation's result and latency,
// result being "ok" or "error".
func (r *Recorder) RecordStoreOp(backend, kind, result string, seconds float64) {
	if r == nil {
		return
	}
	r.storeOpsTotal.WithLabelValues(backend, kind, result).Inc()
	r.storeOpDuration.WithLabelValues(backend, kind).Observe(seconds)
}
