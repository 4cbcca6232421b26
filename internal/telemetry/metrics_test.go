package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Collector, labels prometheus.Labels) float64 {
	t.Helper()
	vec, ok := c.(*prometheus.CounterVec)
	if !ok {
		t.Fatalf("collector is not a CounterVec")
	}
	m := &dto.Metric{}
	if err := vec.With(labels).Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordDecisionIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordDecision("forward", 7)
	r.RecordDecision("forward", 5)

	got := counterValue(t, r.decisionsTotal, prometheus.Labels{"action": "forward"})
	if got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestRecordEpisodeIncrementsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordEpisode("success")

	got := counterValue(t, r.episodesTotal, prometheus.Labels{"outcome": "success"})
	if got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestNilRecorderMethodsAreNoops(t *testing.T) {
	var r *Recorder
	r.RecordDecision("forward", 3)
	r.RecordReplan()
	r.RecordEpisode("fail")
	r.RecordStoreOp("host", "save_weights", "ok", 0.01)
}
