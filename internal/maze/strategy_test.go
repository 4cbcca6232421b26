package maze

import "testing"

func TestRightHandStrategyPrefersRight(t *testing.T) {
	w := NewHeuristicWeights()
	sr := SensorRead{LeftFree: true, FrontFree: true, RightFree: true}

	got := RightHandStrategy{}.Decide(w, sr)
	if got.Action != ActionRight {
		t.Fatalf("got %v, want ActionRight", got.Action)
	}
}

func TestRightHandStrategyFallsBackToFront(t *testing.T) {
	w := NewHeuristicWeights()
	sr := SensorRead{LeftFree: true, FrontFree: true, RightFree: false}

	got := RightHandStrategy{}.Decide(w, sr)
	if got.Action != ActionForward {
		t.Fatalf("got %v, want ActionForward", got.Action)
	}
}

func TestRightHandStrategyFallsBackToLeft(t *testing.T) {
	w := NewHeuristicWeights()
	sr := SensorRead{LeftFree: true, FrontFree: false, RightFree: false}

	got := RightHandStrategy{}.Decide(w, sr)
	if got.Action != ActionLeft {
		t.Fatalf("got %v, want ActionLeft", got.Action)
	}
}

func TestRightHandStrategyBacksUpWhenBoxedIn(t *testing.T) {
	w := NewHeuristicWeights()
	sr := SensorRead{LeftFree: false, FrontFree: false, RightFree: false}

	got := RightHandStrategy{}.Decide(w, sr)
	if got.Action != ActionBack {
		t.Fatalf("got %v, want ActionBack", got.Action)
	}
}
