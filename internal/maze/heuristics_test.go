package maze

import "testing"

func TestNewHeuristicWeightsDefaults(t *testing.T) {
	w := NewHeuristicWeights()
	if w.Right != 1.0 || w.Front != 1.0 || w.Left != 1.0 || w.Back != 1.0 {
		t.Fatalf("got %+v, want all weights at 1.0", w)
	}
}

func TestHeuristicWeightsUpdateClampsUpper(t *testing.T) {
	w := NewHeuristicWeights()
	for i := 0; i < 100; i++ {
		w.Update(ActionRight, 1.0)
	}
	if w.Right != maxWeight {
		t.Fatalf("got %v, want clamped at %v", w.Right, maxWeight)
	}
}

func TestHeuristicWeightsUpdateClampsLower(t *testing.T) {
	w := NewHeuristicWeights()
	for i := 0; i < 100; i++ {
		w.Update(ActionLeft, -1.0)
	}
	if w.Left != minWeight {
		t.Fatalf("got %v, want clamped at %v", w.Left, minWeight)
	}
}

func TestHeuristicWeightsUpdateOnlyTouchesTargetAction(t *testing.T) {
	w := NewHeuristicWeights()
	w.Update(ActionForward, 1.0)
	if w.Right != 1.0 || w.Left != 1.0 || w.Back != 1.0 {
		t.Fatalf("expected only Front to change, got %+v", w)
	}
	if w.Front == 1.0 {
		t.Fatal("expected Front to change")
	}
}

func TestScoreForBlockedDirectionUsesPenalty(t *testing.T) {
	w := NewHeuristicWeights()
	sr := SensorRead{LeftFree: false, FrontFree: true, RightFree: true}

	got := w.ScoreFor(ActionLeft, sr)
	penalty := 0.1
	want := clampScore(int(penalty / 3.0 * 10.0))
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestScoreForBackOnlyUsesWeightWhenFullyBlocked(t *testing.T) {
	w := NewHeuristicWeights()
	blocked := SensorRead{LeftFree: false, FrontFree: false, RightFree: false}
	open := SensorRead{LeftFree: true, FrontFree: false, RightFree: false}

	blockedScore := w.ScoreFor(ActionBack, blocked)
	openScore := w.ScoreFor(ActionBack, open)

	if blockedScore <= openScore {
		t.Fatalf("expected fully-blocked Back score (%d) to exceed partially-open Back score (%d)", blockedScore, openScore)
	}
}

func TestScoreForRangeIsBounded(t *testing.T) {
	w := HeuristicWeights{Right: maxWeight, Front: maxWeight, Left: maxWeight, Back: maxWeight}
	sr := SensorRead{LeftFree: true, FrontFree: true, RightFree: true}
	for _, a := range []Action{ActionRight, ActionForward, ActionLeft, ActionBack} {
		s := w.ScoreFor(a, sr)
		if s < 0 || s > 10 {
			t.Fatalf("ScoreFor(%v) = %d out of [0,10]", a, s)
		}
	}
}
