package maze

import "math"

// weight bounds and learning rate, per the online update rule.
const (
	minWeight    = 0.2
	maxWeight    = 3.0
	defaultWeight = 1.0
	learningRate = 0.05
)

// HeuristicWeights holds the four bounded action weights the Navigator
// learns from reward signal. Each weight stays within [0.2, 3.0]; the
// zero value is not valid — use NewHeuristicWeights.
type HeuristicWeights struct {
	Right, Front, Left, Back float64
}

// NewHeuristicWeights returns weights at their default value of 1.0.
func NewHeuristicWeights() HeuristicWeights {
	return HeuristicWeights{
		Right: defaultWeight,
		Front: defaultWeight,
		Left:  defaultWeight,
		Back:  defaultWeight,
	}
}

func clampWeight(w float64) float64 {
	if w < minWeight {
		return minWeight
	}
	if w > maxWeight {
		return maxWeight
	}
	return w
}

// Update applies the online rule w_action <- clamp(w_action + lr*reward,
// 0.2, 3.0) to the weight selected by action.
func (h *HeuristicWeights) Update(action Action, reward float64) {
	switch action {
	case ActionRight:
		h.Right = clampWeight(h.Right + learningRate*reward)
	case ActionForward:
		h.Front = clampWeight(h.Front + learningRate*reward)
	case ActionLeft:
		h.Left = clampWeight(h.Left + learningRate*reward)
	case ActionBack:
		h.Back = clampWeight(h.Back + learningRate*reward)
	}
}

// ScoreFor computes the 0..10 preference score for action given the
// current sensor reading. Back only takes its learned weight as a base
// when all three other directions are blocked; otherwise it is penalized
// like any blocked direction.
func (h HeuristicWeights) ScoreFor(action Action, sr SensorRead) int {
	var base float64
	switch action {
	case ActionRight:
		if sr.RightFree {
			base = h.Right
		} else {
			base = 0.1
		}
	case ActionForward:
		if sr.FrontFree {
			base = h.Front
		} else {
			base = 0.1
		}
	case ActionLeft:
		if sr.LeftFree {
			base = h.Left
		} else {
			base = 0.1
		}
	case ActionBack:
		if !sr.LeftFree && !sr.FrontFree && !sr.RightFree {
			base = h.Back
		} else {
			base = 0.2
		}
	}

	score := math.Round((base / 3.0) * 10.0)
	return clampScore(int(score))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
