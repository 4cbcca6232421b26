package maze

// Strategy is the Navigator's pluggable heuristic decision rule, i.e. the
// "what do we do when there is no plan to follow" policy. It is modeled
// as a narrow interface rather than an open class hierarchy — per the
// design notes, the decision surface is exactly one function, and a
// future A* or left-hand strategy only needs to implement it.
type Strategy interface {
	// Decide picks an action from sr alone (no map/plan knowledge) and
	// scores it against weights.
	Decide(weights HeuristicWeights, sr SensorRead) Decision
}

// RightHandStrategy always prefers turning right, then going forward,
// then turning left, and only backs up when every other direction is
// blocked — the classic wall-follower rule.
type RightHandStrategy struct{}

// Decide implements Strategy.
func (RightHandStrategy) Decide(weights HeuristicWeights, sr SensorRead) Decision {
	var action Action
	switch {
	case sr.RightFree:
		action = ActionRight
	case sr.FrontFree:
		action = ActionForward
	case sr.LeftFree:
		action = ActionLeft
	default:
		action = ActionBack
	}
	return Decision{Action: action, Score: weights.ScoreFor(action, sr)}
}
