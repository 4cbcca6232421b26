package maze

import "sort"

// Navigator is the decision core: it owns a GridMap, a Plan, learned
// HeuristicWeights, and per-cell visit counts, and exposes the
// observation/planning/decision/reward surface consumed once per control
// tick by the firmware or the simulator's event loop. It holds no robot
// identity — the caller supplies the agent's (cell, heading) on every
// call — which keeps a Navigator trivially restartable and single-owner.
//
// Navigator is not safe for concurrent use; exactly one control loop owns
// it.
type Navigator struct {
	strategy Strategy

	gridMap *GridMap
	start   Point
	goal    Point
	hasGoal bool
	plan    []Point

	weights HeuristicWeights
	visits  visitCounts

	state EpisodeState
}

// NewNavigator returns a Navigator with a 1x1 map, default weights, and
// the RightHand strategy — ready for SetDimensions to be called before
// use.
func NewNavigator() *Navigator {
	return &Navigator{
		strategy: RightHandStrategy{},
		gridMap:  NewGridMap(1, 1),
		weights:  NewHeuristicWeights(),
		visits:   newVisitCounts(1, 1),
		state:    StateIdle,
	}
}

// SetStrategy replaces the heuristic decision strategy.
func (n *Navigator) SetStrategy(s Strategy) {
	n.strategy = s
}

// SetDimensions (re)creates the internal map at the given size and resets
// visit counts. Any existing plan is discarded, since it was computed
// against the old map.
func (n *Navigator) SetDimensions(width, height int) {
	n.gridMap = NewGridMap(width, height)
	n.visits = newVisitCounts(width, height)
	n.plan = nil
}

// SetStartGoal sets both the start and goal cells and enables the
// has-goal flag consulted by PlanRoute.
func (n *Navigator) SetStartGoal(start, goal Point) {
	n.start = start
	n.goal = goal
	n.hasGoal = true
}

// Map returns the internal GridMap for read/write access — used by a
// caller loading a persisted snapshot at boot, or by PersistentStore when
// saving one.
func (n *Navigator) Map() *GridMap {
	return n.gridMap
}

// Heuristics returns a copy of the internal learned weights.
func (n *Navigator) Heuristics() HeuristicWeights {
	return n.weights
}

// SetHeuristics replaces the internal learned weights, e.g. after loading
// a persisted record.
func (n *Navigator) SetHeuristics(w HeuristicWeights) {
	n.weights = w
}

// State returns the Navigator's current episode lifecycle state.
func (n *Navigator) State() EpisodeState {
	return n.state
}

// StartEpisode transitions Idle -> Running, clearing the current plan and
// optionally resetting visit counts (a caller may choose to carry novelty
// information across attempts on the same map by passing false).
func (n *Navigator) StartEpisode(resetVisits bool) {
	n.state = StateRunning
	n.plan = nil
	if resetVisits {
		n.visits = newVisitCounts(n.gridMap.Width(), n.gridMap.Height())
	}
}

// NoteArrival transitions Running -> TerminalSuccess when pos equals the
// configured goal. It is a no-op (returns false) otherwise or when not
// Running.
func (n *Navigator) NoteArrival(pos Point) bool {
	if n.state != StateRunning || !n.hasGoal {
		return false
	}
	if pos != n.goal {
		return false
	}
	n.state = StateTerminalSuccess
	return true
}

// NoteBudgetExceeded transitions Running -> TerminalFail. The step budget
// itself is tracked by the caller; this just records the outcome.
func (n *Navigator) NoteBudgetExceeded() {
	if n.state == StateRunning {
		n.state = StateTerminalFail
	}
}

// Reset transitions any terminal state back to Idle. It is a no-op from
// Idle or Running.
func (n *Navigator) Reset() {
	if n.state == StateTerminalSuccess || n.state == StateTerminalFail {
		n.state = StateIdle
	}
}

// relToAbs maps a relative direction (0=Left,1=Front,2=Right) to an
// absolute Direction given heading.
func relToAbs(heading Direction, rel int) Direction {
	switch rel {
	case 0:
		return (heading + 3) % 4 // left
	case 1:
		return heading // front
	default:
		return (heading + 1) % 4 // right
	}
}

// Observe updates the GridMap from a sensor reading taken at cell facing
// heading, and bumps that cell's visit count. Back is never observed —
// only left/front/right have sensors in this design.
func (n *Navigator) Observe(cell Point, sr SensorRead, heading Direction) {
	left := relToAbs(heading, 0)
	front := relToAbs(heading, 1)
	right := relToAbs(heading, 2)

	n.gridMap.SetWall(cell.X, cell.Y, left, !sr.LeftFree)
	n.gridMap.SetWall(cell.X, cell.Y, front, !sr.FrontFree)
	n.gridMap.SetWall(cell.X, cell.Y, right, !sr.RightFree)

	n.visits.bump(cell.X, cell.Y)
}

// PlanRoute (re)computes a BFS route from start to goal over the current
// map and stores it. It returns false (and clears any stored plan) when
// no goal is set or no route exists.
func (n *Navigator) PlanRoute() bool {
	if !n.hasGoal {
		return false
	}
	path, ok := NewPlanner().BFSPath(n.gridMap, n.start, n.goal)
	if !ok {
		n.plan = nil
		return false
	}
	n.plan = path
	return len(n.plan) > 0
}

// CurrentPlan returns the stored plan (nil when unplanned). Callers must
// not mutate the returned slice.
func (n *Navigator) CurrentPlan() []Point {
	return n.plan
}

// HasPlan reports whether a non-empty plan is stored.
func (n *Navigator) HasPlan() bool {
	return len(n.plan) > 0
}

// Decide picks an action using the configured Strategy alone, ignoring
// any stored plan.
func (n *Navigator) Decide(sr SensorRead) Decision {
	return n.strategy.Decide(n.weights, sr)
}

// planWantedDirection returns the absolute direction the stored plan asks
// for from current, or (0, false) when current is not on the plan or has
// no successor.
func (n *Navigator) planWantedDirection(current Point) (Direction, bool) {
	for i, pt := range n.plan {
		if pt != current {
			continue
		}
		if i+1 >= len(n.plan) {
			return 0, false
		}
		next := n.plan[i+1]
		switch {
		case next.X == current.X && next.Y == current.Y-1:
			return North, true
		case next.X == current.X+1 && next.Y == current.Y:
			return East, true
		case next.X == current.X && next.Y == current.Y+1:
			return South, true
		case next.X == current.X-1 && next.Y == current.Y:
			return West, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// planCandidate is one of the up-to-three Left/Front/Right options
// DecidePlanned ranks.
type planCandidate struct {
	action      Action
	seen        int
	matchesPlan bool
}

// DecidePlanned decides the next action considering the stored plan (if
// any), ranking the free Left/Front/Right candidates by novelty first,
// then plan alignment, then heuristic score — falling back to Back when
// all three are blocked. See spec §4.4.4 for the exact tie-break order;
// this is the canonical "ranked" variant, not the older
// unconditionally-follow-the-plan one.
func (n *Navigator) DecidePlanned(current Point, heading Direction, sr SensorRead) Decision {
	wantedAbs, wantedOK := n.planWantedDirection(current)

	type relFlag struct {
		rel    int
		free   bool
		action Action
	}
	rels := []relFlag{
		{0, sr.LeftFree, ActionLeft},
		{1, sr.FrontFree, ActionForward},
		{2, sr.RightFree, ActionRight},
	}

	var candidates []planCandidate
	for _, r := range rels {
		if !r.free {
			continue
		}
		abs := relToAbs(heading, r.rel)
		nb := current.Add(abs)
		seen := n.visits.seenAt(nb.X, nb.Y)
		matches := wantedOK && abs == wantedAbs
		candidates = append(candidates, planCandidate{action: r.action, seen: seen, matchesPlan: matches})
	}

	if len(candidates) == 0 {
		return Decision{Action: ActionBack, Score: n.weights.ScoreFor(ActionBack, sr)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		au, bu := a.seen == 0, b.seen == 0
		if au != bu {
			return au // unseen first
		}
		if a.seen != b.seen {
			return a.seen < b.seen // least seen first
		}
		if a.matchesPlan != b.matchesPlan {
			return a.matchesPlan // plan-aligned first
		}
		return n.weights.ScoreFor(a.action, sr) > n.weights.ScoreFor(b.action, sr)
	})

	chosen := candidates[0].action
	return Decision{Action: chosen, Score: n.weights.ScoreFor(chosen, sr)}
}

// ApplyReward updates the learned weight backing action.
func (n *Navigator) ApplyReward(action Action, reward float64) {
	n.weights.Update(action, reward)
}
