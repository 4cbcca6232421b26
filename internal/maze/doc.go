// Package maze implements the navigation and learning core of the maze
// solving agent: a partially-observable grid map, a BFS route planner, a
// reinforcement-learned heuristic, and the Navigator that fuses them into
// per-step decisions.
//
// Core Types:
//
// GridMap holds the agent's current knowledge of the maze. Planner
// computes a shortest route over currently-known walls. HeuristicWeights
// tracks four learned action weights updated online from reward signal.
// Navigator ties these together behind the decision surface consumed once
// per control tick by the robot firmware or the simulator's event loop.
//
// Usage:
//
//	nav := maze.NewNavigator()
//	nav.SetDimensions(16, 16)
//	nav.SetStartGoal(maze.Point{X: 0, Y: 0}, maze.Point{X: 15, Y: 15})
//	nav.Observe(cell, sr, heading)
//	nav.PlanRoute()
//	decision := nav.DecidePlanned(cell, heading, sr)
//
// Determinism:
//
// Given the same starting GridMap, identical step sequence, and identical
// sensor reads, Navigator decisions are deterministic: BFS always expands
// neighbors in N, E, S, W order and decidePlanned's candidate ranking uses
// a stable sort, so no two runs over the same inputs can diverge.
//
// Concurrency:
//
// Navigator and GridMap are single-owner, synchronous, and not safe for
// concurrent use — a Navigator belongs to exactly one control loop.
package maze
