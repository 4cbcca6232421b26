package maze

// Planner computes a breadth-first shortest path over the edges implied
// by a GridMap's currently-known walls. It holds no state of its own —
// BFSPath is a pure function of the map and the two endpoints, matching
// the teacher's own hand-rolled BFS in bruteforcer/systematic_strategy.go
// rather than reaching for a graph library; the adjacency here (4
// neighbors gated by a wall bit) is too small and too shaped by GridMap's
// own representation for a generic shortest-path package to help.
type Planner struct{}

// NewPlanner returns a Planner. It carries no state; the zero value is
// equally usable.
func NewPlanner() *Planner {
	return &Planner{}
}

// expansionOrder fixes neighbor expansion as N, E, S, W so that BFS
// results are deterministic for tie-breaking, per spec.
var expansionOrder = [4]Direction{North, East, South, West}

// BFSPath finds a shortest path from start to goal over edges whose wall
// is currently absent. It returns the path (inclusive of both endpoints)
// and true, or (nil, false) when start/goal is out of bounds or goal is
// unreachable under the map's current knowledge.
func (p *Planner) BFSPath(m *GridMap, start, goal Point) ([]Point, bool) {
	if !m.InBounds(start.X, start.Y) || !m.InBounds(goal.X, goal.Y) {
		return nil, false
	}

	w, h := m.Width(), m.Height()
	n := w * h
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range prev {
		prev[i] = -1
	}

	startIdx := m.index(start.X, start.Y)
	goalIdx := m.index(goal.X, goal.Y)

	queue := make([]Point, 0, n)
	queue = append(queue, start)
	visited[startIdx] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curIdx := m.index(cur.X, cur.Y)
		if curIdx == goalIdx {
			break
		}

		for _, d := range expansionOrder {
			if m.Wall(cur.X, cur.Y, d) {
				continue
			}
			nb := cur.Add(d)
			if !m.InBounds(nb.X, nb.Y) {
				continue
			}
			nbIdx := m.index(nb.X, nb.Y)
			if visited[nbIdx] {
				continue
			}
			visited[nbIdx] = true
			prev[nbIdx] = curIdx
			queue = append(queue, nb)
		}
	}

	if !visited[goalIdx] {
		return nil, false
	}

	var path []Point
	for idx := goalIdx; ; idx = prev[idx] {
		x, y := idx%w, idx/w
		path = append(path, Point{x, y})
		if idx == startIdx {
			break
		}
	}
	// path was built goal -> start; reverse it in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
