package mazefile

import (
	"fmt"

	"github.com/hexwheel/maze-navigator/internal/maze"
)

// Result captures the outcome of validating a single `.maze` document.
// If Valid is true, Notes holds informational lines; otherwise Notes
// holds the accumulated problems.
type Result struct {
	Valid bool
	Notes []string
}

// Validate checks structural consistency (positive dimensions, in-bounds
// entrance/goal, wall-mirroring) and reachability (a route from entrance
// to goal exists), reusing internal/maze's own BFS planner for the
// connectivity check rather than a second hand-rolled flood fill.
func Validate(doc Document) Result {
	res := Result{Valid: true}

	if doc.Width <= 0 || doc.Height <= 0 {
		res.Valid = false
		res.Notes = append(res.Notes, fmt.Sprintf("dimensions must be positive, got %dx%d", doc.Width, doc.Height))
		return res
	}

	if len(doc.Cells) != doc.Width*doc.Height {
		res.Valid = false
		res.Notes = append(res.Notes, fmt.Sprintf("cells length %d does not match %dx%d", len(doc.Cells), doc.Width, doc.Height))
		return res
	}

	entrance := maze.Point{X: doc.Entrance.X, Y: doc.Entrance.Y}
	goal := maze.Point{X: doc.Goal.X, Y: doc.Goal.Y}

	if !inBounds(entrance, doc.Width, doc.Height) {
		res.Valid = false
		res.Notes = append(res.Notes, fmt.Sprintf("entrance (%d,%d) is out of bounds", entrance.X, entrance.Y))
	}
	if !inBounds(goal, doc.Width, doc.Height) {
		res.Valid = false
		res.Notes = append(res.Notes, fmt.Sprintf("goal (%d,%d) is out of bounds", goal.X, goal.Y))
	}
	if !res.Valid {
		return res
	}

	if !cellsAreMirrored(doc) {
		res.Valid = false
		res.Notes = append(res.Notes, "walls are not mirrored between adjacent cells")
	}

	m := doc.ToGridMap()
	path, ok := maze.NewPlanner().BFSPath(m, entrance, goal)
	if !ok {
		res.Valid = false
		res.Notes = append(res.Notes, "goal is not reachable from entrance")
		return res
	}

	res.Notes = append(res.Notes, fmt.Sprintf("dimensions: %dx%d", doc.Width, doc.Height))
	res.Notes = append(res.Notes, fmt.Sprintf("entrance -> goal reachable in %d steps", len(path)-1))
	return res
}

func inBounds(p maze.Point, width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// cellsAreMirrored checks the raw document (before ToGridMap silently
// ORs mismatched walls together) for a wall declared on only one side of
// a shared edge — the sign of a hand-edited or foreign-tool-produced
// file.
func cellsAreMirrored(doc Document) bool {
	at := func(x, y int) CellDoc {
		return doc.Cells[y*doc.Width+x]
	}
	for y := 0; y < doc.Height; y++ {
		for x := 0; x < doc.Width; x++ {
			c := at(x, y)
			if x+1 < doc.Width && (c.E != 0) != (at(x+1, y).W != 0) {
				return false
			}
			if y+1 < doc.Height && (c.S != 0) != (at(x, y+1).N != 0) {
				return false
			}
		}
	}
	return true
}
