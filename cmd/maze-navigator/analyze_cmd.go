package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hexwheel/maze-navigator/internal/maze"
	"github.com/hexwheel/maze-navigator/internal/mazefile"
)

// analyzeCommand adapts the teacher's cmd/analyze (grid-size, charger
// density, and Manhattan-distance reachability heuristics over the
// road-trip game's configs) into a wall-density and shortest-path
// report over one or more `.maze` files.
func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "report wall density and entrance-to-goal path length for .maze files",
		ArgsUsage: "<file.maze> [more.maze...]",
		Action:    runAnalyze,
	}
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("analyze requires at least one <file.maze> argument", 1)
	}

	for _, path := range paths {
		fmt.Printf("\n=== %s ===\n", path)
		if err := analyzeOne(path); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
	return nil
}

func analyzeOne(path string) error {
	doc, err := mazefile.Load(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	m := doc.ToGridMap()
	fmt.Printf("Grid Size: %d x %d (%d cells)\n", m.Width(), m.Height(), m.Width()*m.Height())

	walls, possible := wallDensity(m)
	fmt.Printf("Walls: %d / %d edges (%.1f%% closed)\n", walls, possible, 100*float64(walls)/float64(possible))

	entrance := maze.Point{X: doc.Entrance.X, Y: doc.Entrance.Y}
	goal := maze.Point{X: doc.Goal.X, Y: doc.Goal.Y}
	fmt.Printf("Entrance: (%d,%d)  Goal: (%d,%d)\n", entrance.X, entrance.Y, goal.X, goal.Y)

	planner := maze.NewPlanner()
	path2, ok := planner.BFSPath(m, entrance, goal)
	if !ok {
		fmt.Println("⚠️  goal is unreachable from entrance under this file's own wall data")
		return nil
	}
	fmt.Printf("✅ shortest known path is %d steps\n", len(path2)-1)

	reachable := floodFillCount(m, entrance)
	total := m.Width() * m.Height()
	if reachable < total {
		fmt.Printf("⚠️  only %d / %d cells are reachable from the entrance\n", reachable, total)
	} else {
		fmt.Printf("✅ all %d cells are reachable from the entrance\n", total)
	}
	return nil
}

// wallDensity counts closed edges against the total number of distinct
// cell-adjacent edges in the grid (each interior edge counted once, via
// North/West so it isn't double-counted from the neighboring cell).
func wallDensity(m *maze.GridMap) (walls, possible int) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if y > 0 {
				possible++
				if m.Wall(x, y, maze.North) {
					walls++
				}
			}
			if x > 0 {
				possible++
				if m.Wall(x, y, maze.West) {
					walls++
				}
			}
		}
	}
	return walls, possible
}

// floodFillCount is a full-information BFS reachability count, distinct
// from Planner.BFSPath (which stops early at the goal): it visits every
// cell reachable from start to report how much of the grid a Navigator
// could ever discover.
func floodFillCount(m *maze.GridMap, start maze.Point) int {
	visited := make(map[maze.Point]bool)
	queue := []maze.Point{start}
	visited[start] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range []maze.Direction{maze.North, maze.East, maze.South, maze.West} {
			if m.Wall(cur.X, cur.Y, d) {
				continue
			}
			nb := cur.Add(d)
			if !m.InBounds(nb.X, nb.Y) || visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return len(visited)
}
