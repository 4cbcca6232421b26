package main

import (
	"testing"

	"github.com/hexwheel/maze-navigator/internal/maze"
)

func TestWallDensityCountsEachEdgeOnce(t *testing.T) {
	m := maze.NewGridMap(2, 2)
	m.SetWall(0, 0, maze.East, true)

	walls, possible := wallDensity(m)
	if possible != 4 {
		t.Fatalf("got %d possible edges, want 4 (2x2 grid)", possible)
	}
	if walls != 1 {
		t.Fatalf("got %d walls, want 1", walls)
	}
}

func TestFloodFillCountStopsAtWalls(t *testing.T) {
	m := maze.NewGridMap(2, 2)
	m.SetWall(0, 0, maze.East, true)
	m.SetWall(0, 0, maze.South, true)

	got := floodFillCount(m, maze.Point{X: 0, Y: 0})
	if got != 1 {
		t.Fatalf("got %d reachable cells, want 1 (boxed in)", got)
	}
}

func TestFloodFillCountCoversOpenGrid(t *testing.T) {
	m := maze.NewGridMap(2, 2)
	got := floodFillCount(m, maze.Point{X: 0, Y: 0})
	if got != 4 {
		t.Fatalf("got %d reachable cells, want 4 (no walls)", got)
	}
}
