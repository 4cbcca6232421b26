// Package mazefile loads and saves the JSON `.maze` document format: a
// grid's dimensions, its entrance/goal, and its per-cell wall bits, plus
// an authorship meta block. The format is whitespace-insensitive JSON,
// matching the simulator's own on-disk save format rather than a
// bespoke line-oriented layout.
package mazefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hexwheel/maze-navigator/internal/maze"
)

// ErrDimensionMismatch is returned by Load when the cells array length
// does not match width*height.
var ErrDimensionMismatch = errors.New("mazefile: cells length does not match width*height")

// Meta records who produced a `.maze`/`.soluct`/`.plan` artifact and
// when, per the session metadata collected at startup.
type Meta struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	GitHub string `json:"github"`
	Date   string `json:"date"`
}

// Waypoint is a grid coordinate, optionally carrying a heading (used for
// entrance/start records; zero-valued Heading is a legitimate "facing
// North" when the field is present, so callers that need "no heading"
// track that separately).
type Waypoint struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Heading *int `json:"heading,omitempty"`
}

// CellDoc is the on-disk wall encoding for one grid cell: 1 means a wall
// is present on that side, 0 means open.
type CellDoc struct {
	N int `json:"n"`
	E int `json:"e"`
	S int `json:"s"`
	W int `json:"w"`
}

// Document is the full `.maze` file shape.
type Document struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Entrance Waypoint  `json:"entrance"`
	Goal     Waypoint  `json:"goal"`
	Cells    []CellDoc `json:"cells"`
	Meta     Meta      `json:"meta"`
}

// Load reads and decodes a `.maze` file from path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("mazefile: read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("mazefile: decode %s: %w", path, err)
	}
	if len(doc.Cells) != doc.Width*doc.Height {
		return Document{}, fmt.Errorf("mazefile: %s: %w (got %d, want %d)",
			path, ErrDimensionMismatch, len(doc.Cells), doc.Width*doc.Height)
	}
	return doc, nil
}

// Save encodes doc as indented JSON and writes it to path.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("mazefile: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("mazefile: write %s: %w", path, err)
	}
	return nil
}

// ToGridMap converts the document's cell array into a *maze.GridMap the
// Navigator can plan and observe against.
func (d Document) ToGridMap() *maze.GridMap {
	m := maze.NewGridMap(d.Width, d.Height)
	for i, c := range d.Cells {
		x := i % d.Width
		y := i / d.Width
		if c.N != 0 {
			m.SetWall(x, y, maze.North, true)
		}
		if c.E != 0 {
			m.SetWall(x, y, maze.East, true)
		}
		if c.S != 0 {
			m.SetWall(x, y, maze.South, true)
		}
		if c.W != 0 {
			m.SetWall(x, y, maze.West, true)
		}
	}
	return m
}

// FromGridMap builds the cell array a Document needs from a fully
// mapped GridMap, the inverse of ToGridMap.
func FromGridMap(m *maze.GridMap) []CellDoc {
	cells := make([]CellDoc, 0, m.Width()*m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := m.Cell(x, y)
			cells = append(cells, CellDoc{
				N: boolToInt(c.WallN),
				E: boolToInt(c.WallE),
				S: boolToInt(c.WallS),
				W: boolToInt(c.WallW),
			})
		}
	}
	return cells
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
