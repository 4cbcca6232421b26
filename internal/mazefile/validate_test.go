package mazefile

import "testing"

func TestValidateAcceptsReachableCorridor(t *testing.T) {
	doc := Document{
		Width:  3,
		Height: 1,
		Goal:   Waypoint{X: 2, Y: 0},
		Cells:  []CellDoc{{}, {}, {}},
	}
	res := Validate(doc)
	if !res.Valid {
		t.Fatalf("expected valid, got notes: %v", res.Notes)
	}
}

func TestValidateRejectsUnreachableGoal(t *testing.T) {
	doc := Document{
		Width:  2,
		Height: 1,
		Goal:   Waypoint{X: 1, Y: 0},
		Cells:  []CellDoc{{E: 1}, {W: 1}},
	}
	res := Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid: goal walled off from entrance")
	}
}

func TestValidateRejectsOutOfBoundsGoal(t *testing.T) {
	doc := Document{
		Width:  2,
		Height: 2,
		Goal:   Waypoint{X: 5, Y: 5},
		Cells:  []CellDoc{{}, {}, {}, {}},
	}
	res := Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid: out-of-bounds goal")
	}
}

func TestValidateRejectsDimensionMismatch(t *testing.T) {
	doc := Document{Width: 3, Height: 3, Cells: []CellDoc{{}}}
	res := Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid: cells length mismatch")
	}
}

func TestValidateRejectsUnmirroredWalls(t *testing.T) {
	doc := Document{
		Width:  2,
		Height: 1,
		Goal:   Waypoint{X: 1, Y: 0},
		Cells:  []CellDoc{{E: 1}, {}}, // (1,0) does not declare the mirrored W wall
	}
	res := Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid: one-sided wall declaration")
	}
}

func TestValidateRejectsNonPositiveDimensions(t *testing.T) {
	doc := Document{Width: 0, Height: 3}
	res := Validate(doc)
	if res.Valid {
		t.Fatal("expected invalid: zero width")
	}
}
