package store

import "testing"

func newTestDeviceStore() *DeviceStore {
	return NewDeviceStore(NewMemoryMedium(256, 16))
}

func TestDeviceStoreWeightsRoundTrip(t *testing.T) {
	d := newTestDeviceStore()
	want := WeightsRecord{Right: 1.5, Front: 0.4, Left: 2.9, Back: 0.2}

	if err := d.SaveWeights(want); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	got, present, err := d.LoadWeights()
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if !present {
		t.Fatal("expected weights to be present")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDeviceStoreLoadWeightsAbsentOnBlankMedium(t *testing.T) {
	d := newTestDeviceStore()
	_, present, err := d.LoadWeights()
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if present {
		t.Fatal("expected absent on a blank medium")
	}
}

func TestDeviceStoreMapRoundTrip(t *testing.T) {
	d := newTestDeviceStore()
	want := MapRecord{
		Width: 2, Height: 2,
		Cells: []MapCell{
			{WallN: true},
			{WallE: true},
			{WallS: true, WallW: true},
			{},
		},
	}

	if err := d.SaveMap(want); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}
	got, present, err := d.LoadMap()
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if !present {
		t.Fatal("expected map to be present")
	}
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("got dims %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	for i := range want.Cells {
		if got.Cells[i] != want.Cells[i] {
			t.Errorf("cell %d: got %+v, want %+v", i, got.Cells[i], want.Cells[i])
		}
	}
}

func TestDeviceStoreWeightsAndMapCoexistInSameSector(t *testing.T) {
	d := newTestDeviceStore()
	weights := WeightsRecord{Right: 1, Front: 1, Left: 1, Back: 1}
	m := MapRecord{Width: 1, Height: 1, Cells: []MapCell{{WallN: true}}}

	if err := d.SaveWeights(weights); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	if err := d.SaveMap(m); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	gotW, present, err := d.LoadWeights()
	if err != nil || !present {
		t.Fatalf("LoadWeights: %v present=%v", err, present)
	}
	if gotW != weights {
		t.Fatalf("got %+v, want %+v", gotW, weights)
	}

	gotM, present, err := d.LoadMap()
	if err != nil || !present {
		t.Fatalf("LoadMap: %v present=%v", err, present)
	}
	if gotM.Width != 1 || gotM.Height != 1 || !gotM.Cells[0].WallN {
		t.Fatalf("got %+v", gotM)
	}
}

func TestDeviceStoreErase(t *testing.T) {
	d := newTestDeviceStore()
	if err := d.SaveWeights(WeightsRecord{Right: 1, Front: 1, Left: 1, Back: 1}); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	if err := d.Erase(); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	_, present, err := d.LoadWeights()
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if present {
		t.Fatal("expected absent after erase")
	}
}

func TestDeviceStoreStatusReflectsWeightsPresence(t *testing.T) {
	d := newTestDeviceStore()

	status, err := d.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.SavedCount != 0 || status.ActiveProfile != 0 {
		t.Fatalf("got %+v, want zero status on a blank medium", status)
	}

	if err := d.SaveWeights(WeightsRecord{Right: 1, Front: 1, Left: 1, Back: 1}); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	status, err = d.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.SavedCount != 1 {
		t.Fatalf("got SavedCount=%d, want 1 after save", status.SavedCount)
	}
}

func TestDeviceStorePayloadTooLarge(t *testing.T) {
	d := NewDeviceStore(NewMemoryMedium(8, 2))
	err := d.SaveWeights(WeightsRecord{Right: 1, Front: 1, Left: 1, Back: 1})
	if err != ErrPayloadTooLarge {
		t.Fatalf("got %v, want ErrPayloadTooLarge", err)
	}
}
