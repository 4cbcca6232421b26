package recorder

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVersionIndexSetAndHighestRoundTrip(t *testing.T) {
	idx, err := OpenVersionIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenVersionIndex: %v", err)
	}
	defer idx.Close()

	idx.Set("/maps/lab", "lab", "solution", 3)
	n, ok := idx.Highest("/maps/lab", "lab", "solution")
	if !ok || n != 3 {
		t.Fatalf("got (%d, %v), want (3, true)", n, ok)
	}
}

func TestVersionIndexMissHasDistinctKinds(t *testing.T) {
	idx, err := OpenVersionIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenVersionIndex: %v", err)
	}
	defer idx.Close()

	idx.Set("/maps/lab", "lab", "solution", 2)
	if _, ok := idx.Highest("/maps/lab", "lab", "plan"); ok {
		t.Fatalf("expected miss for distinct kind")
	}
}

func TestVersionIndexNilIsSafe(t *testing.T) {
	var idx *VersionIndex
	idx.Set("/maps/lab", "lab", "solution", 1)
	if n, ok := idx.Highest("/maps/lab", "lab", "solution"); ok || n != 0 {
		t.Fatalf("got (%d, %v), want (0, false)", n, ok)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

func TestHighestNumberedFileCachedFallsBackOnMiss(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lab_solution_2.soluct"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	idx, err := OpenVersionIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenVersionIndex: %v", err)
	}
	defer idx.Close()

	n, path, err := highestNumberedFileCached(idx, dir, "lab", "solution", "soluct")
	if err != nil {
		t.Fatalf("highestNumberedFileCached: %v", err)
	}
	if n != 2 || filepath.Base(path) != "lab_solution_2.soluct" {
		t.Fatalf("got (%d, %q)", n, path)
	}

	cached, ok := idx.Highest(dir, "lab", "solution")
	if !ok || cached != 2 {
		t.Fatalf("expected cache populated to 2, got (%d, %v)", cached, ok)
	}
}

func TestHighestNumberedFileCachedIgnoresStaleEntryForDeletedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lab_solution_1.soluct"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	idx, err := OpenVersionIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenVersionIndex: %v", err)
	}
	defer idx.Close()

	idx.Set(dir, "lab", "solution", 5)

	n, path, err := highestNumberedFileCached(idx, dir, "lab", "solution", "soluct")
	if err != nil {
		t.Fatalf("highestNumberedFileCached: %v", err)
	}
	if n != 1 || filepath.Base(path) != "lab_solution_1.soluct" {
		t.Fatalf("got (%d, %q), want fallback to real scan result (1, lab_solution_1.soluct)", n, path)
	}
}
