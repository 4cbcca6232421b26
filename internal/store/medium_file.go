package store

import (
	"fmt"
	"os"
)

// FileMedium backs a FlashMedium with a single fixed-size file, standing
// in for a reserved flash sector the way the firmware's host build
// stands in for real NOR flash with files under $HOME.
type FileMedium struct {
	path      string
	pageSize  int
	pageCount int
}

// NewFileMedium opens (creating if absent) a file at path sized
// pageSize*pageCount bytes, erased to 0xFF on first creation. An
// existing file of the right size is left untouched; one of the wrong
// size is truncated and re-erased, since a stale partial file is no more
// trustworthy than an unformatted sector.
func NewFileMedium(path string, pageSize, pageCount int) (*FileMedium, error) {
	fm := &FileMedium{path: path, pageSize: pageSize, pageCount: pageCount}

	info, err := os.Stat(path)
	if err == nil && info.Size() == int64(pageSize*pageCount) {
		return fm, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("store: stat medium file: %w", err)
	}

	if err := fm.EraseSector(); err != nil {
		return nil, err
	}
	return fm, nil
}

func (f *FileMedium) SectorSize() int { return f.pageSize * f.pageCount }
func (f *FileMedium) PageSize() int   { return f.pageSize }

func (f *FileMedium) ReadAt(p []byte, off int64) (int, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return 0, fmt.Errorf("store: open medium file: %w", err)
	}
	defer file.Close()

	n, err := file.ReadAt(p, off)
	if err != nil {
		return n, fmt.Errorf("store: read medium file: %w", err)
	}
	return n, nil
}

func (f *FileMedium) ProgramPage(pageIndex int, data []byte) error {
	if pageIndex < 0 || pageIndex >= f.pageCount {
		return fmt.Errorf("store: page index %d out of range", pageIndex)
	}
	if len(data) != f.pageSize {
		return fmt.Errorf("store: program data length %d != page size %d", len(data), f.pageSize)
	}

	file, err := os.OpenFile(f.path, os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("store: open medium file for write: %w", err)
	}
	defer file.Close()

	off := int64(pageIndex) * int64(f.pageSize)
	if _, err := file.WriteAt(data, off); err != nil {
		return fmt.Errorf("store: write medium file: %w", err)
	}
	return nil
}

func (f *FileMedium) EraseSector() error {
	blank := make([]byte, f.pageSize*f.pageCount)
	for i := range blank {
		blank[i] = 0xFF
	}
	if err := os.WriteFile(f.path, blank, 0o644); err != nil {
		return fmt.Errorf("store: erase medium file: %w", err)
	}
	return nil
}
