package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
)

// Flash layout constants, mirrored from the firmware's reserved sector:
// page 0 holds the heuristics record, page 1 holds the map snapshot.
const (
	flashMagicHeuristics uint32 = 0x4D5A4855 // 'MZHU'
	flashMagicMap        uint32 = 0x4D5A4D50 // 'MZMP'
	flashRecordVersion   uint16 = 0x0001

	heuristicsHeaderSize = 4 + 2 + 2   // magic + version + size
	heuristicsPayloadSize = 8 * 4      // four float64 weights
	mapHeaderSize         = 4 + 2 + 2 + 2 + 2 // magic + version + w + h + size
)

// FlashMedium abstracts the raw paged-and-sectored storage a DeviceStore
// writes onto. A real board backs it with on-chip flash; tests and the
// simulator back it with NewMemoryMedium or NewFileMedium.
type FlashMedium interface {
	// SectorSize returns the erase granularity in bytes.
	SectorSize() int
	// PageSize returns the program granularity in bytes.
	PageSize() int
	// ReadAt reads len(p) bytes starting at byte offset off.
	ReadAt(p []byte, off int64) (int, error)
	// ProgramPage writes data (which must be exactly PageSize() bytes)
	// to the page at pageIndex. The underlying sector must already be
	// erased, or mid-sector-lifetime behavior is medium-defined, as on
	// real NOR flash.
	ProgramPage(pageIndex int, data []byte) error
	// EraseSector resets every page this medium manages to its erased
	// value (0xFF).
	EraseSector() error
}

var (
	// ErrPayloadTooLarge is returned when a record would not fit in a
	// single flash page after its header.
	ErrPayloadTooLarge = errors.New("store: payload exceeds page size")
)

// DeviceStore persists weights and a map snapshot onto a FlashMedium,
// using the same page layout as the board firmware: page 0 is the
// heuristics record, page 1 is the map snapshot. A mutex held across
// erase+program stands in for the firmware's disable-interrupts window,
// since a torn sector read here would be just as misleading as a
// mid-program interrupt there.
type DeviceStore struct {
	mu     sync.Mutex
	medium FlashMedium
}

// NewDeviceStore wraps medium. It does not itself erase or validate
// anything; LoadWeights/LoadMap report "not present" for an unformatted
// medium exactly as they would for a freshly erased one.
func NewDeviceStore(medium FlashMedium) *DeviceStore {
	return &DeviceStore{medium: medium}
}

func (d *DeviceStore) readPage(pageIndex int) ([]byte, error) {
	buf := make([]byte, d.medium.PageSize())
	off := int64(pageIndex) * int64(d.medium.PageSize())
	if _, err := d.medium.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("store: read page %d: %w", pageIndex, err)
	}
	return buf, nil
}

// SaveWeights implements Store.
func (d *DeviceStore) SaveWeights(w WeightsRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if heuristicsHeaderSize+heuristicsPayloadSize > d.medium.PageSize() {
		return ErrPayloadTooLarge
	}

	page := make([]byte, d.medium.PageSize())
	for i := range page {
		page[i] = 0xFF
	}
	binary.LittleEndian.PutUint32(page[0:4], flashMagicHeuristics)
	binary.LittleEndian.PutUint16(page[4:6], flashRecordVersion)
	binary.LittleEndian.PutUint16(page[6:8], uint16(heuristicsPayloadSize))
	encodeWeightsPayload(page[heuristicsHeaderSize:heuristicsHeaderSize+heuristicsPayloadSize], w)

	if err := d.medium.EraseSector(); err != nil {
		return fmt.Errorf("store: erase sector: %w", err)
	}
	if err := d.medium.ProgramPage(0, page); err != nil {
		return fmt.Errorf("store: program heuristics page: %w", err)
	}
	return nil
}

// LoadWeights implements Store.
func (d *DeviceStore) LoadWeights() (WeightsRecord, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	page, err := d.readPage(0)
	if err != nil {
		return WeightsRecord{}, false, err
	}

	magic := binary.LittleEndian.Uint32(page[0:4])
	version := binary.LittleEndian.Uint16(page[4:6])
	size := binary.LittleEndian.Uint16(page[6:8])
	if magic != flashMagicHeuristics || version != flashRecordVersion || int(size) != heuristicsPayloadSize {
		return WeightsRecord{}, false, nil
	}
	if heuristicsHeaderSize+int(size) > len(page) {
		return WeightsRecord{}, false, nil
	}

	w := decodeWeightsPayload(page[heuristicsHeaderSize : heuristicsHeaderSize+int(size)])
	return w, true, nil
}

// SaveMap implements Store. The map snapshot always lands on page 1, the
// same arrangement the firmware uses to keep heuristics and map in one
// sector.
func (d *DeviceStore) SaveMap(m MapRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	payload := encodeMapPayload(m)
	if mapHeaderSize+len(payload) > d.medium.PageSize() {
		return ErrPayloadTooLarge
	}

	page := make([]byte, d.medium.PageSize())
	for i := range page {
		page[i] = 0xFF
	}
	binary.LittleEndian.PutUint32(page[0:4], flashMagicMap)
	binary.LittleEndian.PutUint16(page[4:6], flashRecordVersion)
	binary.LittleEndian.PutUint16(page[6:8], uint16(m.Width))
	binary.LittleEndian.PutUint16(page[8:10], uint16(m.Height))
	binary.LittleEndian.PutUint16(page[10:12], uint16(len(payload)))
	copy(page[mapHeaderSize:], payload)

	// Re-erasing here would destroy the heuristics page already sitting
	// in page 0, so SaveMap only reprograms its own page. On real NOR
	// flash this relies on the caller having erased the sector via
	// SaveWeights (or Erase) first, exactly as the firmware's save order
	// implies: heuristics before map.
	if err := d.medium.ProgramPage(1, page); err != nil {
		return fmt.Errorf("store: program map page: %w", err)
	}
	return nil
}

// LoadMap implements Store.
func (d *DeviceStore) LoadMap() (MapRecord, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	page, err := d.readPage(1)
	if err != nil {
		return MapRecord{}, false, err
	}

	magic := binary.LittleEndian.Uint32(page[0:4])
	version := binary.LittleEndian.Uint16(page[4:6])
	w := int(binary.LittleEndian.Uint16(page[6:8]))
	h := int(binary.LittleEndian.Uint16(page[8:10]))
	size := int(binary.LittleEndian.Uint16(page[10:12]))
	if magic != flashMagicMap || version != flashRecordVersion {
		return MapRecord{}, false, nil
	}
	if size != w*h || mapHeaderSize+size > len(page) {
		return MapRecord{}, false, nil
	}

	rec := decodeMapPayload(w, h, page[mapHeaderSize:mapHeaderSize+size])
	return rec, true, nil
}

// Erase implements Store.
func (d *DeviceStore) Erase() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.medium.EraseSector(); err != nil {
		return fmt.Errorf("store: erase sector: %w", err)
	}
	return nil
}

// Status implements Store, reporting whether page 0 currently holds a
// valid weights record.
func (d *DeviceStore) Status() (StatusInfo, error) {
	_, present, err := d.LoadWeights()
	if err != nil {
		return StatusInfo{}, err
	}
	info := StatusInfo{}
	if present {
		info.SavedCount = 1
	}
	return info, nil
}

func encodeWeightsPayload(dst []byte, w WeightsRecord) {
	binary.LittleEndian.PutUint64(dst[0:8], math.Float64bits(w.Right))
	binary.LittleEndian.PutUint64(dst[8:16], math.Float64bits(w.Front))
	binary.LittleEndian.PutUint64(dst[16:24], math.Float64bits(w.Left))
	binary.LittleEndian.PutUint64(dst[24:32], math.Float64bits(w.Back))
}

func decodeWeightsPayload(src []byte) WeightsRecord {
	return WeightsRecord{
		Right: math.Float64frombits(binary.LittleEndian.Uint64(src[0:8])),
		Front: math.Float64frombits(binary.LittleEndian.Uint64(src[8:16])),
		Left:  math.Float64frombits(binary.LittleEndian.Uint64(src[16:24])),
		Back:  math.Float64frombits(binary.LittleEndian.Uint64(src[24:32])),
	}
}

// encodeMapPayload packs one byte per cell, bit 0..3 = N,E,S,W wall
// presence, matching the firmware's pmem_encode_map_bytes layout.
func encodeMapPayload(m MapRecord) []byte {
	out := make([]byte, len(m.Cells))
	for i, c := range m.Cells {
		var b byte
		if c.WallN {
			b |= 1
		}
		if c.WallE {
			b |= 2
		}
		if c.WallS {
			b |= 4
		}
		if c.WallW {
			b |= 8
		}
		out[i] = b
	}
	return out
}

func decodeMapPayload(width, height int, data []byte) MapRecord {
	cells := make([]MapCell, width*height)
	for i, b := range data {
		cells[i] = MapCell{
			WallN: b&1 != 0,
			WallE: b&2 != 0,
			WallS: b&4 != 0,
			WallW: b&8 != 0,
		}
	}
	return MapRecord{Width: width, Height: height, Cells: cells}
}
