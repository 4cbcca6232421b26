package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrStoreDirRequired is returned by SaveMap when the HostStore has no
// directory configured. Unlike weights, a map snapshot has no in-process
// fallback — spec §4.5 reserves that degradation for weights only.
var ErrStoreDirRequired = errors.New("store: directory required")

// hostWeightsFile and hostMapFile mirror the firmware's
// ~/.rp2040_maze/heuristics.bin and map.bin layout: same MZHU/MZMP magic
// header device.go uses, packed little-endian, just without the flash
// page padding a file on a real filesystem doesn't need.
const (
	hostWeightsFile = "weights.bin"
	hostMapFile     = "map.bin"
)

// HostStore persists weights and a map snapshot as two header-framed
// binary files in a directory on the host filesystem — the simulator/CLI
// equivalent of the firmware's on-chip flash sector. A HostStore with no
// directory configured is legal: SaveWeights/LoadWeights degrade to an
// in-process last-known-weights cache (one per HostStore instance, the Go
// analogue of the original host build's process-wide static fallback),
// while SaveMap/LoadMap have no such fallback and report absence/failure.
type HostStore struct {
	dir string

	fallbackMu      sync.Mutex
	fallbackWeights WeightsRecord
	fallbackHas     bool
}

// NewHostStore returns a HostStore rooted at dir, creating dir if needed.
// dir may be empty — weights then persist only in the in-process
// fallback, matching the original host build's "HOME not set, keeping
// in-memory only" behavior instead of failing outright.
func NewHostStore(dir string) (*HostStore, error) {
	if dir == "" {
		return &HostStore{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create store directory: %w", err)
	}
	return &HostStore{dir: dir}, nil
}

func (s *HostStore) weightsPath() string {
	return filepath.Join(s.dir, hostWeightsFile)
}

func (s *HostStore) mapPath() string {
	return filepath.Join(s.dir, hostMapFile)
}

// SaveWeights implements Store.
func (s *HostStore) SaveWeights(w WeightsRecord) error {
	if s.dir == "" {
		s.fallbackMu.Lock()
		s.fallbackWeights = w
		s.fallbackHas = true
		s.fallbackMu.Unlock()
		return nil
	}

	buf := make([]byte, heuristicsHeaderSize+heuristicsPayloadSize)
	binary.LittleEndian.PutUint32(buf[0:4], flashMagicHeuristics)
	binary.LittleEndian.PutUint16(buf[4:6], flashRecordVersion)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(heuristicsPayloadSize))
	encodeWeightsPayload(buf[heuristicsHeaderSize:], w)

	if err := os.WriteFile(s.weightsPath(), buf, 0o644); err != nil {
		return fmt.Errorf("store: write weights file: %w", err)
	}
	return nil
}

// LoadWeights implements Store. A missing file, a directory where the
// file should be, or a header that fails magic/version/size validation
// are all reported as "not present" rather than as errors.
func (s *HostStore) LoadWeights() (WeightsRecord, bool, error) {
	if s.dir == "" {
		s.fallbackMu.Lock()
		defer s.fallbackMu.Unlock()
		if !s.fallbackHas {
			return WeightsRecord{}, false, nil
		}
		return s.fallbackWeights, true, nil
	}

	data, err := os.ReadFile(s.weightsPath())
	if err != nil {
		return WeightsRecord{}, false, nil
	}
	w, ok := decodeWeightsFile(data)
	if !ok {
		return WeightsRecord{}, false, nil
	}
	return w, true, nil
}

// SaveMap implements Store. Requires a directory — there is no
// in-process fallback for map snapshots.
func (s *HostStore) SaveMap(m MapRecord) error {
	if s.dir == "" {
		return ErrStoreDirRequired
	}

	payload := encodeMapPayload(m)
	buf := make([]byte, mapHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], flashMagicMap)
	binary.LittleEndian.PutUint16(buf[4:6], flashRecordVersion)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(m.Width))
	binary.LittleEndian.PutUint16(buf[8:10], uint16(m.Height))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(len(payload)))
	copy(buf[mapHeaderSize:], payload)

	if err := os.WriteFile(s.mapPath(), buf, 0o644); err != nil {
		return fmt.Errorf("store: write map file: %w", err)
	}
	return nil
}

// LoadMap implements Store.
func (s *HostStore) LoadMap() (MapRecord, bool, error) {
	if s.dir == "" {
		return MapRecord{}, false, nil
	}

	data, err := os.ReadFile(s.mapPath())
	if err != nil {
		return MapRecord{}, false, nil
	}
	m, ok := decodeMapFile(data)
	if !ok {
		return MapRecord{}, false, nil
	}
	return m, true, nil
}

// Erase implements Store, removing both files and clearing the
// in-process weights fallback. A file that is already absent is not an
// error — erasing an empty store is a successful no-op.
func (s *HostStore) Erase() error {
	s.fallbackMu.Lock()
	s.fallbackHas = false
	s.fallbackWeights = WeightsRecord{}
	s.fallbackMu.Unlock()

	if s.dir == "" {
		return nil
	}
	if err := removeIfExists(s.weightsPath()); err != nil {
		return err
	}
	if err := removeIfExists(s.mapPath()); err != nil {
		return err
	}
	return nil
}

// Status implements Store.
func (s *HostStore) Status() (StatusInfo, error) {
	_, present, err := s.LoadWeights()
	if err != nil {
		return StatusInfo{}, err
	}
	info := StatusInfo{}
	if present {
		info.SavedCount = 1
	}
	return info, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: remove %s: %w", path, err)
	}
	return nil
}

// decodeWeightsFile validates a host weights file's MZHU header and
// decodes its payload, the file-backed counterpart of device.go's
// page-backed decode in DeviceStore.LoadWeights.
func decodeWeightsFile(data []byte) (WeightsRecord, bool) {
	if len(data) != heuristicsHeaderSize+heuristicsPayloadSize {
		return WeightsRecord{}, false
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	version := binary.LittleEndian.Uint16(data[4:6])
	size := binary.LittleEndian.Uint16(data[6:8])
	if magic != flashMagicHeuristics || version != flashRecordVersion || int(size) != heuristicsPayloadSize {
		return WeightsRecord{}, false
	}
	return decodeWeightsPayload(data[heuristicsHeaderSize:]), true
}

// decodeMapFile validates a host map file's MZMP header and decodes its
// payload.
func decodeMapFile(data []byte) (MapRecord, bool) {
	if len(data) < mapHeaderSize {
		return MapRecord{}, false
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	version := binary.LittleEndian.Uint16(data[4:6])
	w := int(binary.LittleEndian.Uint16(data[6:8]))
	h := int(binary.LittleEndian.Uint16(data[8:10]))
	size := int(binary.LittleEndian.Uint16(data[10:12]))
	if magic != flashMagicMap || version != flashRecordVersion {
		return MapRecord{}, false
	}
	if size != w*h || mapHeaderSize+size > len(data) {
		return MapRecord{}, false
	}
	return decodeMapPayload(w, h, data[mapHeaderSize:mapHeaderSize+size]), true
}
