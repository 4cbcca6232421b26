package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

// VersionIndex caches the highest known `<prefix>_<kind>_<n>` suffix per
// map directory in an embedded Badger store, so a repeated solve against
// the same map doesn't rescan the directory on every write. It is purely
// an optimization: any failure to open, read, or write the index falls
// back to the directory scan in highestNumberedFile, and the on-disk
// artifacts remain the source of truth.
type VersionIndex struct {
	db *badger.DB
}

// OpenVersionIndex opens (creating if absent) a Badger database at dir.
// An empty dir opens an in-memory-only database instead, per §6's note
// that a missing cache directory degrades the cache to per-process
// scope rather than to failure.
func OpenVersionIndex(dir string) (*VersionIndex, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("recorder: open version index: %w", err)
	}
	return &VersionIndex{db: db}, nil
}

// Close releases the underlying Badger database.
func (v *VersionIndex) Close() error {
	if v == nil || v.db == nil {
		return nil
	}
	return v.db.Close()
}

func indexKey(mapDir, prefix, kind string) []byte {
	return []byte(filepath.Join(mapDir, prefix) + "\x00" + kind)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Highest returns the cached highest suffix for (mapDir, prefix, kind),
// or (0, false) if nothing is cached or the lookup failed for any
// reason. It never returns an error: a cache miss is indistinguishable
// from "not cached yet" to callers, which always have the directory
// scan to fall back on.
func (v *VersionIndex) Highest(mapDir, prefix, kind string) (int, bool) {
	if v == nil || v.db == nil {
		return 0, false
	}

	var n int
	err := v.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(mapDir, prefix, kind))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := strconv.Atoi(string(val))
			if err != nil {
				return err
			}
			n = parsed
			return nil
		})
	})
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set records n as the highest known suffix for (mapDir, prefix, kind).
// A write failure is swallowed — the next call falls back to the
// directory scan, which always reflects reality.
func (v *VersionIndex) Set(mapDir, prefix, kind string, n int) {
	if v == nil || v.db == nil {
		return
	}
	_ = v.db.Update(func(txn *badger.Txn) error {
		return txn.Set(indexKey(mapDir, prefix, kind), []byte(strconv.Itoa(n)))
	})
}

// highestNumberedFileCached wraps highestNumberedFile with an optional
// VersionIndex: it trusts a cache hit only enough to skip straight to
// that candidate file, still confirming it exists before use, and always
// falls back to the full scan on any cache miss or stale entry.
func highestNumberedFileCached(idx *VersionIndex, dir, prefix, kind, ext string) (int, string, error) {
	if idx != nil {
		if n, ok := idx.Highest(dir, prefix, kind); ok {
			path := filepath.Join(dir, fmt.Sprintf("%s_%s_%d.%s", prefix, kind, n, ext))
			if fileExists(path) {
				return n, path, nil
			}
		}
	}

	n, path, err := highestNumberedFile(dir, prefix, kind, ext)
	if err != nil {
		return 0, "", err
	}
	if idx != nil {
		idx.Set(dir, prefix, kind, n)
	}
	return n, path, nil
}
