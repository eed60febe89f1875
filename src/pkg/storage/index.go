package storage

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// IndexEntry maps one entity id to its physical location plus a few
// denormalized lookup fields. The index is a cache of truth, not the
// truth itself: the on-disk record file always wins.
type IndexEntry struct {
	Path        string            `json:"path"`
	LastUpdated string            `json:"lastUpdated"`
	Lookup      map[string]string `json:"lookup,omitempty"`
}

// Index is the whole single-file index of one entity kind, keyed by
// decimal id.
type Index map[string]IndexEntry

// SaveEntryOptions tune SaveEntry.
type SaveEntryOptions struct {
	// VerifyOnDisk requires the target record file to exist before the
	// index mutation commits. Primary defense against dangling entries
	// after partial failures.
	VerifyOnDisk bool
}

// IndexManager owns the single JSON index file of one entity kind,
// cached in memory with a TTL and persisted as a whole-file atomic
// write.
type IndexManager struct {
	store *Store
	kind  KindSpec
}

func NewIndexManager(store *Store, kind KindSpec) *IndexManager {
	return &IndexManager{store: store, kind: kind}
}

// Path is the absolute location of the index file.
func (m *IndexManager) Path() string {
	return filepath.Join(m.store.Root, m.kind.Name+"-index.json")
}

// Load returns the cached index while it is fresh, otherwise re-reads
// it from disk. A missing file yields an empty index.
func (m *IndexManager) Load() (Index, error) {
	if idx, ok := m.store.indexCache.Get(m.Path()); ok {
		indexCacheHitsTotal.Inc()
		return idx, nil
	}
	indexCacheMissesTotal.Inc()
	idx := Index{}
	if _, err := ReadJSON(m.store.FS, m.Path(), &idx); err != nil {
		return nil, err
	}
	m.store.indexCache.Add(m.Path(), idx)
	return idx, nil
}

// Save persists the whole index atomically and refreshes the cache.
func (m *IndexManager) Save(idx Index) error {
	if err := WriteJSONAtomic(m.store.FS, m.Path(), idx); err != nil {
		return err
	}
	m.store.indexCache.Add(m.Path(), idx)
	return nil
}

// GetEntry looks id up in the index.
func (m *IndexManager) GetEntry(id int) (IndexEntry, bool, error) {
	idx, err := m.Load()
	if err != nil {
		return IndexEntry{}, false, err
	}
	entry, ok := idx[strconv.Itoa(id)]
	return entry, ok, nil
}

// SaveEntry performs a read-modify-write of the whole index under the
// index file's path lock, so two nearly-simultaneous saves cannot lose
// an update.
func (m *IndexManager) SaveEntry(id int, entry IndexEntry, opts SaveEntryOptions) error {
	if opts.VerifyOnDisk {
		target := m.store.RecordPath(m.kind, entry.Path, id)
		if !FileExists(m.store.FS, target) {
			return fmt.Errorf("%w: %s %d points at missing %s", ErrStaleIndex, m.kind.Name, id, target)
		}
	}
	if entry.LastUpdated == "" {
		entry.LastUpdated = FormatTimestamp(time.Now())
	}

	m.store.Locker.Lock(m.Path())
	defer m.store.Locker.Unlock(m.Path())

	idx, err := m.loadFromDisk()
	if err != nil {
		return err
	}
	idx[strconv.Itoa(id)] = entry
	return m.Save(idx)
}

// RemoveEntry deletes id from the index, if present.
func (m *IndexManager) RemoveEntry(id int) error {
	m.store.Locker.Lock(m.Path())
	defer m.store.Locker.Unlock(m.Path())

	idx, err := m.loadFromDisk()
	if err != nil {
		return err
	}
	if _, ok := idx[strconv.Itoa(id)]; !ok {
		return nil
	}
	delete(idx, strconv.Itoa(id))
	return m.Save(idx)
}

// loadFromDisk bypasses the TTL cache. Mutating paths must start from
// the persisted state or a stale cached copy could resurrect removed
// entries.
func (m *IndexManager) loadFromDisk() (Index, error) {
	idx := Index{}
	if _, err := ReadJSON(m.store.FS, m.Path(), &idx); err != nil {
		return nil, err
	}
	return idx, nil
}
