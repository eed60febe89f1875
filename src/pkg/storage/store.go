package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/spf13/afero"
)

const (
	// DefaultIndexTTL bounds how long a loaded index is trusted before
	// it is re-read from disk.
	DefaultIndexTTL = 60 * time.Second

	defaultIndexCacheSize = 16
)

// KindSpec describes the on-disk conventions of one entity kind: the
// directory under the data root, the legacy flat file, and the record
// file name inside a shard directory.
type KindSpec struct {
	Name       string
	RecordFile func(id int) string
}

var (
	KindUser         = KindSpec{Name: "users", RecordFile: profileFile}
	KindFreelancer   = KindSpec{Name: "freelancers", RecordFile: profileFile}
	KindOrganization = KindSpec{Name: "organizations", RecordFile: profileFile}
	KindProject      = KindSpec{Name: "projects", RecordFile: func(int) string { return "project.json" }}
	KindTask         = KindSpec{Name: "tasks", RecordFile: func(id int) string { return fmt.Sprintf("%d-task.json", id) }}
)

func profileFile(int) string { return "profile.json" }

// Options configure a Store.
type Options struct {
	Root           string
	IndexTTL       time.Duration
	IndexCacheSize int
}

// Store is the shared backend every repository reaches the data tree
// through: the filesystem, the data root, the per-path write locker and
// the index TTL cache.
type Store struct {
	FS     afero.Fs
	Root   string
	Locker *PathLocker

	indexCache *expirable.LRU[string, Index]
}

// NewStore builds a Store over fsys. Root defaults to "data".
func NewStore(fsys afero.Fs, opts Options) *Store {
	if opts.Root == "" {
		opts.Root = "data"
	}
	if opts.IndexTTL <= 0 {
		opts.IndexTTL = DefaultIndexTTL
	}
	if opts.IndexCacheSize <= 0 {
		opts.IndexCacheSize = defaultIndexCacheSize
	}
	return &Store{
		FS:         fsys,
		Root:       opts.Root,
		Locker:     NewPathLocker(),
		indexCache: expirable.NewLRU[string, Index](opts.IndexCacheSize, nil, opts.IndexTTL),
	}
}

// KindDir returns the absolute directory holding kind's sharded tree.
func (s *Store) KindDir(kind KindSpec) string {
	return filepath.Join(s.Root, kind.Name)
}

// RecordPath joins a relative shard path ("YYYY/MM/DD/<id>") with the
// kind's record file name.
func (s *Store) RecordPath(kind KindSpec, rel string, id int) string {
	return filepath.Join(s.KindDir(kind), filepath.FromSlash(rel), kind.RecordFile(id))
}

// ClearIndexCache drops every cached index. Lifecycle hook for tests
// and tooling that mutate index files out of band.
func (s *Store) ClearIndexCache() {
	s.indexCache.Purge()
}

// LegacyPath is the flat pre-migration file for kind, e.g.
// "data/users.json". Read-only: the engine never writes it back.
func (s *Store) LegacyPath(kind KindSpec) string {
	return filepath.Join(s.Root, kind.Name+".json")
}

// LegacyFind scans the legacy flat array of kind for the record with
// the given id. Returns the raw element so each repository can apply
// its own format conversion.
func (s *Store) LegacyFind(kind KindSpec, id int) (json.RawMessage, bool, error) {
	var items []json.RawMessage
	found, err := ReadJSON(s.FS, s.LegacyPath(kind), &items)
	if err != nil || !found {
		return nil, false, err
	}
	for _, raw := range items {
		var probe struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			continue
		}
		if probe.ID == id {
			return raw, true, nil
		}
	}
	return nil, false, nil
}
