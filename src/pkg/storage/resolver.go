package storage

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
)

// Resolution tiers, in lookup order.
const (
	SourceIndex  = "index"
	SourceScan   = "scan"
	SourceLegacy = "legacy-fallback"
)

// Resolution is the outcome of a successful path lookup. Path is the
// shard segment relative to the kind directory, or a legacy sentinel
// when no hierarchical path exists yet.
type Resolution struct {
	Path   string
	Source string
}

// LegacySentinel marks a record that still lives only in the flat
// pre-migration file of its kind.
func LegacySentinel(kind KindSpec) string {
	return "legacy:" + kind.Name + ".json"
}

// Resolver turns a logical entity id into a physical location through
// the index-first lookup chain: index entry (verified on disk), then a
// recursive scan of the date-sharded tree, then the legacy flat file.
// The chain keeps reads correct before, during and after a bulk
// migration off flat storage.
type Resolver struct {
	store *Store
	kind  KindSpec
	index *IndexManager
	log   log.Log
}

func NewResolver(store *Store, kind KindSpec, index *IndexManager, logger log.Log) *Resolver {
	return &Resolver{store: store, kind: kind, index: index, log: logger}
}

// Resolve returns the record's location and provenance, or (nil, nil)
// when no tier holds the id.
func (r *Resolver) Resolve(id int) (*Resolution, error) {
	// Tier 1: index entry whose target file is actually present. A
	// stale entry is not fatal; it falls through to the scan.
	entry, ok, err := r.index.GetEntry(id)
	if err != nil {
		return nil, err
	}
	if ok {
		if FileExists(r.store.FS, r.store.RecordPath(r.kind, entry.Path, id)) {
			resolveTotal.WithLabelValues(r.kind.Name, SourceIndex).Inc()
			return &Resolution{Path: entry.Path, Source: SourceIndex}, nil
		}
		r.log.Info("resolve", "stale index entry, falling through to scan", r.kind.Name, strconv.Itoa(id))
	}

	// Tier 2: walk the year/month/day tree for a directory literally
	// named after the id. Expensive repair scan, not a steady-state
	// query path; hot reads resolve via the index after warm-up.
	rel, found, err := r.scan(id)
	if err != nil {
		return nil, err
	}
	if found {
		r.log.Slow("resolve", "record located by repair scan", r.kind.Name, strconv.Itoa(id))
		r.repairIndex(id, rel)
		resolveTotal.WithLabelValues(r.kind.Name, SourceScan).Inc()
		return &Resolution{Path: rel, Source: SourceScan}, nil
	}

	// Tier 3: the flat legacy file, read-only.
	if _, ok, err := r.store.LegacyFind(r.kind, id); err != nil {
		return nil, err
	} else if ok {
		resolveTotal.WithLabelValues(r.kind.Name, SourceLegacy).Inc()
		return &Resolution{Path: LegacySentinel(r.kind), Source: SourceLegacy}, nil
	}

	resolveMissTotal.WithLabelValues(r.kind.Name).Inc()
	return nil, nil
}

// scan walks data/<kind>/YYYY/MM/DD looking for a shard directory
// named id that holds the kind's record file.
func (r *Resolver) scan(id int) (string, bool, error) {
	root := r.store.KindDir(r.kind)
	if !DirExists(r.store.FS, root) {
		return "", false, nil
	}
	years, err := readDirNames(r.store.FS, root)
	if err != nil {
		return "", false, err
	}
	name := strconv.Itoa(id)
	for _, year := range years {
		months, err := readDirNames(r.store.FS, filepath.Join(root, year))
		if err != nil {
			return "", false, err
		}
		for _, month := range months {
			days, err := readDirNames(r.store.FS, filepath.Join(root, year, month))
			if err != nil {
				return "", false, err
			}
			for _, day := range days {
				rel := year + "/" + month + "/" + day + "/" + name
				if FileExists(r.store.FS, r.store.RecordPath(r.kind, rel, id)) {
					return rel, true, nil
				}
			}
		}
	}
	return "", false, nil
}

// repairIndex opportunistically writes the entry discovered by a scan
// so the next resolution hits tier 1. Best effort: a failed repair
// degrades to slower lookups, it never fails the read.
func (r *Resolver) repairIndex(id int, rel string) {
	err := r.index.SaveEntry(id, IndexEntry{Path: rel}, SaveEntryOptions{VerifyOnDisk: true})
	if err != nil {
		r.log.Error("resolve", fmt.Sprintf("index repair failed: %v", err), r.kind.Name, strconv.Itoa(id))
	}
}

func readDirNames(fsys afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: readdir %s: %v", ErrReadFailed, dir, err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	return names, nil
}
