package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

// Record is implemented by every entity the engine persists.
type Record interface {
	RecordID() int
	CreatedAtISO() string
	Touch(iso string)
	LookupFields() map[string]string
}

// recordStore bundles the per-kind collaborators shared by the
// concrete repositories: resolver chain, index manager, validator.
type recordStore struct {
	backend  *storage.Store
	kind     storage.KindSpec
	index    *storage.IndexManager
	resolver *storage.Resolver
	validate *validator.Validate
	log      log.Log
}

func newRecordStore(backend *storage.Store, kind storage.KindSpec, validate *validator.Validate, logger log.Log) *recordStore {
	index := storage.NewIndexManager(backend, kind)
	return &recordStore{
		backend:  backend,
		kind:     kind,
		index:    index,
		resolver: storage.NewResolver(backend, kind, index, logger),
		validate: validate,
		log:      logger,
	}
}

func (s *recordStore) exists(id int) (bool, error) {
	res, err := s.resolver.Resolve(id)
	if err != nil {
		return false, err
	}
	return res != nil, nil
}

// write persists rec at its canonical shard path and commits the index
// entry with on-disk verification. Validation happens before any I/O.
// shardAt overrides the shard timestamp when non-zero (organizations
// pin theirs to the first commissioner's signup time).
//
// The file write and the index update are not transactional across a
// crash between them; the resolver's scan tier self-heals that gap on
// the next read.
func (s *recordStore) write(ctx context.Context, rec Record, shardAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: %s: %v", storage.ErrValidation, s.kind.Name, err)
	}
	createdAt, err := storage.ParseTimestamp(rec.CreatedAtISO())
	if err != nil {
		return fmt.Errorf("%w: %s %d: createdAt: %v", storage.ErrInvalidRecord, s.kind.Name, rec.RecordID(), err)
	}
	if shardAt.IsZero() {
		shardAt = createdAt
	}

	// An already-written record keeps its shard even if createdAt was
	// edited: the resolved location wins over recomputation.
	var rel string
	res, err := s.resolver.Resolve(rec.RecordID())
	if err != nil {
		return err
	}
	if res != nil && res.Source != storage.SourceLegacy {
		rel = res.Path
	} else {
		rel = storage.ShardPath(rec.RecordID(), shardAt)
	}

	rec.Touch(storage.FormatTimestamp(time.Now()))

	path := s.backend.RecordPath(s.kind, rel, rec.RecordID())
	s.backend.Locker.Lock(path)
	err = storage.WriteJSONAtomic(s.backend.FS, path, rec)
	s.backend.Locker.Unlock(path)
	if err != nil {
		return err
	}

	entry := storage.IndexEntry{Path: rel, Lookup: rec.LookupFields()}
	return s.index.SaveEntry(rec.RecordID(), entry, storage.SaveEntryOptions{VerifyOnDisk: true})
}

// findRecord resolves id and loads the record. A legacy-fallback hit
// is served from the flat array, converted by fromLegacy when the kind
// needs format conversion (nil means the shapes are identical). The
// legacy tier is read-only.
func findRecord[T any](s *recordStore, id int, fromLegacy func(json.RawMessage) (*T, error)) (*T, error) {
	res, err := s.resolver.Resolve(id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %s %d", storage.ErrNotFound, s.kind.Name, id)
	}
	if res.Source == storage.SourceLegacy {
		raw, ok, err := s.backend.LegacyFind(s.kind, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s %d", storage.ErrNotFound, s.kind.Name, id)
		}
		if fromLegacy != nil {
			return fromLegacy(raw)
		}
		out := new(T)
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("%w: legacy %s %d: %v", storage.ErrReadFailed, s.kind.Name, id, err)
		}
		return out, nil
	}

	out := new(T)
	found, err := storage.ReadJSON(s.backend.FS, s.backend.RecordPath(s.kind, res.Path, id), out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s %d gone from %s", storage.ErrNotFound, s.kind.Name, id, res.Path)
	}
	return out, nil
}
