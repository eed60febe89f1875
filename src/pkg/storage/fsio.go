package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// WriteAtomic writes data to path with write-temp-then-rename
// atomicity. The rename is the atomicity boundary: a partial write is
// never observable at the final path, and on failure the previous
// content of path survives.
func WriteAtomic(fsys afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrWriteFailed, dir, err)
	}
	tmp := path + ".tmp-" + uuid.NewString()
	if err := afero.WriteFile(fsys, tmp, data, 0o644); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("%w: write %s: %v", ErrWriteFailed, tmp, err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		// POSIX rename replaces the destination atomically; some afero
		// test backends refuse instead. Only for those, move the old
		// content aside and retry, restoring it if the retry fails so
		// the previous content always survives a failed write.
		if FileExists(fsys, path) {
			bak := path + ".bak-" + uuid.NewString()
			if mvErr := fsys.Rename(path, bak); mvErr == nil {
				if retryErr := fsys.Rename(tmp, path); retryErr == nil {
					_ = fsys.Remove(bak)
					atomicWritesTotal.Inc()
					return nil
				}
				_ = fsys.Rename(bak, path)
			}
		}
		_ = fsys.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %v", ErrWriteFailed, path, err)
	}
	atomicWritesTotal.Inc()
	return nil
}

// WriteJSONAtomic marshals v and writes it atomically to path.
func WriteJSONAtomic(fsys afero.Fs, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrWriteFailed, path, err)
	}
	return WriteAtomic(fsys, path, data)
}

// ReadJSON decodes the JSON file at path into out. A missing file is
// not an error: out is left untouched and found is false. Any other
// I/O or parse failure wraps ErrReadFailed.
func ReadJSON(fsys afero.Fs, path string, out any) (found bool, err error) {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %v", ErrReadFailed, path, err)
	}
	if !ok {
		return false, nil
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %v", ErrReadFailed, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: parse %s: %v", ErrReadFailed, path, err)
	}
	return true, nil
}

// FileExists probes path without opening it.
func FileExists(fsys afero.Fs, path string) bool {
	ok, err := afero.Exists(fsys, path)
	return err == nil && ok
}

// DirExists reports whether path exists and is a directory.
func DirExists(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}
