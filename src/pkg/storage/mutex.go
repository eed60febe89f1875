package storage

import "sync"

// PathLocker serializes write operations against the same physical
// path within one process. Writes to distinct paths proceed
// concurrently. A second OS process writing the same files is not
// protected; the engine assumes one process owns the data directory.
type PathLocker struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

func NewPathLocker() *PathLocker {
	return &PathLocker{locks: make(map[string]*pathLock)}
}

// Lock blocks until no other in-flight write holds path.
func (l *PathLocker) Lock(path string) {
	l.mu.Lock()
	entry, ok := l.locks[path]
	if !ok {
		entry = &pathLock{}
		l.locks[path] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases path and drops the bookkeeping entry once the last
// waiter is gone, so the map does not grow with every path ever seen.
func (l *PathLocker) Unlock(path string) {
	l.mu.Lock()
	entry, ok := l.locks[path]
	if !ok {
		l.mu.Unlock()
		panic("storage: unlock of unlocked path " + path)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, path)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
