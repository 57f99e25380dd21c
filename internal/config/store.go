package config

import (
	"sync"
	"sync/atomic"
)

// Store holds the published configuration snapshot. The multiprocess flag
// is mirrored outside the lock so it can be polled before, or while, a
// snapshot is being resolved.
type Store struct {
	mu   sync.RWMutex
	opts Options

	multiprocess atomic.Bool
}

// NewStore returns a store holding Default().
func NewStore() *Store {
	return &Store{opts: Default()}
}

var shared = sync.OnceValue(NewStore)

// Shared returns the process-wide store.
func Shared() *Store {
	return shared()
}

// Set publishes opts, replacing the previous snapshot, and mirrors its
// multiprocess setting. Callers keep no reference into the stored value.
func (s *Store) Set(opts Options) {
	snapshot := opts.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.multiprocess.Store(snapshot.Multiprocess)
	s.opts = snapshot
}

// Get returns a copy of the current snapshot.
func (s *Store) Get() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.opts.Clone()
}

// Read calls fn with the current snapshot while holding the read lock. fn
// must not modify the snapshot or retain it after returning.
func (s *Store) Read(fn func(*Options)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn(&s.opts)
}

// Multiprocess reports the mirrored multiprocess flag. It is false until set.
func (s *Store) Multiprocess() bool {
	return s.multiprocess.Load()
}

// SetMultiprocess sets the mirrored flag without touching the snapshot.
func (s *Store) SetMultiprocess(enabled bool) {
	s.multiprocess.Store(enabled)
}
