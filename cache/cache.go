package cache

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Builder computes the value of a normalized absolute path.
type Builder func(path string) (any, error)

type entry struct {
	value  any
	ticket uint64
}

// Store is a build-once cache keyed by normalized absolute path.
type Store struct {
	build   Builder
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	tickets atomic.Uint64
	// builds with a ticket at or below a floor started before an invalidation
	floors    map[string]uint64
	clearedAt uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty store that computes missing entries with build.
func New(build Builder, opts ...Option) *Store {
	store := &Store{
		build:   build,
		logger:  slog.Default(),
		entries: make(map[string]entry),
		floors:  make(map[string]uint64),
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// Get returns the cached value of path, building it on first use.
func (s *Store) Get(path string) (any, error) {
	value, ok := s.lookup(path)
	if ok {
		return value, nil
	}

	value, err, _ := s.group.Do(path, func() (any, error) {
		cached, ok := s.lookup(path)
		if ok {
			return cached, nil
		}

		return s.load(path)
	})

	return value, err //nolint:wrapcheck // builder errors are already classified
}

// Ensure builds path when reload is true or no entry exists yet; otherwise it is a no-op.
func (s *Store) Ensure(path string, reload bool) error {
	if !reload {
		_, err := s.Get(path)

		return err
	}

	// A reload must not join a build that started before it.
	s.group.Forget(path)

	_, err, _ := s.group.Do(path, func() (any, error) {
		return s.load(path)
	})

	return err //nolint:wrapcheck // builder errors are already classified
}

// load runs the builder and stores the result unless a later-started build already stored.
func (s *Store) load(path string) (any, error) {
	ticket := s.tickets.Add(1)
	started := time.Now()

	value, err := s.build(path)
	if err != nil {
		s.logger.Debug("cache build failed", slog.String("path", path), slog.String("error", err.Error()))

		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket <= s.clearedAt || ticket <= s.floors[path] {
		s.logger.Debug("cache build discarded after invalidation", slog.String("path", path))

		return value, nil
	}

	current, exists := s.entries[path]
	if exists && current.ticket > ticket {
		s.logger.Debug("cache build superseded", slog.String("path", path))

		return current.value, nil
	}

	s.entries[path] = entry{value: value, ticket: ticket}

	s.logger.Debug("cache entry built", slog.String("path", path), slog.Duration("took", time.Since(started)))

	return value, nil
}

func (s *Store) lookup(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found, ok := s.entries[path]

	return found.value, ok
}

// Loaded reports whether path has an entry.
func (s *Store) Loaded(path string) bool {
	_, ok := s.lookup(path)

	return ok
}

// Invalidate drops the entry of path; the next Get rebuilds it.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, path)
	s.floors[path] = s.tickets.Load()
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
	s.floors = make(map[string]uint64)
	s.clearedAt = s.tickets.Load()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Paths returns the cached paths in sorted order.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.entries))
	for path := range s.entries {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}
