package storage

import (
	"context"
	"sync"
	"time"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

// MemoryStorage is an in-memory storage backend backed by a map.
// It uses a Clock for retention checks, enabling virtual-time testing.
// Thread-safe for concurrent use.
type MemoryStorage struct {
	mu        sync.RWMutex
	histories map[string][]recorder.Reading
	clock     clock.Clock
	retention time.Duration // zero means keep everything
}

// NewMemoryStorage creates an in-memory storage using the given clock.
// Readings older than retention (relative to the clock) are dropped;
// a zero retention keeps all readings.
func NewMemoryStorage(c clock.Clock, retention time.Duration) *MemoryStorage {
	return &MemoryStorage{
		histories: make(map[string][]recorder.Reading),
		clock:     c,
		retention: retention,
	}
}

func (s *MemoryStorage) Put(_ context.Context, rd recorder.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[rd.Source] = append(s.histories[rd.Source], rd)
	s.pruneLocked(rd.Source)
	return nil
}

func (s *MemoryStorage) Latest(_ context.Context, source string) (*recorder.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.histories[source]
	if len(history) == 0 {
		return nil, nil
	}
	// Return a copy to prevent mutation.
	rd := history[len(history)-1]
	return &rd, nil
}

func (s *MemoryStorage) History(_ context.Context, source string, since clock.Millis, limit int) ([]recorder.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recorder.Reading
	for _, rd := range s.histories[source] {
		if rd.Millis < since {
			continue
		}
		out = append(out, rd)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

// Cleanup drops readings past the retention window for all sources.
// Call periodically for long-running sessions.
func (s *MemoryStorage) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for source := range s.histories {
		s.pruneLocked(source)
	}
}

// Len returns the total number of stored readings across all sources.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, history := range s.histories {
		n += len(history)
	}
	return n
}

// pruneLocked drops readings older than the retention window.
// Must be called with s.mu held for writing.
func (s *MemoryStorage) pruneLocked(source string) {
	if s.retention <= 0 {
		return
	}

	cutoff := s.clock.Now() - clock.Millis(s.retention.Milliseconds())
	history := s.histories[source]

	keep := 0
	for keep < len(history) && history[keep].Millis < cutoff {
		keep++
	}
	if keep > 0 {
		s.histories[source] = append([]recorder.Reading(nil), history[keep:]...)
	}
	if len(s.histories[source]) == 0 {
		delete(s.histories, source)
	}
}
