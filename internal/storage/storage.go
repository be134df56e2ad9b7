package storage

import (
	"context"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

// Backend names for storage selection.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Storage persists clock readings per source.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Put stores a reading, making it the latest for its source and
	// appending it to the source's history.
	Put(ctx context.Context, rd recorder.Reading) error

	// Latest retrieves the most recent reading for a source.
	// Returns nil, nil if the source has no readings.
	Latest(ctx context.Context, source string) (*recorder.Reading, error)

	// History retrieves readings for a source at or after since, oldest
	// first, up to limit entries. limit <= 0 means no limit.
	History(ctx context.Context, source string, since clock.Millis, limit int) ([]recorder.Reading, error)

	// Close releases backend resources.
	Close() error
}
