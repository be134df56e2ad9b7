package storage

import (
	"time"

	internalstorage "github.com/SmitUplenchwar2687/Tempo/internal/storage"
	"github.com/SmitUplenchwar2687/Tempo/pkg/clock"
)

// Backend names accepted by config and CLI flags.
const (
	BackendMemory = internalstorage.BackendMemory
	BackendRedis  = internalstorage.BackendRedis
)

// Storage persists clock readings and serves latest/history queries.
type Storage = internalstorage.Storage

// MemoryStorage is an in-process Storage with clock-driven retention.
type MemoryStorage = internalstorage.MemoryStorage

// RedisStorage is a Redis-backed Storage.
type RedisStorage = internalstorage.RedisStorage

// RedisConfig configures a RedisStorage.
type RedisConfig = internalstorage.RedisConfig

// NewMemoryStorage creates an in-memory Storage. Readings older than
// retention (judged by c) are pruned; retention 0 keeps everything.
func NewMemoryStorage(c clock.Clock, retention time.Duration) *MemoryStorage {
	return internalstorage.NewMemoryStorage(c, retention)
}

// NewRedisStorage connects to Redis and returns a Storage backed by it.
func NewRedisStorage(cfg *RedisConfig) (*RedisStorage, error) {
	return internalstorage.NewRedisStorage(cfg)
}
