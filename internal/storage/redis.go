package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

const (
	defaultRedisPoolSize    = 20
	defaultRedisMaxRetries  = 3
	defaultRedisDialTimeout = 5 * time.Second

	redisLatestPrefix  = "tempo:latest:"
	redisHistoryPrefix = "tempo:history:"
)

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Cluster      bool
	ClusterNodes []string
	PoolSize     int
	MaxRetries   int
	DialTimeout  time.Duration
	Retention    time.Duration // zero means keep everything
}

// RedisStorage is a Redis-backed implementation of Storage.
// The latest reading per source lives in a string key; history lives in a
// sorted set scored by the reading's millisecond instant.
type RedisStorage struct {
	client    redis.UniversalClient
	retention time.Duration

	closeOnce sync.Once
	closeErr  error
}

// NewRedisStorage constructs a Redis backend and verifies connectivity.
func NewRedisStorage(cfg *RedisConfig) (*RedisStorage, error) {
	conf, err := normalizeRedisConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := newRedisClient(conf)
	if err != nil {
		return nil, err
	}

	s := &RedisStorage{
		client:    client,
		retention: conf.Retention,
	}

	if err := s.pingWithRetry(context.Background(), conf.MaxRetries); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return s, nil
}

func (s *RedisStorage) Put(ctx context.Context, rd recorder.Reading) error {
	if rd.Source == "" {
		return fmt.Errorf("reading source is required")
	}

	data, err := json.Marshal(rd)
	if err != nil {
		return fmt.Errorf("marshaling reading: %w", err)
	}

	historyKey := redisHistoryPrefix + rd.Source

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisLatestPrefix+rd.Source, data, 0)
	pipe.ZAdd(ctx, historyKey, redis.Z{
		Score:  float64(rd.Millis),
		Member: data,
	})
	if s.retention > 0 {
		cutoff := int64(rd.Millis) - s.retention.Milliseconds()
		pipe.ZRemRangeByScore(ctx, historyKey, "-inf", "("+strconv.FormatInt(cutoff, 10))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing reading: %w", err)
	}
	return nil
}

func (s *RedisStorage) Latest(ctx context.Context, source string) (*recorder.Reading, error) {
	if source == "" {
		return nil, fmt.Errorf("source is required")
	}

	data, err := s.client.Get(ctx, redisLatestPrefix+source).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching latest reading: %w", err)
	}

	var rd recorder.Reading
	if err := json.Unmarshal(data, &rd); err != nil {
		return nil, fmt.Errorf("unmarshaling latest reading: %w", err)
	}
	return &rd, nil
}

func (s *RedisStorage) History(ctx context.Context, source string, since clock.Millis, limit int) ([]recorder.Reading, error) {
	if source == "" {
		return nil, fmt.Errorf("source is required")
	}

	opt := &redis.ZRangeBy{
		Min: strconv.FormatInt(int64(since), 10),
		Max: "+inf",
	}
	if limit > 0 {
		opt.Count = int64(limit)
	}

	members, err := s.client.ZRangeByScore(ctx, redisHistoryPrefix+source, opt).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching reading history: %w", err)
	}

	var out []recorder.Reading
	for _, member := range members {
		var rd recorder.Reading
		if err := json.Unmarshal([]byte(member), &rd); err != nil {
			return nil, fmt.Errorf("unmarshaling history entry: %w", err)
		}
		out = append(out, rd)
	}
	return out, nil
}

// Close releases Redis resources. It is idempotent.
func (s *RedisStorage) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Close()
	})
	return s.closeErr
}

func (s *RedisStorage) pingWithRetry(ctx context.Context, maxRetries int) error {
	attempts := maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	backoff := 100 * time.Millisecond
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := s.client.Ping(ctx).Err(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
	}

	if lastErr == nil {
		lastErr = errors.New("ping failed with unknown error")
	}
	return lastErr
}

func normalizeRedisConfig(cfg *RedisConfig) (*RedisConfig, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}

	conf := *cfg
	if conf.PoolSize <= 0 {
		conf.PoolSize = defaultRedisPoolSize
	}
	if conf.MaxRetries <= 0 {
		conf.MaxRetries = defaultRedisMaxRetries
	}
	if conf.DialTimeout <= 0 {
		conf.DialTimeout = defaultRedisDialTimeout
	}

	if conf.Cluster {
		if len(conf.ClusterNodes) == 0 {
			return nil, fmt.Errorf("cluster_nodes is required when cluster=true")
		}
	} else {
		if conf.Host == "" {
			return nil, fmt.Errorf("host is required when cluster=false")
		}
		if conf.Port <= 0 {
			return nil, fmt.Errorf("port must be positive when cluster=false, got %d", conf.Port)
		}
	}

	return &conf, nil
}

func newRedisClient(cfg *RedisConfig) (redis.UniversalClient, error) {
	if cfg.Cluster {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:       cfg.ClusterNodes,
			Password:    cfg.Password,
			PoolSize:    cfg.PoolSize,
			MaxRetries:  cfg.MaxRetries,
			DialTimeout: cfg.DialTimeout,
		}), nil
	}

	addr := cfg.Host + ":" + strconv.Itoa(cfg.Port)
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: cfg.DialTimeout,
	}), nil
}
