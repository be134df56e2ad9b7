package storage

import (
	"context"
	"testing"
	"time"

	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

func TestNewRedisStorage_NilConfig(t *testing.T) {
	_, err := NewRedisStorage(nil)
	if err == nil {
		t.Error("expected error for nil config")
	}
}

func TestNormalizeRedisConfig_Defaults(t *testing.T) {
	conf, err := normalizeRedisConfig(&RedisConfig{Host: "localhost", Port: 6379})
	if err != nil {
		t.Fatal(err)
	}
	if conf.PoolSize != defaultRedisPoolSize {
		t.Errorf("PoolSize = %d, want %d", conf.PoolSize, defaultRedisPoolSize)
	}
	if conf.MaxRetries != defaultRedisMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", conf.MaxRetries, defaultRedisMaxRetries)
	}
	if conf.DialTimeout != defaultRedisDialTimeout {
		t.Errorf("DialTimeout = %v, want %v", conf.DialTimeout, defaultRedisDialTimeout)
	}
}

func TestNormalizeRedisConfig_MissingHost(t *testing.T) {
	_, err := normalizeRedisConfig(&RedisConfig{Port: 6379})
	if err == nil {
		t.Error("expected error for missing host")
	}
}

func TestNormalizeRedisConfig_ClusterNeedsNodes(t *testing.T) {
	_, err := normalizeRedisConfig(&RedisConfig{Cluster: true})
	if err == nil {
		t.Error("expected error for cluster without nodes")
	}
}

func TestRedisStorage_PutRequiresSource(t *testing.T) {
	store, cleanup := newRedisStorageForTest(t)
	defer cleanup()

	err := store.Put(context.Background(), recorder.Reading{Millis: 1000})
	if err == nil {
		t.Error("expected error for reading without source")
	}
}

func TestRedisStorage_RetentionTrimsHistory(t *testing.T) {
	store, cleanup := newRedisStorageForTest(t)
	defer cleanup()
	store.retention = time.Minute

	ctx := context.Background()
	source := "retention"

	old := recorder.Reading{Source: source, Millis: 0, Seconds: 0}
	if err := store.Put(ctx, old); err != nil {
		t.Fatal(err)
	}

	// A write two minutes later should trim the first reading.
	fresh := recorder.Reading{Source: source, Millis: 120_000, Seconds: 120}
	if err := store.Put(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	history, err := store.History(ctx, source, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("History() returned %d readings, want 1 after retention trim", len(history))
	}
	if history[0].Millis != 120_000 {
		t.Errorf("surviving reading = %d, want 120000", history[0].Millis)
	}
}

func TestRedisStorage_CloseIdempotent(t *testing.T) {
	store, cleanup := newRedisStorageForTest(t)
	defer cleanup()

	if err := store.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
