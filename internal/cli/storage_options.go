package cli

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/config"
	"github.com/SmitUplenchwar2687/Tempo/internal/storage"
)

type storageOptions struct {
	backend           string
	memoryRetention   time.Duration
	redisHost         string
	redisPort         int
	redisPassword     string
	redisDB           int
	redisCluster      bool
	redisClusterNodes []string
	redisPoolSize     int
	redisMaxRetries   int
	redisDialTimeout  time.Duration
	redisRetention    time.Duration
}

func defaultStorageOptions() storageOptions {
	return storageOptions{
		backend:          storage.BackendMemory,
		memoryRetention:  time.Hour,
		redisHost:        "localhost",
		redisPort:        6379,
		redisDB:          0,
		redisPoolSize:    20,
		redisMaxRetries:  3,
		redisDialTimeout: 5 * time.Second,
		redisRetention:   time.Hour,
	}
}

func (o *storageOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.backend, "storage", storage.BackendMemory, "storage backend (memory, redis)")
	cmd.Flags().DurationVar(&o.memoryRetention, "storage-memory-retention", time.Hour, "retention window for memory storage (0 keeps everything)")
	cmd.Flags().StringVar(&o.redisHost, "redis-host", "localhost", "redis host (or host:port)")
	cmd.Flags().IntVar(&o.redisPort, "redis-port", 6379, "redis port")
	cmd.Flags().StringVar(&o.redisPassword, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&o.redisDB, "redis-db", 0, "redis database index")
	cmd.Flags().BoolVar(&o.redisCluster, "redis-cluster", false, "enable redis cluster mode")
	cmd.Flags().StringSliceVar(&o.redisClusterNodes, "redis-cluster-nodes", nil, "redis cluster nodes host:port list")
	cmd.Flags().IntVar(&o.redisPoolSize, "redis-pool-size", 20, "redis connection pool size")
	cmd.Flags().IntVar(&o.redisMaxRetries, "redis-max-retries", 3, "redis max retries")
	cmd.Flags().DurationVar(&o.redisDialTimeout, "redis-dial-timeout", 5*time.Second, "redis dial timeout")
	cmd.Flags().DurationVar(&o.redisRetention, "redis-retention", time.Hour, "retention window for redis history (0 keeps everything)")
}

func (o *storageOptions) applyConfigIfUnset(cmd *cobra.Command, cfg *config.StorageConfig) {
	if cfg == nil {
		return
	}

	if !cmd.Flags().Changed("storage") {
		o.backend = cfg.Backend
	}
	if !cmd.Flags().Changed("storage-memory-retention") {
		o.memoryRetention = cfg.Memory.Retention
	}
	if !cmd.Flags().Changed("redis-host") {
		o.redisHost = cfg.Redis.Host
	}
	if !cmd.Flags().Changed("redis-port") {
		o.redisPort = cfg.Redis.Port
	}
	if !cmd.Flags().Changed("redis-password") {
		o.redisPassword = cfg.Redis.Password
	}
	if !cmd.Flags().Changed("redis-db") {
		o.redisDB = cfg.Redis.DB
	}
	if !cmd.Flags().Changed("redis-cluster") {
		o.redisCluster = cfg.Redis.Cluster
	}
	if !cmd.Flags().Changed("redis-cluster-nodes") {
		o.redisClusterNodes = cfg.Redis.ClusterNodes
	}
	if !cmd.Flags().Changed("redis-pool-size") {
		o.redisPoolSize = cfg.Redis.PoolSize
	}
	if !cmd.Flags().Changed("redis-max-retries") {
		o.redisMaxRetries = cfg.Redis.MaxRetries
	}
	if !cmd.Flags().Changed("redis-dial-timeout") {
		o.redisDialTimeout = cfg.Redis.DialTimeout
	}
	if !cmd.Flags().Changed("redis-retention") {
		o.redisRetention = cfg.Redis.Retention
	}
}

func (o *storageOptions) normalize() error {
	if o.redisCluster {
		return nil
	}

	host, port, err := normalizeRedisHostPort(o.redisHost, o.redisPort)
	if err != nil {
		return err
	}
	o.redisHost = host
	o.redisPort = port
	return nil
}

// build constructs the selected storage backend. The clock drives
// retention checks for the memory backend.
func (o *storageOptions) build(clk clock.Clock) (storage.Storage, error) {
	switch o.backend {
	case storage.BackendMemory:
		return storage.NewMemoryStorage(clk, o.memoryRetention), nil
	case storage.BackendRedis:
		return storage.NewRedisStorage(&storage.RedisConfig{
			Host:         o.redisHost,
			Port:         o.redisPort,
			Password:     o.redisPassword,
			DB:           o.redisDB,
			Cluster:      o.redisCluster,
			ClusterNodes: append([]string(nil), o.redisClusterNodes...),
			PoolSize:     o.redisPoolSize,
			MaxRetries:   o.redisMaxRetries,
			DialTimeout:  o.redisDialTimeout,
			Retention:    o.redisRetention,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q, must be one of: memory, redis", o.backend)
	}
}

// normalizeRedisHostPort accepts either a bare host with a separate port,
// or a combined host:port in the host flag.
func normalizeRedisHostPort(host string, port int) (string, int, error) {
	if host == "" {
		return "", 0, fmt.Errorf("redis host is required")
	}

	h, p, err := net.SplitHostPort(host)
	if err != nil {
		// No embedded port — use the separate port flag.
		if port <= 0 {
			return "", 0, fmt.Errorf("redis port must be positive, got %d", port)
		}
		return host, port, nil
	}

	n, err := strconv.Atoi(p)
	if err != nil || n <= 0 {
		return "", 0, fmt.Errorf("invalid port in redis host %q", host)
	}
	return h, n, nil
}
